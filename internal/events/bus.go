// Package events is the in-process replacement for the window-scoped
// "workOrderUpdated" custom event: a typed publish/subscribe bus scoped to
// the application root. Delivery is synchronous and in-process only; it does
// not synchronize separate gateway instances.
package events

import (
	"sync"

	"github.com/google/uuid"

	"github.com/equiptrack/gateway/internal/models"
)

// WorkOrderUpdated is broadcast after a successful checklist save so views
// holding their own copy of the work order can patch it without re-fetching.
type WorkOrderUpdated struct {
	WorkOrderID string
	Checklist   models.Checklist
}

type Bus struct {
	mu          sync.RWMutex
	subscribers map[string]func(WorkOrderUpdated)
}

func NewBus() *Bus {
	return &Bus{
		subscribers: make(map[string]func(WorkOrderUpdated)),
	}
}

// Subscribe registers a handler and returns a cancel function. Handlers run
// synchronously on the publisher's goroutine and must not block.
func (b *Bus) Subscribe(fn func(WorkOrderUpdated)) func() {
	id := uuid.NewString()

	b.mu.Lock()
	b.subscribers[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subscribers, id)
		b.mu.Unlock()
	}
}

func (b *Bus) Publish(event WorkOrderUpdated) {
	b.mu.RLock()
	handlers := make([]func(WorkOrderUpdated), 0, len(b.subscribers))
	for _, fn := range b.subscribers {
		handlers = append(handlers, fn)
	}
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn(event)
	}
}
