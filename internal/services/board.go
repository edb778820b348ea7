package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/equiptrack/gateway/internal/dto"
	"github.com/equiptrack/gateway/internal/events"
	"github.com/equiptrack/gateway/internal/models"
	"github.com/equiptrack/gateway/internal/upstream"
)

var ErrWorkOrderNotFound = errors.New("work order not found on board")

// BoardService holds the kanban view's copy of the work-order list. The copy
// follows the single-view model of the original board: refreshed on demand,
// mutated optimistically on drag-and-drop, and patched in place when a
// checklist save broadcasts an update.
type BoardService struct {
	mu         sync.RWMutex
	workOrders []models.WorkOrder

	unsubscribe func()
}

func NewBoardService(bus *events.Bus) *BoardService {
	s := &BoardService{}
	s.unsubscribe = bus.Subscribe(s.applyChecklistUpdate)
	return s
}

// Stop detaches the board from the event bus.
func (s *BoardService) Stop() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

// Refresh replaces the held list with a fresh upstream fetch.
func (s *BoardService) Refresh(ctx context.Context, client *upstream.Client) error {
	workOrders, err := client.ListWorkOrders(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.workOrders = workOrders
	s.mu.Unlock()
	return nil
}

// applyChecklistUpdate patches the held copy of an updated work order's
// checklist without a re-fetch.
func (s *BoardService) applyChecklistUpdate(event events.WorkOrderUpdated) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.workOrders {
		if s.workOrders[i].ID == event.WorkOrderID {
			s.workOrders[i].Checklist = event.Checklist.Clone()
			return
		}
	}
}

// BoardFilter is the board's client-side filter state. Empty fields match
// everything.
type BoardFilter struct {
	Search       string
	DepartmentID string
	Priority     models.Priority
}

func (f BoardFilter) matches(wo models.WorkOrder) bool {
	if f.DepartmentID != "" && (wo.DepartmentID == nil || *wo.DepartmentID != f.DepartmentID) {
		return false
	}
	if f.Priority != "" && wo.Priority != f.Priority {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(wo.Title), needle) &&
			!strings.Contains(strings.ToLower(wo.WOID), needle) &&
			(wo.Description == nil || !strings.Contains(strings.ToLower(*wo.Description), needle)) {
			return false
		}
	}
	return true
}

// Columns returns the five fixed kanban columns over the filtered list.
func (s *BoardService) Columns(filter BoardFilter) []dto.BoardColumn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	columns := make([]dto.BoardColumn, 0, len(models.BoardColumns))
	for _, status := range models.BoardColumns {
		column := dto.BoardColumn{Status: status, Cards: []dto.BoardCard{}}
		for _, wo := range s.workOrders {
			if wo.Status == status && filter.matches(wo) {
				column.Cards = append(column.Cards, dto.ToBoardCard(wo))
			}
		}
		columns = append(columns, column)
	}
	return columns
}

// Get returns the held copy of one work order.
func (s *BoardService) Get(workOrderID string) (*models.WorkOrder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, wo := range s.workOrders {
		if wo.ID == workOrderID {
			found := wo
			return &found, true
		}
	}
	return nil, false
}

// Move handles a card drop. Dropping on the card's current column is a no-op
// with no upstream call. Otherwise the held copy is updated first, then a
// single partial update carrying only the status is issued. An upstream
// failure surfaces as the returned error with the optimistic state left in
// place; there is no rollback.
func (s *BoardService) Move(ctx context.Context, client *upstream.Client, workOrderID string, target models.WorkOrderStatus) error {
	s.mu.Lock()
	idx := -1
	for i := range s.workOrders {
		if s.workOrders[i].ID == workOrderID {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return ErrWorkOrderNotFound
	}
	if s.workOrders[idx].Status == target {
		s.mu.Unlock()
		return nil
	}

	s.workOrders[idx].Status = target
	s.mu.Unlock()

	_, err := client.UpdateWorkOrder(ctx, workOrderID, map[string]interface{}{
		"status": target,
	})
	return err
}
