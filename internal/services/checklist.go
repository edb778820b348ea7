package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/equiptrack/gateway/internal/constants"
	"github.com/equiptrack/gateway/internal/events"
	"github.com/equiptrack/gateway/internal/models"
	"github.com/equiptrack/gateway/internal/store"
	"github.com/equiptrack/gateway/internal/upstream"
)

var (
	// ErrSaveInFlight is returned when a save is already running, and when a
	// close is attempted while one is running.
	ErrSaveInFlight = errors.New("checklist save in flight")
	// ErrUnsavedChanges is returned by Close when the checklist differs from
	// the parent-supplied original and force was not given.
	ErrUnsavedChanges = errors.New("checklist has unsaved changes")
	// ErrItemNotFound is returned when toggling or removing an unknown item.
	ErrItemNotFound = errors.New("checklist item not found")
	// ErrEmptyItem is returned when adding a blank checklist item.
	ErrEmptyItem = errors.New("checklist item text is empty")
)

// EntityKind distinguishes draft-cache namespaces per parent entity type.
type EntityKind string

const (
	KindWorkOrder   EntityKind = "workorder"
	KindMaintenance EntityKind = "maintenance"
)

// ChecklistEditor is the edit buffer for one entity's checklist. Toggles,
// adds and removes touch only the in-memory copy and the local draft cache;
// nothing reaches the upstream until Save. A draft left behind by an earlier
// session is adopted on open so unsaved work survives.
type ChecklistEditor struct {
	kind         EntityKind
	entityID     string
	backendOwned bool

	mu         sync.Mutex
	original   models.Checklist
	current    models.Checklist
	saving     bool
	cancelSave context.CancelFunc

	drafts    store.DraftRepository
	snapshots store.SnapshotRepository
	bus       *events.Bus

	now       func() time.Time
	newItemID func() string
}

// NewChecklistEditor opens an editor over the parent-supplied checklist.
// backendOwned selects the save path: a partial update upstream versus a
// timestamped local snapshot.
func NewChecklistEditor(kind EntityKind, entityID string, parent models.Checklist, backendOwned bool,
	drafts store.DraftRepository, snapshots store.SnapshotRepository, bus *events.Bus) (*ChecklistEditor, error) {

	e := &ChecklistEditor{
		kind:         kind,
		entityID:     entityID,
		backendOwned: backendOwned,
		original:     parent.Clone(),
		current:      parent.Clone(),
		drafts:       drafts,
		snapshots:    snapshots,
		bus:          bus,
		now:          time.Now,
		newItemID:    timestampedID,
	}

	draft, found, err := drafts.Get(e.draftKey())
	if err != nil {
		return nil, fmt.Errorf("failed to read checklist draft: %w", err)
	}
	if found && !draft.Equal(parent) {
		// Recover unsaved edits from a previous session.
		e.current = draft
	}

	return e, nil
}

func (e *ChecklistEditor) draftKey() string {
	return fmt.Sprintf(constants.ChecklistDraftKeyFormat, e.kind, e.entityID)
}

func (e *ChecklistEditor) snapshotKey() string {
	return fmt.Sprintf(constants.SampleSnapshotKeyFormat, e.entityID)
}

// Items returns a copy of the current checklist.
func (e *ChecklistEditor) Items() models.Checklist {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current.Clone()
}

// Progress returns completed count, total count, and percentage for the
// current checklist.
func (e *ChecklistEditor) Progress() (int, int, float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current.Progress()
}

// Dirty reports whether the current checklist differs from the parent copy.
func (e *ChecklistEditor) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.current.Equal(e.original)
}

// Toggle flips an item's completed state. Checking stamps completed_by and
// completed_at with the acting user; unchecking clears both. The draft cache
// is rewritten; no upstream call happens here.
func (e *ChecklistEditor) Toggle(itemID string, completed bool, username string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	updated := e.current.Clone()
	idx := -1
	for i, item := range updated {
		if item.ID == itemID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrItemNotFound
	}

	updated[idx].Completed = completed
	if completed {
		by := username
		at := e.now()
		updated[idx].CompletedBy = &by
		updated[idx].CompletedAt = &at
	} else {
		updated[idx].CompletedBy = nil
		updated[idx].CompletedAt = nil
	}

	return e.commit(updated)
}

// Add appends a new unchecked item and returns it.
func (e *ChecklistEditor) Add(text, username string) (*models.ChecklistItem, error) {
	if text == "" {
		return nil, ErrEmptyItem
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	created := e.now()
	item := models.ChecklistItem{
		ID:        e.newItemID(),
		Text:      text,
		Completed: false,
		CreatedBy: username,
		CreatedAt: &created,
	}

	updated := append(e.current.Clone(), item)
	if err := e.commit(updated); err != nil {
		return nil, err
	}
	return &item, nil
}

// Remove deletes an item.
func (e *ChecklistEditor) Remove(itemID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	updated := make(models.Checklist, 0, len(e.current))
	for _, item := range e.current {
		if item.ID != itemID {
			updated = append(updated, item)
		}
	}
	if len(updated) == len(e.current) {
		return ErrItemNotFound
	}

	return e.commit(updated)
}

// commit replaces the in-memory checklist and rewrites the draft cache.
// Callers hold e.mu.
func (e *ChecklistEditor) commit(updated models.Checklist) error {
	if err := e.drafts.Put(e.draftKey(), updated); err != nil {
		return fmt.Errorf("failed to write checklist draft: %w", err)
	}
	e.current = updated
	return nil
}

// Save persists the checklist explicitly. Backend-owned parents get a partial
// update carrying only the checklist field; the server's returned checklist
// is adopted as authoritative, the draft is cleared, and a WorkOrderUpdated
// event is broadcast. Local-only parents get a timestamped snapshot instead.
// On failure the draft is retained so the edits can be retried or recovered.
// A cancelled save returns nil; cancellation is not a user-facing failure.
func (e *ChecklistEditor) Save(ctx context.Context, client *upstream.Client) error {
	e.mu.Lock()
	if e.saving {
		e.mu.Unlock()
		return ErrSaveInFlight
	}

	saveCtx, cancel := context.WithCancel(ctx)
	e.saving = true
	e.cancelSave = cancel
	snapshot := e.current.Clone()
	e.mu.Unlock()

	finish := func() {
		e.mu.Lock()
		e.saving = false
		e.cancelSave = nil
		e.mu.Unlock()
		cancel()
	}

	if !e.backendOwned {
		defer finish()
		if err := e.snapshots.Put(e.snapshotKey(), snapshot, e.now()); err != nil {
			return fmt.Errorf("failed to save local snapshot: %w", err)
		}
		if err := e.drafts.Delete(e.draftKey()); err != nil {
			return fmt.Errorf("failed to clear checklist draft: %w", err)
		}
		e.mu.Lock()
		// The saved snapshot is the baseline from here on, so a clean close
		// after a save never asks for confirmation.
		e.original = snapshot.Clone()
		e.mu.Unlock()
		return nil
	}

	updated, err := client.UpdateWorkOrder(saveCtx, e.entityID, map[string]interface{}{
		"checklist": snapshot,
	})
	if err != nil {
		finish()
		if errors.Is(err, context.Canceled) {
			// Aborted save: swallow, keep the draft.
			return nil
		}
		return err
	}

	e.mu.Lock()
	// The server's copy is authoritative from here on.
	e.current = updated.Checklist.Clone()
	e.original = updated.Checklist.Clone()
	e.saving = false
	e.cancelSave = nil
	e.mu.Unlock()
	cancel()

	if err := e.drafts.Delete(e.draftKey()); err != nil {
		return fmt.Errorf("failed to clear checklist draft: %w", err)
	}

	e.bus.Publish(events.WorkOrderUpdated{
		WorkOrderID: e.entityID,
		Checklist:   updated.Checklist.Clone(),
	})
	return nil
}

// Abort cancels an in-flight save, if any. Used when the editor goes away
// while a request is pending.
func (e *ChecklistEditor) Abort() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancelSave != nil {
		e.cancelSave()
	}
}

// Close tears the editor down. While a save is in flight closing is blocked.
// With unsaved changes the caller must pass force (the user confirmed the
// discard); the draft is then dropped. A clean close never requires
// confirmation.
func (e *ChecklistEditor) Close(force bool) error {
	e.mu.Lock()
	if e.saving {
		e.mu.Unlock()
		return ErrSaveInFlight
	}
	dirty := !e.current.Equal(e.original)
	if dirty && !force {
		e.mu.Unlock()
		return ErrUnsavedChanges
	}
	if e.cancelSave != nil {
		e.cancelSave()
		e.cancelSave = nil
	}
	e.mu.Unlock()

	return e.drafts.Delete(e.draftKey())
}

// timestampedID builds the time-based unique id scheme used for items
// created in the editor: unix milliseconds plus a short random suffix.
func timestampedID() string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), suffix)
}
