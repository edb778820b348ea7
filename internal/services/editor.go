package services

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/equiptrack/gateway/internal/events"
	"github.com/equiptrack/gateway/internal/models"
	"github.com/equiptrack/gateway/internal/store"
)

var (
	ErrEditorNotFound = errors.New("editor not found")
	ErrNotEditing     = errors.New("editor is not in edit mode")
	ErrAlreadyEditing = errors.New("editor is already in edit mode")
)

// EditorMode is the detail-panel state: viewing until the user starts an
// edit, editing until the edit is saved or abandoned.
type EditorMode string

const (
	ModeViewing EditorMode = "viewing"
	ModeEditing EditorMode = "editing"
)

// Editor is one open detail panel. It carries the checklist edit buffer for
// its entity and the view/edit mode toggle.
type Editor struct {
	ID        string
	Kind      EntityKind
	EntityID  string
	Mode      EditorMode
	Checklist *ChecklistEditor
}

// EditorService tracks open detail editors across requests.
type EditorService struct {
	mu      sync.Mutex
	editors map[string]*Editor

	drafts    store.DraftRepository
	snapshots store.SnapshotRepository
	bus       *events.Bus
}

func NewEditorService(drafts store.DraftRepository, snapshots store.SnapshotRepository, bus *events.Bus) *EditorService {
	return &EditorService{
		editors:   make(map[string]*Editor),
		drafts:    drafts,
		snapshots: snapshots,
		bus:       bus,
	}
}

// OpenWorkOrder opens a detail editor over a backend-owned work order.
func (s *EditorService) OpenWorkOrder(wo *models.WorkOrder) (*Editor, error) {
	return s.open(KindWorkOrder, wo.ID, wo.Checklist, true)
}

// OpenMaintenanceTask opens a detail editor over a locally persisted
// maintenance task.
func (s *EditorService) OpenMaintenanceTask(task *models.MaintenanceTask) (*Editor, error) {
	return s.open(KindMaintenance, task.ID, task.Checklist, false)
}

func (s *EditorService) open(kind EntityKind, entityID string, checklist models.Checklist, backendOwned bool) (*Editor, error) {
	checklistEditor, err := NewChecklistEditor(kind, entityID, checklist, backendOwned, s.drafts, s.snapshots, s.bus)
	if err != nil {
		return nil, err
	}

	editor := &Editor{
		ID:        uuid.NewString(),
		Kind:      kind,
		EntityID:  entityID,
		Mode:      ModeViewing,
		Checklist: checklistEditor,
	}

	s.mu.Lock()
	s.editors[editor.ID] = editor
	s.mu.Unlock()

	return editor, nil
}

func (s *EditorService) Get(id string) (*Editor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	editor, ok := s.editors[id]
	if !ok {
		return nil, ErrEditorNotFound
	}
	return editor, nil
}

// BeginEdit moves a viewing editor into edit mode.
func (s *EditorService) BeginEdit(id string) error {
	editor, err := s.Get(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if editor.Mode == ModeEditing {
		return ErrAlreadyEditing
	}
	editor.Mode = ModeEditing
	return nil
}

// EndEdit returns an editing editor to viewing. Called after a successful
// field save.
func (s *EditorService) EndEdit(id string) error {
	editor, err := s.Get(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if editor.Mode != ModeEditing {
		return ErrNotEditing
	}
	editor.Mode = ModeViewing
	return nil
}

// Close tears an editor down. The checklist editor enforces the close rules:
// blocked while a save is in flight, confirmation required when dirty. Once
// closed the editor is dropped from the registry and any pending save is
// aborted.
func (s *EditorService) Close(id string, force bool) error {
	editor, err := s.Get(id)
	if err != nil {
		return err
	}

	if err := editor.Checklist.Close(force); err != nil {
		return err
	}
	editor.Checklist.Abort()

	s.mu.Lock()
	delete(s.editors, id)
	s.mu.Unlock()
	return nil
}
