package store

import (
	"time"

	"github.com/equiptrack/gateway/internal/models"
)

// DraftRepository is the checklist draft cache.
type DraftRepository interface {
	// Put overwrites the draft for key with the given checklist.
	Put(key string, checklist models.Checklist) error

	// Get returns the draft for key. The second value is false when no draft
	// exists.
	Get(key string) (models.Checklist, bool, error)

	// Delete removes the draft for key. Deleting a missing key is not an
	// error.
	Delete(key string) error
}

// SnapshotRepository stores timestamped checklist saves for local-only tasks.
type SnapshotRepository interface {
	Put(key string, checklist models.Checklist, savedAt time.Time) error
	Get(key string) (models.Checklist, time.Time, bool, error)
}

// MaintenanceTaskRepository owns the maintenance-task tree. All task-like
// entities that are not upstream work orders go through here; there is no
// second, ad hoc sample-data path.
type MaintenanceTaskRepository interface {
	List() ([]models.MaintenanceTask, error)
	ListByFrequency(frequency models.Frequency) ([]models.MaintenanceTask, error)
	Get(id string) (*models.MaintenanceTask, error)
	Create(task *models.MaintenanceTask) error
	Update(task *models.MaintenanceTask) error
	Delete(id string) error
}
