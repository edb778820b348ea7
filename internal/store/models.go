package store

import "time"

// DraftEntry holds the most recent unsaved checklist for an open editor,
// keyed equiptrack:checklist:<kind>:<id>. Payload is the serialized checklist.
type DraftEntry struct {
	Key       string `gorm:"primarykey;type:varchar(255)"`
	Payload   string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// SnapshotEntry is a timestamped save of a local-only entity's checklist,
// keyed equiptrack:sample:<id>.
type SnapshotEntry struct {
	Key     string `gorm:"primarykey;type:varchar(255)"`
	Payload string `gorm:"type:text;not null"`
	SavedAt time.Time
}

// MaintenanceTaskRecord is the stored form of a maintenance task. The
// checklist is kept serialized; the record is always read and written whole.
type MaintenanceTaskRecord struct {
	ID          string `gorm:"primarykey;type:varchar(64)"`
	Title       string `gorm:"type:varchar(255);not null"`
	Frequency   string `gorm:"type:varchar(20);not null;index"`
	Time        string `gorm:"type:varchar(5)"`
	Department  string `gorm:"type:varchar(255)"`
	Machine     string `gorm:"type:varchar(255)"`
	Priority    string `gorm:"type:varchar(20)"`
	Notes       string `gorm:"type:text"`
	SafetyNotes string `gorm:"type:text"`
	Checklist   string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
