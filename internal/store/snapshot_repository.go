package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/equiptrack/gateway/internal/models"
)

// GormSnapshotRepository is a GORM implementation of SnapshotRepository.
type GormSnapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) SnapshotRepository {
	return &GormSnapshotRepository{db: db}
}

func (r *GormSnapshotRepository) Put(key string, checklist models.Checklist, savedAt time.Time) error {
	payload, err := json.Marshal(checklist)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	entry := SnapshotEntry{
		Key:     key,
		Payload: string(payload),
		SavedAt: savedAt,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(&entry).Error
}

func (r *GormSnapshotRepository) Get(key string) (models.Checklist, time.Time, bool, error) {
	var entry SnapshotEntry
	if err := r.db.First(&entry, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, time.Time{}, false, nil
		}
		return nil, time.Time{}, false, err
	}

	var checklist models.Checklist
	if err := json.Unmarshal([]byte(entry.Payload), &checklist); err != nil {
		return nil, time.Time{}, false, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return checklist, entry.SavedAt, true, nil
}
