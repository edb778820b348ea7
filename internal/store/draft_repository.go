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

// GormDraftRepository is a GORM implementation of DraftRepository.
type GormDraftRepository struct {
	db *gorm.DB
}

func NewDraftRepository(db *gorm.DB) DraftRepository {
	return &GormDraftRepository{db: db}
}

func (r *GormDraftRepository) Put(key string, checklist models.Checklist) error {
	payload, err := json.Marshal(checklist)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}

	entry := DraftEntry{
		Key:       key,
		Payload:   string(payload),
		UpdatedAt: time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(&entry).Error
}

func (r *GormDraftRepository) Get(key string) (models.Checklist, bool, error) {
	var entry DraftEntry
	if err := r.db.First(&entry, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var checklist models.Checklist
	if err := json.Unmarshal([]byte(entry.Payload), &checklist); err != nil {
		// A corrupt draft is unrecoverable; treat it as absent rather than
		// blocking the editor.
		return nil, false, nil
	}
	return checklist, true, nil
}

func (r *GormDraftRepository) Delete(key string) error {
	return r.db.Delete(&DraftEntry{}, "key = ?", key).Error
}
