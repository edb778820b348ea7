package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/equiptrack/gateway/internal/models"
)

// GormMaintenanceTaskRepository is a GORM implementation of
// MaintenanceTaskRepository.
type GormMaintenanceTaskRepository struct {
	db *gorm.DB
}

var ErrMaintenanceTaskNotFound = errors.New("maintenance task not found")

func NewMaintenanceTaskRepository(db *gorm.DB) MaintenanceTaskRepository {
	return &GormMaintenanceTaskRepository{db: db}
}

func (r *GormMaintenanceTaskRepository) List() ([]models.MaintenanceTask, error) {
	var records []MaintenanceTaskRecord
	if err := r.db.Order("time, title").Find(&records).Error; err != nil {
		return nil, err
	}
	return decodeRecords(records)
}

func (r *GormMaintenanceTaskRepository) ListByFrequency(frequency models.Frequency) ([]models.MaintenanceTask, error) {
	var records []MaintenanceTaskRecord
	if err := r.db.Where("frequency = ?", string(frequency)).Order("time, title").Find(&records).Error; err != nil {
		return nil, err
	}
	return decodeRecords(records)
}

func (r *GormMaintenanceTaskRepository) Get(id string) (*models.MaintenanceTask, error) {
	var record MaintenanceTaskRecord
	if err := r.db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMaintenanceTaskNotFound
		}
		return nil, err
	}
	task, err := decodeRecord(record)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *GormMaintenanceTaskRepository) Create(task *models.MaintenanceTask) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	now := time.Now()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now

	record, err := encodeRecord(*task)
	if err != nil {
		return err
	}
	return r.db.Create(&record).Error
}

func (r *GormMaintenanceTaskRepository) Update(task *models.MaintenanceTask) error {
	task.UpdatedAt = time.Now()
	record, err := encodeRecord(*task)
	if err != nil {
		return err
	}

	result := r.db.Model(&MaintenanceTaskRecord{}).Where("id = ?", record.ID).Updates(map[string]interface{}{
		"title":        record.Title,
		"frequency":    record.Frequency,
		"time":         record.Time,
		"department":   record.Department,
		"machine":      record.Machine,
		"priority":     record.Priority,
		"notes":        record.Notes,
		"safety_notes": record.SafetyNotes,
		"checklist":    record.Checklist,
		"updated_at":   record.UpdatedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMaintenanceTaskNotFound
	}
	return nil
}

func (r *GormMaintenanceTaskRepository) Delete(id string) error {
	result := r.db.Delete(&MaintenanceTaskRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMaintenanceTaskNotFound
	}
	return nil
}

func encodeRecord(task models.MaintenanceTask) (MaintenanceTaskRecord, error) {
	checklist, err := json.Marshal(task.Checklist)
	if err != nil {
		return MaintenanceTaskRecord{}, fmt.Errorf("failed to encode checklist: %w", err)
	}
	return MaintenanceTaskRecord{
		ID:          task.ID,
		Title:       task.Title,
		Frequency:   string(task.Frequency),
		Time:        task.Time,
		Department:  task.Department,
		Machine:     task.Machine,
		Priority:    string(task.Priority),
		Notes:       task.Notes,
		SafetyNotes: task.SafetyNotes,
		Checklist:   string(checklist),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}, nil
}

func decodeRecord(record MaintenanceTaskRecord) (models.MaintenanceTask, error) {
	var checklist models.Checklist
	if record.Checklist != "" {
		if err := json.Unmarshal([]byte(record.Checklist), &checklist); err != nil {
			return models.MaintenanceTask{}, fmt.Errorf("failed to decode checklist for task %s: %w", record.ID, err)
		}
	}
	return models.MaintenanceTask{
		ID:          record.ID,
		Title:       record.Title,
		Frequency:   models.Frequency(record.Frequency),
		Time:        record.Time,
		Department:  record.Department,
		Machine:     record.Machine,
		Priority:    models.Priority(record.Priority),
		Notes:       record.Notes,
		SafetyNotes: record.SafetyNotes,
		Checklist:   checklist,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}, nil
}

func decodeRecords(records []MaintenanceTaskRecord) ([]models.MaintenanceTask, error) {
	tasks := make([]models.MaintenanceTask, 0, len(records))
	for _, record := range records {
		task, err := decodeRecord(record)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}
