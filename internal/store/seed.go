package store

import (
	"log"

	"gorm.io/gorm"

	"github.com/equiptrack/gateway/internal/models"
)

// Seed populates the maintenance-task tree with starter tasks on first run.
// Existing data is never touched.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&MaintenanceTaskRecord{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	repo := NewMaintenanceTaskRepository(db)
	for _, task := range starterTasks() {
		task := task
		if err := repo.Create(&task); err != nil {
			return err
		}
	}

	log.Println("Seeded starter maintenance tasks")
	return nil
}

func starterTasks() []models.MaintenanceTask {
	return []models.MaintenanceTask{
		{
			Title:       "Oil Level Check - CNC Machine 01",
			Frequency:   models.FrequencyDaily,
			Time:        "08:00",
			Department:  "Production",
			Machine:     "CNC Machine 01",
			Priority:    models.PriorityHigh,
			Notes:       "Check hydraulic oil levels and record readings. Top up if below minimum line.",
			SafetyNotes: "Ensure machine is powered off before checking oil levels.",
			Checklist: models.Checklist{
				{ID: "1-1", Text: "Check oil level", CreatedBy: "System"},
				{ID: "1-2", Text: "Record readings", CreatedBy: "System"},
				{ID: "1-3", Text: "Top up if needed", CreatedBy: "System"},
			},
		},
		{
			Title:       "Conveyor Belt Inspection",
			Frequency:   models.FrequencyDaily,
			Time:        "14:00",
			Department:  "Production",
			Machine:     "Conveyor Belt A",
			Priority:    models.PriorityMedium,
			Notes:       "Daily visual inspection of conveyor belt system for wear and proper operation.",
			SafetyNotes: "Use lockout/tagout procedures before inspection.",
			Checklist: models.Checklist{
				{ID: "2-1", Text: "Visual inspection", CreatedBy: "System"},
				{ID: "2-2", Text: "Check tension", CreatedBy: "System"},
				{ID: "2-3", Text: "Clean belt surface", CreatedBy: "System"},
			},
		},
		{
			Title:       "Filter Replacement - Air Compressor",
			Frequency:   models.FrequencyWeekly,
			Time:        "10:00",
			Department:  "Utilities",
			Machine:     "Air Compressor Unit 1",
			Priority:    models.PriorityMedium,
			Notes:       "Replace air intake filter and check system pressure.",
			SafetyNotes: "Depressurize system before filter replacement.",
			Checklist: models.Checklist{
				{ID: "3-1", Text: "Turn off compressor", CreatedBy: "System"},
				{ID: "3-2", Text: "Replace air filter", CreatedBy: "System"},
				{ID: "3-3", Text: "Check pressure settings", CreatedBy: "System"},
			},
		},
		{
			Title:       "Comprehensive HVAC Inspection",
			Frequency:   models.FrequencyMonthly,
			Time:        "09:00",
			Department:  "Facilities",
			Machine:     "HVAC System",
			Priority:    models.PriorityHigh,
			Notes:       "Full inspection of heating, ventilation and air conditioning units.",
			SafetyNotes: "Coordinate downtime with facilities before starting.",
			Checklist: models.Checklist{
				{ID: "4-1", Text: "Inspect ductwork", CreatedBy: "System"},
				{ID: "4-2", Text: "Replace filters", CreatedBy: "System"},
				{ID: "4-3", Text: "Check refrigerant levels", CreatedBy: "System"},
				{ID: "4-4", Text: "Test thermostat calibration", CreatedBy: "System"},
			},
		},
	}
}
