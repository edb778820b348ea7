package models

import "time"

type Frequency string

const (
	FrequencyDaily   Frequency = "Daily"
	FrequencyWeekly  Frequency = "Weekly"
	FrequencyMonthly Frequency = "Monthly"
)

// MaintenanceTask is a recurring preventive-maintenance definition. Unlike
// work orders these live in the gateway's local store, behind the same
// repository boundary as the draft cache.
type MaintenanceTask struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Frequency   Frequency `json:"frequency"`
	Time        string    `json:"time"` // HH:MM, 24h
	Department  string    `json:"department"`
	Machine     string    `json:"machine"`
	Priority    Priority  `json:"priority"`
	Notes       string    `json:"notes,omitempty"`
	SafetyNotes string    `json:"safety_notes,omitempty"`
	Checklist   Checklist `json:"checklist"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
