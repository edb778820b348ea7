package models

import "time"

type WorkOrderType string

const (
	TypePM     WorkOrderType = "PM"
	TypeRepair WorkOrderType = "Repair"
)

type WorkOrderStatus string

const (
	StatusBacklog    WorkOrderStatus = "Backlog"
	StatusScheduled  WorkOrderStatus = "Scheduled"
	StatusInProgress WorkOrderStatus = "In Progress"
	StatusCompleted  WorkOrderStatus = "Completed"
	StatusOnHold     WorkOrderStatus = "On Hold"
)

// BoardColumns lists the kanban columns in display order.
var BoardColumns = []WorkOrderStatus{
	StatusBacklog,
	StatusScheduled,
	StatusInProgress,
	StatusCompleted,
	StatusOnHold,
}

// Valid reports whether s names one of the board columns.
func (s WorkOrderStatus) Valid() bool {
	for _, col := range BoardColumns {
		if s == col {
			return true
		}
	}
	return false
}

type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

type WorkOrder struct {
	ID                string          `json:"id"`
	WOID              string          `json:"wo_id"` // human code, WO-2025-0001
	Title             string          `json:"title"`
	Type              WorkOrderType   `json:"type"`
	Priority          Priority        `json:"priority"`
	Status            WorkOrderStatus `json:"status"`
	Assignee          *string         `json:"assignee,omitempty"`
	AssigneeName      *string         `json:"assignee_name,omitempty"`
	RequestedBy       string          `json:"requested_by"`
	RequestedByName   string          `json:"requested_by_name"`
	Site              string          `json:"site,omitempty"`
	DepartmentID      *string         `json:"department_id,omitempty"`
	DepartmentName    *string         `json:"department_name,omitempty"`
	MachineID         *string         `json:"machine_id,omitempty"`
	MachineName       *string         `json:"machine_name,omitempty"`
	Location          *string         `json:"location,omitempty"`
	DueDate           *time.Time      `json:"due_date,omitempty"`
	ScheduledStart    *time.Time      `json:"scheduled_start,omitempty"`
	ScheduledEnd      *time.Time      `json:"scheduled_end,omitempty"`
	EstimatedDuration *int            `json:"estimated_duration,omitempty"` // minutes
	Description       *string         `json:"description,omitempty"`
	Checklist         Checklist       `json:"checklist"`
	Tags              []string        `json:"tags"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	CompletedAt       *time.Time      `json:"completed_at,omitempty"`
}

// WorkOrderCreate is the payload for creating a work order upstream.
type WorkOrderCreate struct {
	Title             string        `json:"title"`
	Type              WorkOrderType `json:"type"`
	Priority          Priority      `json:"priority"`
	Assignee          *string       `json:"assignee,omitempty"`
	Site              string        `json:"site,omitempty"`
	DepartmentID      *string       `json:"department_id,omitempty"`
	MachineID         *string       `json:"machine_id,omitempty"`
	Location          *string       `json:"location,omitempty"`
	DueDate           *time.Time    `json:"due_date,omitempty"`
	ScheduledStart    *time.Time    `json:"scheduled_start,omitempty"`
	ScheduledEnd      *time.Time    `json:"scheduled_end,omitempty"`
	EstimatedDuration *int          `json:"estimated_duration,omitempty"`
	Description       *string       `json:"description,omitempty"`
	ChecklistItems    []string      `json:"checklist_items"`
	Tags              []string      `json:"tags"`
}
