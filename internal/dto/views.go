package dto

import (
	"time"

	"github.com/equiptrack/gateway/internal/models"
)

// DailyTaskStatus is the simplified status used by the daily view.
type DailyTaskStatus string

const (
	DailyPending    DailyTaskStatus = "pending"
	DailyInProgress DailyTaskStatus = "in-progress"
	DailyCompleted  DailyTaskStatus = "completed"
)

// DailyTask is one entry in the daily-tasks view: either a work order due
// today or a recurring maintenance task scheduled today.
type DailyTask struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Kind          string            `json:"kind"` // "maintenance" or "workorder"
	ScheduledTime string            `json:"scheduled_time"`
	Department    string            `json:"department,omitempty"`
	Machine       string            `json:"machine,omitempty"`
	Assignee      string            `json:"assignee,omitempty"`
	Priority      models.Priority   `json:"priority"`
	Status        DailyTaskStatus   `json:"status"`
	Overdue       bool              `json:"overdue"`
	Upcoming      bool              `json:"upcoming"`
	Checklist     ChecklistProgress `json:"checklist"`
}

// DailyView groups today's tasks the way the screen renders them. Overdue
// entries also appear in their status group.
type DailyView struct {
	Clock      time.Time   `json:"clock"`
	Pending    []DailyTask `json:"pending"`
	InProgress []DailyTask `json:"in_progress"`
	Completed  []DailyTask `json:"completed"`
	Overdue    []DailyTask `json:"overdue"`
}

// CalendarEntry is one event on a calendar day.
type CalendarEntry struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Kind     string          `json:"kind"`
	Time     string          `json:"time,omitempty"`
	Priority models.Priority `json:"priority,omitempty"`
	Status   string          `json:"status,omitempty"`
}

// CalendarDay is one cell of the month grid. Leading cells before the first
// of the month have a zero Day.
type CalendarDay struct {
	Day     int             `json:"day"`
	Date    string          `json:"date,omitempty"` // YYYY-MM-DD
	Entries []CalendarEntry `json:"entries,omitempty"`
}

// CalendarMonth is the month grid for the calendar view.
type CalendarMonth struct {
	Year  int           `json:"year"`
	Month time.Month    `json:"month"`
	Days  []CalendarDay `json:"days"`
}

// DepartmentSummary is a department row with its derived machine count.
type DepartmentSummary struct {
	models.Department
	MachineCount int `json:"machine_count"`
}
