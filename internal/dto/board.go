package dto

import (
	"time"

	"github.com/equiptrack/gateway/internal/models"
)

// ChecklistProgress is the completed/total summary shown on cards.
type ChecklistProgress struct {
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Percent   float64 `json:"percent"`
}

func ToChecklistProgress(checklist models.Checklist) ChecklistProgress {
	completed, total, percent := checklist.Progress()
	return ChecklistProgress{Completed: completed, Total: total, Percent: percent}
}

// BoardCard is a work order as rendered on the kanban board.
type BoardCard struct {
	ID             string                 `json:"id"`
	WOID           string                 `json:"wo_id"`
	Title          string                 `json:"title"`
	Type           models.WorkOrderType   `json:"type"`
	Status         models.WorkOrderStatus `json:"status"`
	Priority       models.Priority        `json:"priority"`
	AssigneeName   *string                `json:"assignee_name,omitempty"`
	DepartmentName *string                `json:"department_name,omitempty"`
	MachineName    *string                `json:"machine_name,omitempty"`
	DueDate        *time.Time             `json:"due_date,omitempty"`
	Checklist      ChecklistProgress      `json:"checklist"`
	Tags           []string               `json:"tags,omitempty"`
}

// BoardColumn is one kanban column with its filtered cards.
type BoardColumn struct {
	Status models.WorkOrderStatus `json:"status"`
	Cards  []BoardCard            `json:"cards"`
}

func ToBoardCard(wo models.WorkOrder) BoardCard {
	return BoardCard{
		ID:             wo.ID,
		WOID:           wo.WOID,
		Title:          wo.Title,
		Type:           wo.Type,
		Status:         wo.Status,
		Priority:       wo.Priority,
		AssigneeName:   wo.AssigneeName,
		DepartmentName: wo.DepartmentName,
		MachineName:    wo.MachineName,
		DueDate:        wo.DueDate,
		Checklist:      ToChecklistProgress(wo.Checklist),
		Tags:           wo.Tags,
	}
}
