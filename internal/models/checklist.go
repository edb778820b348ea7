package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// ChecklistItem is owned by its parent work order or maintenance task and is
// only persisted when the user explicitly saves the checklist.
type ChecklistItem struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Completed   bool       `json:"completed"`
	CreatedBy   string     `json:"created_by,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	CompletedBy *string    `json:"completed_by,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type Checklist []ChecklistItem

// Progress returns the completed count, total count, and percentage.
// An empty checklist is 0%.
func (c Checklist) Progress() (completed, total int, percent float64) {
	total = len(c)
	for _, item := range c {
		if item.Completed {
			completed++
		}
	}
	if total == 0 {
		return 0, 0, 0
	}
	return completed, total, float64(completed) / float64(total) * 100
}

// Clone returns a deep enough copy to mutate items without aliasing the
// original slice.
func (c Checklist) Clone() Checklist {
	if c == nil {
		return nil
	}
	out := make(Checklist, len(c))
	copy(out, c)
	return out
}

// Equal compares two checklists by their serialized form, matching how the
// draft cache decides whether a recovered draft differs from the parent copy.
func (c Checklist) Equal(other Checklist) bool {
	a, err := json.Marshal(c)
	if err != nil {
		return false
	}
	b, err := json.Marshal(other)
	if err != nil {
		return false
	}
	return bytes.Equal(a, b)
}
