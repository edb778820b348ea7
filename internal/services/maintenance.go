package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/equiptrack/gateway/internal/models"
	"github.com/equiptrack/gateway/internal/store"
)

var (
	ErrTitleRequired    = errors.New("title is required")
	ErrInvalidFrequency = errors.New("frequency must be Daily, Weekly or Monthly")
	ErrInvalidTime      = errors.New("time must be HH:MM")
)

var timeOfDayPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// MaintenanceService owns the recurring maintenance tasks. They live in the
// local store; work orders are the upstream's, these are ours.
type MaintenanceService struct {
	tasks store.MaintenanceTaskRepository
}

func NewMaintenanceService(tasks store.MaintenanceTaskRepository) *MaintenanceService {
	return &MaintenanceService{tasks: tasks}
}

// MaintenanceTaskInput is the create/update payload for a maintenance task.
type MaintenanceTaskInput struct {
	Title       string           `json:"title"`
	Frequency   models.Frequency `json:"frequency"`
	Time        string           `json:"time"`
	Department  string           `json:"department"`
	Machine     string           `json:"machine"`
	Priority    models.Priority  `json:"priority"`
	Notes       string           `json:"notes"`
	SafetyNotes string           `json:"safety_notes"`
	Checklist   []string         `json:"checklist_items"`
}

func (in MaintenanceTaskInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return ErrTitleRequired
	}
	switch in.Frequency {
	case models.FrequencyDaily, models.FrequencyWeekly, models.FrequencyMonthly:
	default:
		return ErrInvalidFrequency
	}
	if in.Time != "" && !timeOfDayPattern.MatchString(in.Time) {
		return ErrInvalidTime
	}
	return nil
}

func (s *MaintenanceService) List() ([]models.MaintenanceTask, error) {
	return s.tasks.List()
}

func (s *MaintenanceService) ListByFrequency(frequency models.Frequency) ([]models.MaintenanceTask, error) {
	switch frequency {
	case models.FrequencyDaily, models.FrequencyWeekly, models.FrequencyMonthly:
	default:
		return nil, ErrInvalidFrequency
	}
	return s.tasks.ListByFrequency(frequency)
}

func (s *MaintenanceService) Get(id string) (*models.MaintenanceTask, error) {
	return s.tasks.Get(id)
}

func (s *MaintenanceService) Create(input MaintenanceTaskInput, username string) (*models.MaintenanceTask, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	timeOfDay := input.Time
	if timeOfDay == "" {
		timeOfDay = "08:00"
	}
	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	task := &models.MaintenanceTask{
		Title:       strings.TrimSpace(input.Title),
		Frequency:   input.Frequency,
		Time:        timeOfDay,
		Department:  input.Department,
		Machine:     input.Machine,
		Priority:    priority,
		Notes:       input.Notes,
		SafetyNotes: input.SafetyNotes,
		Checklist:   buildChecklist(input.Checklist, username),
	}

	if err := s.tasks.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create maintenance task: %w", err)
	}
	return task, nil
}

func (s *MaintenanceService) Update(id string, input MaintenanceTaskInput) (*models.MaintenanceTask, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	task, err := s.tasks.Get(id)
	if err != nil {
		return nil, err
	}

	task.Title = strings.TrimSpace(input.Title)
	task.Frequency = input.Frequency
	if input.Time != "" {
		task.Time = input.Time
	}
	task.Department = input.Department
	task.Machine = input.Machine
	if input.Priority != "" {
		task.Priority = input.Priority
	}
	task.Notes = input.Notes
	task.SafetyNotes = input.SafetyNotes

	if err := s.tasks.Update(task); err != nil {
		return nil, err
	}
	return task, nil
}

// ReplaceChecklist stores a saved checklist back onto the task. Called by the
// editor flow after a local save.
func (s *MaintenanceService) ReplaceChecklist(id string, checklist models.Checklist) (*models.MaintenanceTask, error) {
	task, err := s.tasks.Get(id)
	if err != nil {
		return nil, err
	}
	task.Checklist = checklist.Clone()
	if err := s.tasks.Update(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *MaintenanceService) Delete(id string) error {
	return s.tasks.Delete(id)
}

func buildChecklist(items []string, username string) models.Checklist {
	checklist := make(models.Checklist, 0, len(items))
	for _, text := range items {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		checklist = append(checklist, models.ChecklistItem{
			ID:        timestampedID(),
			Text:      text,
			CreatedBy: username,
		})
	}
	return checklist
}
