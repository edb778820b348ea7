package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/equiptrack/gateway/internal/constants"
	"github.com/equiptrack/gateway/internal/dto"
	"github.com/equiptrack/gateway/internal/models"
	"github.com/equiptrack/gateway/internal/store"
	"github.com/equiptrack/gateway/internal/upstream"
)

// DailyService builds the daily-tasks view: today's work orders merged with
// today's recurring maintenance tasks, grouped by status, with advisory
// overdue/upcoming flags. A one-minute ticker refreshes the displayed clock;
// flags are recomputed against it on every build. This is advisory UI
// polling, not a scheduling guarantee.
type DailyService struct {
	tasks store.MaintenanceTaskRepository

	mu    sync.RWMutex
	clock time.Time
	cron  *cron.Cron
}

func NewDailyService(tasks store.MaintenanceTaskRepository) *DailyService {
	return &DailyService{
		tasks: tasks,
		clock: time.Now(),
	}
}

// Start launches the minute ticker.
func (s *DailyService) Start() {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc("@every 1m", s.tick); err != nil {
		log.Printf("Failed to schedule daily-view ticker: %v", err)
		return
	}
	s.cron.Start()
}

// Stop halts the ticker.
func (s *DailyService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *DailyService) tick() {
	s.mu.Lock()
	s.clock = time.Now()
	s.mu.Unlock()
}

// Now returns the view clock, which trails real time by up to a minute.
func (s *DailyService) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clock
}

// SetClock pins the view clock. It exists for tests.
func (s *DailyService) SetClock(t time.Time) {
	s.mu.Lock()
	s.clock = t
	s.mu.Unlock()
}

// BuildView fetches today's work orders and merges in today's maintenance
// occurrences.
func (s *DailyService) BuildView(ctx context.Context, client *upstream.Client) (*dto.DailyView, error) {
	now := s.Now()

	workOrders, err := client.ListWorkOrders(ctx)
	if err != nil {
		return nil, err
	}
	maintenanceTasks, err := s.tasks.List()
	if err != nil {
		return nil, fmt.Errorf("failed to load maintenance tasks: %w", err)
	}

	entries := make([]dto.DailyTask, 0, len(workOrders)+len(maintenanceTasks))
	for _, wo := range workOrders {
		if entry, ok := workOrderDailyEntry(wo, now); ok {
			entries = append(entries, entry)
		}
	}
	for _, task := range maintenanceTasks {
		if !occursOn(task, now) {
			continue
		}
		entries = append(entries, maintenanceDailyEntry(task, now))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ScheduledTime < entries[j].ScheduledTime
	})

	view := &dto.DailyView{
		Clock:      now,
		Pending:    []dto.DailyTask{},
		InProgress: []dto.DailyTask{},
		Completed:  []dto.DailyTask{},
		Overdue:    []dto.DailyTask{},
	}
	for _, entry := range entries {
		switch entry.Status {
		case dto.DailyPending:
			view.Pending = append(view.Pending, entry)
		case dto.DailyInProgress:
			view.InProgress = append(view.InProgress, entry)
		case dto.DailyCompleted:
			view.Completed = append(view.Completed, entry)
		}
		if entry.Overdue {
			view.Overdue = append(view.Overdue, entry)
		}
	}
	return view, nil
}

func workOrderDailyEntry(wo models.WorkOrder, now time.Time) (dto.DailyTask, bool) {
	scheduled := wo.ScheduledStart
	if scheduled == nil {
		scheduled = wo.DueDate
	}
	if scheduled == nil || !sameDay(*scheduled, now) {
		return dto.DailyTask{}, false
	}

	status := dto.DailyPending
	switch wo.Status {
	case models.StatusInProgress:
		status = dto.DailyInProgress
	case models.StatusCompleted:
		status = dto.DailyCompleted
	}

	entry := dto.DailyTask{
		ID:            wo.ID,
		Title:         wo.Title,
		Kind:          "workorder",
		ScheduledTime: scheduled.In(now.Location()).Format("15:04"),
		Priority:      wo.Priority,
		Status:        status,
		Overdue:       status != dto.DailyCompleted && scheduled.Before(now),
		Upcoming:      isUpcoming(*scheduled, now),
		Checklist:     dto.ToChecklistProgress(wo.Checklist),
	}
	if wo.DepartmentName != nil {
		entry.Department = *wo.DepartmentName
	}
	if wo.MachineName != nil {
		entry.Machine = *wo.MachineName
	}
	if wo.AssigneeName != nil {
		entry.Assignee = *wo.AssigneeName
	}
	return entry, true
}

func maintenanceDailyEntry(task models.MaintenanceTask, now time.Time) dto.DailyTask {
	scheduled := atTimeOfDay(now, task.Time)

	completed, total, _ := task.Checklist.Progress()
	status := dto.DailyPending
	if total > 0 && completed == total {
		status = dto.DailyCompleted
	}

	return dto.DailyTask{
		ID:            task.ID,
		Title:         task.Title,
		Kind:          "maintenance",
		ScheduledTime: task.Time,
		Department:    task.Department,
		Machine:       task.Machine,
		Priority:      task.Priority,
		Status:        status,
		Overdue:       status != dto.DailyCompleted && scheduled.Before(now),
		Upcoming:      isUpcoming(scheduled, now),
		Checklist:     dto.ToChecklistProgress(task.Checklist),
	}
}

// occursOn reports whether a recurring task falls on the given day: daily
// tasks every day, weekly tasks on the weekday they were created, monthly
// tasks on their creation day-of-month.
func occursOn(task models.MaintenanceTask, day time.Time) bool {
	switch task.Frequency {
	case models.FrequencyDaily:
		return true
	case models.FrequencyWeekly:
		return task.CreatedAt.Weekday() == day.Weekday()
	case models.FrequencyMonthly:
		return task.CreatedAt.Day() == day.Day()
	}
	return false
}

// isUpcoming reports whether the scheduled time is within the next two
// hours.
func isUpcoming(scheduled, now time.Time) bool {
	diff := scheduled.Sub(now)
	return diff > 0 && diff <= constants.UpcomingWindowHours*time.Hour
}

func sameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func atTimeOfDay(day time.Time, hhmm string) time.Time {
	parsed, err := time.Parse("15:04", hhmm)
	if err != nil {
		return day
	}
	return time.Date(day.Year(), day.Month(), day.Day(), parsed.Hour(), parsed.Minute(), 0, 0, day.Location())
}
