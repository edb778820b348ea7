package services

import (
	"context"
	"fmt"
	"time"

	"github.com/equiptrack/gateway/internal/dto"
	"github.com/equiptrack/gateway/internal/store"
	"github.com/equiptrack/gateway/internal/upstream"
)

// CalendarService builds the month grid: work orders on their due dates plus
// recurring maintenance occurrences.
type CalendarService struct {
	tasks store.MaintenanceTaskRepository
}

func NewCalendarService(tasks store.MaintenanceTaskRepository) *CalendarService {
	return &CalendarService{tasks: tasks}
}

// Month builds the grid for one month. The grid is Sunday-first with blank
// leading cells, matching the calendar screen's layout.
func (s *CalendarService) Month(ctx context.Context, client *upstream.Client, year int, month time.Month) (*dto.CalendarMonth, error) {
	workOrders, err := client.ListWorkOrders(ctx)
	if err != nil {
		return nil, err
	}
	maintenanceTasks, err := s.tasks.List()
	if err != nil {
		return nil, fmt.Errorf("failed to load maintenance tasks: %w", err)
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	grid := &dto.CalendarMonth{Year: year, Month: month}
	for i := 0; i < int(first.Weekday()); i++ {
		grid.Days = append(grid.Days, dto.CalendarDay{})
	}

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
		cell := dto.CalendarDay{
			Day:     day,
			Date:    date.Format("2006-01-02"),
			Entries: []dto.CalendarEntry{},
		}

		for _, wo := range workOrders {
			if wo.DueDate != nil && sameDay(*wo.DueDate, date) {
				cell.Entries = append(cell.Entries, dto.CalendarEntry{
					ID:       wo.ID,
					Title:    wo.Title,
					Kind:     "workorder",
					Time:     wo.DueDate.In(date.Location()).Format("15:04"),
					Priority: wo.Priority,
					Status:   string(wo.Status),
				})
			}
		}
		for _, task := range maintenanceTasks {
			if occursOn(task, date) {
				cell.Entries = append(cell.Entries, dto.CalendarEntry{
					ID:       task.ID,
					Title:    task.Title,
					Kind:     "maintenance",
					Time:     task.Time,
					Priority: task.Priority,
				})
			}
		}

		grid.Days = append(grid.Days, cell)
	}

	return grid, nil
}
