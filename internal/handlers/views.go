package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apierrors "github.com/equiptrack/gateway/internal/errors"
	"github.com/equiptrack/gateway/internal/services"
	"github.com/equiptrack/gateway/internal/upstream"
)

// ViewHandler serves the derived read models: the daily-tasks screen and
// the monthly calendar.
type ViewHandler struct {
	daily    *services.DailyService
	calendar *services.CalendarService
	client   *upstream.Client
}

func NewViewHandler(daily *services.DailyService, calendar *services.CalendarService, client *upstream.Client) *ViewHandler {
	return &ViewHandler{daily: daily, calendar: calendar, client: client}
}

// GetDailyView returns today's tasks grouped by status, with overdue and
// upcoming flags computed against the advisory clock.
func (h *ViewHandler) GetDailyView(c *gin.Context) {
	client := authedClient(c, h.client)
	view, err := h.daily.BuildView(c.Request.Context(), client)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetCalendarMonth returns the month grid. Defaults to the current month
// when year/month params are absent.
func (h *ViewHandler) GetCalendarMonth(c *gin.Context) {
	now := h.daily.Now()
	year := now.Year()
	month := now.Month()

	if v := c.Query("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			apierrors.BadRequest(c, "Invalid year: "+v)
			return
		}
		year = parsed
	}
	if v := c.Query("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 12 {
			apierrors.BadRequest(c, "Invalid month: "+v)
			return
		}
		month = time.Month(parsed)
	}

	client := authedClient(c, h.client)
	grid, err := h.calendar.Month(c.Request.Context(), client, year, month)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, grid)
}
