package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/equiptrack/gateway/internal/errors"
	"github.com/equiptrack/gateway/internal/middleware"
	"github.com/equiptrack/gateway/internal/models"
	"github.com/equiptrack/gateway/internal/report"
	"github.com/equiptrack/gateway/internal/services"
)

// MaintenanceHandler manages recurring maintenance tasks. These live in the
// gateway's local store, not upstream.
type MaintenanceHandler struct {
	maintenance *services.MaintenanceService
	daily       *services.DailyService
}

func NewMaintenanceHandler(maintenance *services.MaintenanceService, daily *services.DailyService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenance: maintenance, daily: daily}
}

// ListMaintenanceTasks returns all tasks, optionally narrowed to one
// frequency tab via ?frequency=Daily|Weekly|Monthly.
func (h *MaintenanceHandler) ListMaintenanceTasks(c *gin.Context) {
	if frequency := c.Query("frequency"); frequency != "" {
		tasks, err := h.maintenance.ListByFrequency(models.Frequency(frequency))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, tasks)
		return
	}

	tasks, err := h.maintenance.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *MaintenanceHandler) GetMaintenanceTask(c *gin.Context) {
	task, err := h.maintenance.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *MaintenanceHandler) CreateMaintenanceTask(c *gin.Context) {
	var input services.MaintenanceTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apierrors.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	account, ok := middleware.GetAccount(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	task, err := h.maintenance.Create(input, account.User.Username)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *MaintenanceHandler) UpdateMaintenanceTask(c *gin.Context) {
	var input services.MaintenanceTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apierrors.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	task, err := h.maintenance.Update(c.Param("id"), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *MaintenanceHandler) DeleteMaintenanceTask(c *gin.Context) {
	if err := h.maintenance.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Maintenance task deleted successfully"})
}

// PrintMaintenanceTask renders the printable document for a task.
func (h *MaintenanceHandler) PrintMaintenanceTask(c *gin.Context) {
	task, err := h.maintenance.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	html, err := report.MaintenanceTask(*task, h.daily.Now())
	if err != nil {
		apierrors.InternalError(c, "Failed to render document")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
