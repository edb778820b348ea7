package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/equiptrack/gateway/internal/errors"
	"github.com/equiptrack/gateway/internal/models"
	"github.com/equiptrack/gateway/internal/report"
	"github.com/equiptrack/gateway/internal/services"
	"github.com/equiptrack/gateway/internal/upstream"
)

// WorkOrderHandler proxies work-order CRUD to the upstream API and serves
// the printable work-order document.
type WorkOrderHandler struct {
	client *upstream.Client
	daily  *services.DailyService
}

func NewWorkOrderHandler(client *upstream.Client, daily *services.DailyService) *WorkOrderHandler {
	return &WorkOrderHandler{client: client, daily: daily}
}

// ListWorkOrders returns all work orders, optionally narrowed to one type
// with ?type=. Filtering happens here, not upstream.
func (h *WorkOrderHandler) ListWorkOrders(c *gin.Context) {
	client := authedClient(c, h.client)
	workOrders, err := client.ListWorkOrders(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if t := c.Query("type"); t != "" {
		filtered := make([]models.WorkOrder, 0, len(workOrders))
		for _, wo := range workOrders {
			if wo.Type == models.WorkOrderType(t) {
				filtered = append(filtered, wo)
			}
		}
		workOrders = filtered
	}
	c.JSON(http.StatusOK, workOrders)
}

func (h *WorkOrderHandler) GetWorkOrder(c *gin.Context) {
	client := authedClient(c, h.client)
	wo, err := client.GetWorkOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, wo)
}

func (h *WorkOrderHandler) CreateWorkOrder(c *gin.Context) {
	var req models.WorkOrderCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if req.Title == "" {
		apierrors.BadRequest(c, "Title is required")
		return
	}
	if req.Type == "" {
		req.Type = models.TypeRepair
	}
	if req.Priority == "" {
		req.Priority = models.PriorityMedium
	}

	client := authedClient(c, h.client)
	wo, err := client.CreateWorkOrder(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, wo)
}

// UpdateWorkOrder forwards a partial update. Only keys present in the
// request body reach the upstream, so unrelated fields written by other
// users are left alone.
func (h *WorkOrderHandler) UpdateWorkOrder(c *gin.Context) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		apierrors.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if len(fields) == 0 {
		apierrors.BadRequest(c, "Request body must contain at least one field")
		return
	}

	client := authedClient(c, h.client)
	wo, err := client.UpdateWorkOrder(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, wo)
}

func (h *WorkOrderHandler) DeleteWorkOrder(c *gin.Context) {
	client := authedClient(c, h.client)
	if err := client.DeleteWorkOrder(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Work order deleted successfully"})
}

// PrintWorkOrder renders the self-contained printable document for a work
// order, checklist state included.
func (h *WorkOrderHandler) PrintWorkOrder(c *gin.Context) {
	client := authedClient(c, h.client)
	wo, err := client.GetWorkOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	html, err := report.WorkOrder(*wo, h.daily.Now())
	if err != nil {
		apierrors.InternalError(c, "Failed to render document")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (h *WorkOrderHandler) ListUsers(c *gin.Context) {
	client := authedClient(c, h.client)
	users, err := client.ListUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
