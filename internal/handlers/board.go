package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/equiptrack/gateway/internal/errors"
	"github.com/equiptrack/gateway/internal/models"
	"github.com/equiptrack/gateway/internal/services"
	"github.com/equiptrack/gateway/internal/upstream"
)

// BoardHandler serves the kanban board: the five status columns, the card
// filters, and drag-and-drop moves.
type BoardHandler struct {
	board  *services.BoardService
	client *upstream.Client
}

func NewBoardHandler(board *services.BoardService, client *upstream.Client) *BoardHandler {
	return &BoardHandler{board: board, client: client}
}

// GetBoard reloads the work orders and returns them grouped by column.
// Filters narrow the cards shown, never the columns.
func (h *BoardHandler) GetBoard(c *gin.Context) {
	client := authedClient(c, h.client)
	if err := h.board.Refresh(c.Request.Context(), client); err != nil {
		respondServiceError(c, err)
		return
	}

	filter := services.BoardFilter{
		Search:       c.Query("search"),
		DepartmentID: c.Query("department_id"),
		Priority:     models.Priority(c.Query("priority")),
	}
	c.JSON(http.StatusOK, gin.H{"columns": h.board.Columns(filter)})
}

type moveCardRequest struct {
	Status models.WorkOrderStatus `json:"status" binding:"required"`
}

// MoveCard moves a card to another column.
func (h *BoardHandler) MoveCard(c *gin.Context) {
	var req moveCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if !req.Status.Valid() {
		apierrors.BadRequest(c, "Unknown status: "+string(req.Status))
		return
	}

	client := authedClient(c, h.client)
	if err := h.board.Move(c.Request.Context(), client, c.Param("id"), req.Status); err != nil {
		respondServiceError(c, err)
		return
	}

	wo, ok := h.board.Get(c.Param("id"))
	if !ok {
		apierrors.NotFound(c, "Work order not found")
		return
	}
	c.JSON(http.StatusOK, wo)
}
