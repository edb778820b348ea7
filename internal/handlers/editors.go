package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/equiptrack/gateway/internal/dto"
	apierrors "github.com/equiptrack/gateway/internal/errors"
	"github.com/equiptrack/gateway/internal/middleware"
	"github.com/equiptrack/gateway/internal/services"
	"github.com/equiptrack/gateway/internal/upstream"
)

// EditorHandler exposes detail editors: one per open panel, each carrying a
// checklist edit buffer. Item mutations stay local until an explicit save.
type EditorHandler struct {
	editors     *services.EditorService
	maintenance *services.MaintenanceService
	client      *upstream.Client
}

func NewEditorHandler(editors *services.EditorService, maintenance *services.MaintenanceService, client *upstream.Client) *EditorHandler {
	return &EditorHandler{editors: editors, maintenance: maintenance, client: client}
}

func editorState(editor *services.Editor) gin.H {
	completed, total, percent := editor.Checklist.Progress()
	return gin.H{
		"id":        editor.ID,
		"kind":      editor.Kind,
		"entity_id": editor.EntityID,
		"mode":      editor.Mode,
		"checklist": editor.Checklist.Items(),
		"progress": dto.ChecklistProgress{
			Completed: completed,
			Total:     total,
			Percent:   percent,
		},
		"dirty": editor.Checklist.Dirty(),
	}
}

// OpenWorkOrderEditor fetches the work order and opens a detail editor over
// its checklist. A draft left by an earlier session is adopted if it differs
// from the fetched copy.
func (h *EditorHandler) OpenWorkOrderEditor(c *gin.Context) {
	client := authedClient(c, h.client)
	wo, err := client.GetWorkOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	editor, err := h.editors.OpenWorkOrder(wo)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, editorState(editor))
}

// OpenMaintenanceEditor opens a detail editor over a locally stored
// maintenance task's checklist.
func (h *EditorHandler) OpenMaintenanceEditor(c *gin.Context) {
	task, err := h.maintenance.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	editor, err := h.editors.OpenMaintenanceTask(task)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, editorState(editor))
}

func (h *EditorHandler) GetEditor(c *gin.Context) {
	editor, err := h.editors.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, editorState(editor))
}

func (h *EditorHandler) BeginEdit(c *gin.Context) {
	if err := h.editors.BeginEdit(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	editor, err := h.editors.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, editorState(editor))
}

func (h *EditorHandler) EndEdit(c *gin.Context) {
	if err := h.editors.EndEdit(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	editor, err := h.editors.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, editorState(editor))
}

type toggleItemRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

// ToggleItem checks or unchecks a checklist item. The change lands in the
// edit buffer and the draft cache only.
func (h *EditorHandler) ToggleItem(c *gin.Context) {
	var req toggleItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	editor, err := h.editors.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	account, ok := middleware.GetAccount(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	if err := editor.Checklist.Toggle(c.Param("itemId"), *req.Completed, account.User.Username); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, editorState(editor))
}

type addItemRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *EditorHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	editor, err := h.editors.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	account, ok := middleware.GetAccount(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	item, err := editor.Checklist.Add(req.Text, account.User.Username)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item, "editor": editorState(editor)})
}

func (h *EditorHandler) RemoveItem(c *gin.Context) {
	editor, err := h.editors.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := editor.Checklist.Remove(c.Param("itemId")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, editorState(editor))
}

// SaveChecklist pushes the edit buffer to its owner. Work-order checklists
// go upstream as a partial update; maintenance checklists are written back
// to the local store alongside the timestamped snapshot.
func (h *EditorHandler) SaveChecklist(c *gin.Context) {
	editor, err := h.editors.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	client := authedClient(c, h.client)
	if err := editor.Checklist.Save(c.Request.Context(), client); err != nil {
		respondServiceError(c, err)
		return
	}

	if editor.Kind == services.KindMaintenance {
		if _, err := h.maintenance.ReplaceChecklist(editor.EntityID, editor.Checklist.Items()); err != nil {
			respondServiceError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, editorState(editor))
}

// CloseEditor tears the editor down. ?force=true discards unsaved changes
// after the user confirmed; without it a dirty editor answers 409.
func (h *EditorHandler) CloseEditor(c *gin.Context) {
	force := c.Query("force") == "true"
	if err := h.editors.Close(c.Param("id"), force); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Editor closed"})
}
