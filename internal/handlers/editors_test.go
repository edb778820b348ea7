package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/equiptrack/gateway/internal/models"
)

type editorStateResponse struct {
	ID        string           `json:"id"`
	Kind      string           `json:"kind"`
	EntityID  string           `json:"entity_id"`
	Mode      string           `json:"mode"`
	Checklist models.Checklist `json:"checklist"`
	Progress  struct {
		Completed int     `json:"completed"`
		Total     int     `json:"total"`
		Percent   float64 `json:"percent"`
	} `json:"progress"`
	Dirty bool `json:"dirty"`
}

// workOrderUpstream serves one work order and records partial updates to it.
func workOrderUpstream(t *testing.T) (http.HandlerFunc, *[]map[string]interface{}) {
	t.Helper()

	var mu sync.Mutex
	updates := &[]map[string]interface{}{}
	wo := models.WorkOrder{
		ID:     "wo-1",
		WOID:   "WO-2025-0001",
		Title:  "Pump overhaul",
		Status: models.StatusInProgress,
		Checklist: models.Checklist{
			{ID: "item-1", Text: "Drain pump"},
			{ID: "item-2", Text: "Replace seals", Completed: true},
		},
	}

	handler := func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/work-orders/wo-1":
			json.NewEncoder(w).Encode(wo)
		case r.Method == http.MethodPut && r.URL.Path == "/api/work-orders/wo-1":
			var fields map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&fields))
			*updates = append(*updates, fields)
			if checklist, ok := fields["checklist"]; ok {
				raw, err := json.Marshal(checklist)
				require.NoError(t, err)
				require.NoError(t, json.Unmarshal(raw, &wo.Checklist))
			}
			json.NewEncoder(w).Encode(wo)
		default:
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"detail": "not found"})
		}
	}
	return handler, updates
}

func (env *gatewayTestEnv) openEditor(t *testing.T, cookies []*http.Cookie) editorStateResponse {
	t.Helper()

	w := env.do(t, http.MethodPost, "/api/work-orders/wo-1/editor", nil, cookies)
	require.Equal(t, http.StatusCreated, w.Code)

	var state editorStateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	require.NotEmpty(t, state.ID)
	return state
}

func TestEditorFlow_OpenTogglesAndSaves(t *testing.T) {
	upstreamHandler, updates := workOrderUpstream(t)
	env := setupGatewayTestEnv(t, upstreamHandler)
	cookies := env.login(t)

	state := env.openEditor(t, cookies)
	require.Equal(t, "workorder", state.Kind)
	require.Equal(t, "viewing", state.Mode)
	require.Equal(t, 1, state.Progress.Completed)
	require.Equal(t, 2, state.Progress.Total)
	require.False(t, state.Dirty)

	// Toggle stays local: no upstream write yet.
	w := env.do(t, http.MethodPut, "/api/editors/"+state.ID+"/items/item-1", map[string]bool{"completed": true}, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	require.True(t, state.Dirty)
	require.Equal(t, 2, state.Progress.Completed)
	require.Empty(t, *updates)

	item := state.Checklist[0]
	require.True(t, item.Completed)
	require.NotNil(t, item.CompletedBy)
	require.Equal(t, "mohamed", *item.CompletedBy)
	require.NotNil(t, item.CompletedAt)

	// Save pushes a partial update carrying only the checklist.
	w = env.do(t, http.MethodPost, "/api/editors/"+state.ID+"/save", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, *updates, 1)
	require.Len(t, (*updates)[0], 1)
	require.Contains(t, (*updates)[0], "checklist")

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	require.False(t, state.Dirty)

	// The draft is gone after the save.
	_, found, err := env.drafts.Get("equiptrack:checklist:workorder:wo-1")
	require.NoError(t, err)
	require.False(t, found)
}

func TestEditorFlow_AddAndRemoveItems(t *testing.T) {
	upstreamHandler, updates := workOrderUpstream(t)
	env := setupGatewayTestEnv(t, upstreamHandler)
	cookies := env.login(t)

	state := env.openEditor(t, cookies)

	w := env.do(t, http.MethodPost, "/api/editors/"+state.ID+"/items", map[string]string{"text": "Refill oil"}, cookies)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Item   models.ChecklistItem `json:"item"`
		Editor editorStateResponse  `json:"editor"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, "Refill oil", created.Item.Text)
	require.Equal(t, "mohamed", created.Item.CreatedBy)
	require.Len(t, created.Editor.Checklist, 3)

	w = env.do(t, http.MethodDelete, "/api/editors/"+state.ID+"/items/"+created.Item.ID, nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	require.Len(t, state.Checklist, 2)

	// Everything stayed local.
	require.Empty(t, *updates)

	w = env.do(t, http.MethodPost, "/api/editors/"+state.ID+"/items", map[string]string{"text": ""}, cookies)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEditorFlow_CloseDirtyNeedsForce(t *testing.T) {
	upstreamHandler, _ := workOrderUpstream(t)
	env := setupGatewayTestEnv(t, upstreamHandler)
	cookies := env.login(t)

	state := env.openEditor(t, cookies)
	w := env.do(t, http.MethodPut, "/api/editors/"+state.ID+"/items/item-1", map[string]bool{"completed": true}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodDelete, "/api/editors/"+state.ID, nil, cookies)
	require.Equal(t, http.StatusConflict, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "UNSAVED_CHANGES", response["code"])

	w = env.do(t, http.MethodDelete, "/api/editors/"+state.ID+"?force=true", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/editors/"+state.ID, nil, cookies)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestEditorFlow_CleanCloseNeedsNoForce(t *testing.T) {
	upstreamHandler, _ := workOrderUpstream(t)
	env := setupGatewayTestEnv(t, upstreamHandler)
	cookies := env.login(t)

	state := env.openEditor(t, cookies)

	w := env.do(t, http.MethodDelete, "/api/editors/"+state.ID, nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestEditorFlow_DraftSurvivesReopen(t *testing.T) {
	upstreamHandler, _ := workOrderUpstream(t)
	env := setupGatewayTestEnv(t, upstreamHandler)
	cookies := env.login(t)

	state := env.openEditor(t, cookies)
	w := env.do(t, http.MethodPut, "/api/editors/"+state.ID+"/items/item-1", map[string]bool{"completed": true}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	// A second open (the first panel is still registered but its draft is
	// shared) adopts the unsaved draft.
	reopened := env.openEditor(t, cookies)
	require.NotEqual(t, state.ID, reopened.ID)
	require.True(t, reopened.Dirty)
	require.True(t, reopened.Checklist[0].Completed)
}

func TestEditorFlow_ModeTransitions(t *testing.T) {
	upstreamHandler, _ := workOrderUpstream(t)
	env := setupGatewayTestEnv(t, upstreamHandler)
	cookies := env.login(t)

	state := env.openEditor(t, cookies)

	w := env.do(t, http.MethodPost, "/api/editors/"+state.ID+"/edit", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	require.Equal(t, "editing", state.Mode)

	w = env.do(t, http.MethodPost, "/api/editors/"+state.ID+"/view", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	require.Equal(t, "viewing", state.Mode)
}

func TestEditorFlow_MaintenanceSavePersistsLocally(t *testing.T) {
	env := setupGatewayTestEnv(t, nil)
	cookies := env.login(t)

	w := env.do(t, http.MethodPost, "/api/maintenance-tasks", map[string]interface{}{
		"title":           "Oil Level Check",
		"frequency":       "Daily",
		"checklist_items": []string{"Drain", "Refill"},
	}, cookies)
	require.Equal(t, http.StatusCreated, w.Code)

	var task models.MaintenanceTask
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))

	w = env.do(t, http.MethodPost, "/api/maintenance-tasks/"+task.ID+"/editor", nil, cookies)
	require.Equal(t, http.StatusCreated, w.Code)
	var state editorStateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	require.Equal(t, "maintenance", state.Kind)

	itemID := state.Checklist[0].ID
	w = env.do(t, http.MethodPut, "/api/editors/"+state.ID+"/items/"+itemID, map[string]bool{"completed": true}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	before := env.recorder.count()
	w = env.do(t, http.MethodPost, "/api/editors/"+state.ID+"/save", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	// Local-only saves never touch the upstream.
	require.Equal(t, before, env.recorder.count())

	w = env.do(t, http.MethodGet, "/api/maintenance-tasks/"+task.ID, nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	require.True(t, task.Checklist[0].Completed)
}

func TestEditorHandler_MutationsWithoutAccountUnauthorized(t *testing.T) {
	env := setupGatewayTestEnv(t, nil)

	editor, err := env.editors.OpenWorkOrder(&models.WorkOrder{
		ID:        "wo-1",
		Title:     "Fix conveyor",
		Checklist: models.Checklist{{ID: "item-1", Text: "Check belt tension"}},
	})
	require.NoError(t, err)

	// Routes wired without the session middleware: the handler still refuses
	// to act when no account is present.
	r := gin.New()
	r.PUT("/editors/:id/items/:itemId", env.editorHandler.ToggleItem)
	r.POST("/editors/:id/items", env.editorHandler.AddItem)

	body, err := json.Marshal(map[string]bool{"completed": true})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, "/editors/"+editor.ID+"/items/item-1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.False(t, editor.Checklist.Items()[0].Completed)

	body, err = json.Marshal(map[string]string{"text": "Grease rollers"})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodPost, "/editors/"+editor.ID+"/items", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Len(t, editor.Checklist.Items(), 1)
}
