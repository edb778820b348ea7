package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/equiptrack/gateway/internal/events"
	"github.com/equiptrack/gateway/internal/middleware"
	"github.com/equiptrack/gateway/internal/models"
	"github.com/equiptrack/gateway/internal/services"
	"github.com/equiptrack/gateway/internal/store"
	"github.com/equiptrack/gateway/internal/upstream"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// upstreamRecorder wraps the mock upstream handler and logs every request it
// receives, so tests can assert on what did (or did not) reach the backend.
type upstreamRecorder struct {
	mu       sync.Mutex
	requests []string
	handler  http.HandlerFunc
}

func (r *upstreamRecorder) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mu.Lock()
	r.requests = append(r.requests, req.Method+" "+req.URL.Path)
	r.mu.Unlock()
	r.handler(w, req)
}

func (r *upstreamRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}

type gatewayTestEnv struct {
	router        *gin.Engine
	recorder      *upstreamRecorder
	drafts        store.DraftRepository
	editors       *services.EditorService
	board         *services.BoardService
	editorHandler *EditorHandler

	// loginUser is what the mock upstream returns from /auth/login.
	loginUser models.User
}

// setupGatewayTestEnv wires the full route surface against a mock upstream,
// mirroring the server's composition root.
func setupGatewayTestEnv(t *testing.T, upstreamHandler http.HandlerFunc) *gatewayTestEnv {
	t.Helper()

	env := &gatewayTestEnv{
		loginUser: models.User{ID: "u1", Username: "mohamed", Email: "mohamed@example.com", Role: models.RoleAdmin},
	}

	env.recorder = &upstreamRecorder{handler: func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/api/auth/login" {
			var creds map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
			if creds["password"] != "supersecret" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect username or password"})
				return
			}
			json.NewEncoder(w).Encode(upstream.TokenResponse{
				AccessToken: "test-token",
				TokenType:   "bearer",
				User:        env.loginUser,
			})
			return
		}
		if upstreamHandler != nil {
			upstreamHandler(w, r)
			return
		}
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "not found"})
	}}
	srv := httptest.NewServer(env.recorder)
	t.Cleanup(srv.Close)

	db, err := store.Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Migrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	drafts := store.NewDraftRepository(db)
	snapshots := store.NewSnapshotRepository(db)
	maintenanceTasks := store.NewMaintenanceTaskRepository(db)
	env.drafts = drafts

	client := upstream.NewClient(srv.URL, 5*time.Second)
	bus := events.NewBus()

	env.board = services.NewBoardService(bus)
	t.Cleanup(env.board.Stop)
	maintenanceService := services.NewMaintenanceService(maintenanceTasks)
	env.editors = services.NewEditorService(drafts, snapshots, bus)
	calendarService := services.NewCalendarService(maintenanceTasks)
	dailyService := services.NewDailyService(maintenanceTasks)

	authHandler := NewAuthHandler(client)
	boardHandler := NewBoardHandler(env.board, client)
	workOrderHandler := NewWorkOrderHandler(client, dailyService)
	editorHandler := NewEditorHandler(env.editors, maintenanceService, client)
	env.editorHandler = editorHandler
	maintenanceHandler := NewMaintenanceHandler(maintenanceService, dailyService)
	departmentHandler := NewDepartmentHandler(client)
	viewHandler := NewViewHandler(dailyService, calendarService, client)
	billingHandler := NewBillingHandler(client)
	supportHandler := NewSupportHandler()

	r := gin.New()
	r.Use(sessions.Sessions("equiptrack_session", cookie.NewStore([]byte("secret"))))

	api := r.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/register", authHandler.Register)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", middleware.RequireSession(), authHandler.GetCurrentUser)

	protected := api.Group("")
	protected.Use(middleware.RequireSession())
	protected.GET("/board", boardHandler.GetBoard)
	protected.PUT("/board/cards/:id/move", boardHandler.MoveCard)
	protected.GET("/work-orders", workOrderHandler.ListWorkOrders)
	protected.POST("/work-orders", workOrderHandler.CreateWorkOrder)
	protected.GET("/work-orders/:id", workOrderHandler.GetWorkOrder)
	protected.PATCH("/work-orders/:id", workOrderHandler.UpdateWorkOrder)
	protected.DELETE("/work-orders/:id", workOrderHandler.DeleteWorkOrder)
	protected.GET("/work-orders/:id/print", workOrderHandler.PrintWorkOrder)
	protected.POST("/work-orders/:id/editor", editorHandler.OpenWorkOrderEditor)
	protected.GET("/maintenance-tasks", maintenanceHandler.ListMaintenanceTasks)
	protected.POST("/maintenance-tasks", maintenanceHandler.CreateMaintenanceTask)
	protected.GET("/maintenance-tasks/:id", maintenanceHandler.GetMaintenanceTask)
	protected.PUT("/maintenance-tasks/:id", maintenanceHandler.UpdateMaintenanceTask)
	protected.DELETE("/maintenance-tasks/:id", maintenanceHandler.DeleteMaintenanceTask)
	protected.GET("/maintenance-tasks/:id/print", maintenanceHandler.PrintMaintenanceTask)
	protected.POST("/maintenance-tasks/:id/editor", editorHandler.OpenMaintenanceEditor)
	protected.GET("/editors/:id", editorHandler.GetEditor)
	protected.POST("/editors/:id/edit", editorHandler.BeginEdit)
	protected.POST("/editors/:id/view", editorHandler.EndEdit)
	protected.PUT("/editors/:id/items/:itemId", editorHandler.ToggleItem)
	protected.POST("/editors/:id/items", editorHandler.AddItem)
	protected.DELETE("/editors/:id/items/:itemId", editorHandler.RemoveItem)
	protected.POST("/editors/:id/save", editorHandler.SaveChecklist)
	protected.DELETE("/editors/:id", editorHandler.CloseEditor)
	protected.GET("/daily-tasks", viewHandler.GetDailyView)
	protected.GET("/calendar", viewHandler.GetCalendarMonth)

	admin := protected.Group("")
	admin.Use(middleware.RequireAdmin("Admin access required"))
	admin.GET("/departments", departmentHandler.ListDepartments)
	admin.POST("/departments", departmentHandler.CreateDepartment)
	admin.GET("/departments/:id", departmentHandler.GetDepartment)
	admin.DELETE("/departments/:id", departmentHandler.DeleteDepartment)
	admin.GET("/machines", departmentHandler.ListMachines)
	admin.POST("/machines", departmentHandler.CreateMachine)
	admin.GET("/machines/:id", departmentHandler.GetMachine)
	admin.DELETE("/machines/:id", departmentHandler.DeleteMachine)

	protected.GET("/billing/subscription-status", billingHandler.GetSubscriptionStatus)
	protected.GET("/billing/packages", billingHandler.ListPackages)
	protected.POST("/billing/checkout", billingHandler.CreateCheckout)
	protected.GET("/billing/payment-status/:sessionId", billingHandler.GetPaymentStatus)
	protected.GET("/support", supportHandler.GetSupportInfo)
	protected.POST("/support/requests", supportHandler.SubmitSupportRequest)

	env.router = r
	return env
}

// login runs the real login flow and returns the session cookies.
func (env *gatewayTestEnv) login(t *testing.T) []*http.Cookie {
	t.Helper()

	body, err := json.Marshal(map[string]string{
		"username": env.loginUser.Username,
		"password": "supersecret",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

// do issues a request through the router with optional session cookies.
func (env *gatewayTestEnv) do(t *testing.T, method, path string, payload interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}
