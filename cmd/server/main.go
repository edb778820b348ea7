package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/equiptrack/gateway/internal/config"
	"github.com/equiptrack/gateway/internal/events"
	"github.com/equiptrack/gateway/internal/handlers"
	"github.com/equiptrack/gateway/internal/middleware"
	"github.com/equiptrack/gateway/internal/services"
	"github.com/equiptrack/gateway/internal/store"
	"github.com/equiptrack/gateway/internal/upstream"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Open the local store (drafts, snapshots, maintenance tasks)
	db, err := store.Open(cfg.LocalStorePath)
	if err != nil {
		log.Fatalf("Failed to open local store: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := store.Seed(db); err != nil {
		log.Fatalf("Failed to seed local store: %v", err)
	}

	drafts := store.NewDraftRepository(db)
	snapshots := store.NewSnapshotRepository(db)
	maintenanceTasks := store.NewMaintenanceTaskRepository(db)

	// Upstream API client and the update broadcast bus
	client := upstream.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamTimeout)
	bus := events.NewBus()

	// Services
	boardService := services.NewBoardService(bus)
	defer boardService.Stop()

	maintenanceService := services.NewMaintenanceService(maintenanceTasks)
	editorService := services.NewEditorService(drafts, snapshots, bus)
	calendarService := services.NewCalendarService(maintenanceTasks)

	dailyService := services.NewDailyService(maintenanceTasks)
	dailyService.Start()
	defer dailyService.Stop()

	// Initialize Gin router
	r := gin.Default()

	// Session middleware backed by a signed cookie
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	isProduction := cfg.GinMode == "release"
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(cfg.SessionCookieName, sessionStore))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(client)
	boardHandler := handlers.NewBoardHandler(boardService, client)
	workOrderHandler := handlers.NewWorkOrderHandler(client, dailyService)
	editorHandler := handlers.NewEditorHandler(editorService, maintenanceService, client)
	maintenanceHandler := handlers.NewMaintenanceHandler(maintenanceService, dailyService)
	departmentHandler := handlers.NewDepartmentHandler(client)
	viewHandler := handlers.NewViewHandler(dailyService, calendarService, client)
	billingHandler := handlers.NewBillingHandler(client)
	supportHandler := handlers.NewSupportHandler()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "EquipTrack gateway is running",
		})
	})

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/register", authHandler.Register)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireSession(), authHandler.GetCurrentUser)
		}

		// Everything else requires a session
		protected := api.Group("")
		protected.Use(middleware.RequireSession())
		{
			// Kanban board
			protected.GET("/board", boardHandler.GetBoard)
			protected.PUT("/board/cards/:id/move", boardHandler.MoveCard)

			// Work orders (proxied upstream)
			workOrders := protected.Group("/work-orders")
			{
				workOrders.GET("", workOrderHandler.ListWorkOrders)
				workOrders.POST("", workOrderHandler.CreateWorkOrder)
				workOrders.GET("/:id", workOrderHandler.GetWorkOrder)
				workOrders.PATCH("/:id", workOrderHandler.UpdateWorkOrder)
				workOrders.DELETE("/:id", workOrderHandler.DeleteWorkOrder)
				workOrders.GET("/:id/print", workOrderHandler.PrintWorkOrder)
				workOrders.POST("/:id/editor", editorHandler.OpenWorkOrderEditor)
			}
			protected.GET("/users", workOrderHandler.ListUsers)

			// Recurring maintenance tasks (local store)
			maintenance := protected.Group("/maintenance-tasks")
			{
				maintenance.GET("", maintenanceHandler.ListMaintenanceTasks)
				maintenance.POST("", maintenanceHandler.CreateMaintenanceTask)
				maintenance.GET("/:id", maintenanceHandler.GetMaintenanceTask)
				maintenance.PUT("/:id", maintenanceHandler.UpdateMaintenanceTask)
				maintenance.DELETE("/:id", maintenanceHandler.DeleteMaintenanceTask)
				maintenance.GET("/:id/print", maintenanceHandler.PrintMaintenanceTask)
				maintenance.POST("/:id/editor", editorHandler.OpenMaintenanceEditor)
			}

			// Detail editors and their checklist edit buffers
			editors := protected.Group("/editors")
			{
				editors.GET("/:id", editorHandler.GetEditor)
				editors.POST("/:id/edit", editorHandler.BeginEdit)
				editors.POST("/:id/view", editorHandler.EndEdit)
				editors.PUT("/:id/items/:itemId", editorHandler.ToggleItem)
				editors.POST("/:id/items", editorHandler.AddItem)
				editors.DELETE("/:id/items/:itemId", editorHandler.RemoveItem)
				editors.POST("/:id/save", editorHandler.SaveChecklist)
				editors.DELETE("/:id", editorHandler.CloseEditor)
			}

			// Derived views
			protected.GET("/daily-tasks", viewHandler.GetDailyView)
			protected.GET("/calendar", viewHandler.GetCalendarMonth)

			// Departments and machines (admin only)
			admin := protected.Group("")
			admin.Use(middleware.RequireAdmin("Admin access required"))
			{
				admin.GET("/departments", departmentHandler.ListDepartments)
				admin.POST("/departments", departmentHandler.CreateDepartment)
				admin.GET("/departments/:id", departmentHandler.GetDepartment)
				admin.DELETE("/departments/:id", departmentHandler.DeleteDepartment)
				admin.GET("/machines", departmentHandler.ListMachines)
				admin.POST("/machines", departmentHandler.CreateMachine)
				admin.GET("/machines/:id", departmentHandler.GetMachine)
				admin.DELETE("/machines/:id", departmentHandler.DeleteMachine)
			}

			// Subscription and billing
			billing := protected.Group("/billing")
			{
				billing.GET("/subscription-status", billingHandler.GetSubscriptionStatus)
				billing.GET("/packages", billingHandler.ListPackages)
				billing.POST("/checkout", billingHandler.CreateCheckout)
				billing.GET("/payment-status/:sessionId", billingHandler.GetPaymentStatus)
			}

			// Support
			protected.GET("/support", supportHandler.GetSupportInfo)
			protected.POST("/support/requests", supportHandler.SubmitSupportRequest)
		}
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
