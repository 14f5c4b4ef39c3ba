package main

import (
	"github.com/gin-gonic/gin"
	"github.com/styledesk/styledesk/internal/handlers"
	"github.com/styledesk/styledesk/internal/middleware"
	"github.com/styledesk/styledesk/internal/models"
	"github.com/styledesk/styledesk/internal/services"
	"github.com/styledesk/styledesk/pkg/logger"
)

func registerRoutes(r *gin.Engine, svc *appServices) {
	r.RedirectTrailingSlash = false

	r.Use(logger.GinLogger())
	r.Use(logger.GinRecovery())
	r.Use(middleware.CORS())

	db := models.GetDB()

	healthHandler := handlers.NewHealthHandler()
	eventsHandler := handlers.NewEventsHandler(services.GetEventHub())
	dashboardHandler := handlers.NewDashboardHandler(db)
	settingsHandler := handlers.NewSettingsHandler(db)
	componentHandler := handlers.NewComponentHandler(db)
	imageHandler := handlers.NewImageHandler(db)
	feedbackHandler := handlers.NewFeedbackHandler(db)
	commandHandler := handlers.NewCommandHandler(db, &svc.cfg.AI)
	systemLogHandler := handlers.NewSystemLogHandler(db)

	r.GET("/health", healthHandler.CheckHealth)

	api := r.Group("/api")

	// Public endpoints
	api.POST("/auth/login", svc.authHandler.Login)
	api.GET("/auth/config", svc.authHandler.GetAuthConfig)

	// The SSE stream validates its token internally so browser EventSource
	// clients can pass it as a query parameter.
	api.GET("/events", eventsHandler.StreamChanges)

	// Visitors can file feedback without an account.
	api.POST("/feedback", middleware.RateLimit(2, 5), feedbackHandler.Create)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired())
	protected.Use(middleware.AuditLog())
	{
		protected.GET("/auth/me", svc.authHandler.GetCurrentUser)
		protected.POST("/auth/logout", svc.authHandler.Logout)
		protected.POST("/auth/change-password", svc.authHandler.ChangePassword)

		protected.GET("/dashboard", dashboardHandler.GetStats)

		// One identical route set per token category.
		for _, cat := range models.TokenCategories {
			h := handlers.NewTokenHandler(db, cat)
			grp := protected.Group("/" + cat.Path)
			grp.GET("", h.List)
			grp.POST("", h.Create)
			grp.GET("/active", h.GetActive)
			grp.GET("/:id", h.Get)
			grp.PUT("/:id", h.Update)
			grp.DELETE("/:id", h.Delete)
			grp.POST("/:id/activate", h.Activate)
		}

		protected.GET("/settings", settingsHandler.GetConfig)
		protected.GET("/settings/versions", settingsHandler.ListVersions)
		protected.POST("/settings/versions", settingsHandler.CreateVersion)

		protected.GET("/components", componentHandler.List)
		protected.GET("/components/groups", componentHandler.Groups)
		protected.GET("/components/:id", componentHandler.Get)
		protected.POST("/components", componentHandler.Create)
		protected.PUT("/components/:id", componentHandler.Update)
		protected.DELETE("/components/:id", componentHandler.Delete)

		protected.GET("/images", imageHandler.List)
		protected.GET("/images/:id", imageHandler.Get)
		protected.POST("/images", imageHandler.Create)
		protected.PUT("/images/:id", imageHandler.Update)
		protected.DELETE("/images/:id", imageHandler.Delete)

		protected.GET("/feedback", feedbackHandler.List)
		protected.GET("/feedback/:id", feedbackHandler.Get)
		protected.PUT("/feedback/:id/status", feedbackHandler.UpdateStatus)
		protected.DELETE("/feedback/:id", feedbackHandler.Delete)
		protected.POST("/feedback/:id/comments", feedbackHandler.AddComment)

		protected.POST("/command", middleware.RateLimit(5, 10), commandHandler.Execute)
		protected.POST("/command/parse", commandHandler.Parse)
	}

	admin := api.Group("")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.GET("/system-logs", systemLogHandler.List)
		admin.GET("/system-logs/modules", systemLogHandler.GetModules)
	}
}
