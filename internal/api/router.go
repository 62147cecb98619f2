// Package api assembles the HTTP routes.
package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jsayram/CodeDetailsWeb-sub001/internal/api/handlers"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/api/middleware"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/service"
)

type RouterConfig struct {
	CORSOrigins []string
	Logger      *zap.Logger
	Services    *service.Services
	Handlers    *handlers.Handlers

	// Optional
	WebSocket gin.HandlerFunc
	Health    gin.HandlerFunc
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	h := cfg.Handlers

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.Health != nil {
		r.GET("/health", cfg.Health)
	}

	api := r.Group("/api")
	{
		if cfg.WebSocket != nil {
			api.GET("/ws", cfg.WebSocket)
		}

		// ============================================
		// Public routes (no auth required)
		// ============================================
		categories := api.Group("/categories")
		{
			categories.GET("", h.Catalog.ListCategories)
			categories.GET("/common-fields", h.Catalog.CommonFields)
			categories.GET("/:category", h.Catalog.GetCategory)
			categories.POST("/migration-preview", h.Catalog.PreviewMigration)
		}

		public := api.Group("")
		public.Use(middleware.OptionalAuthMiddleware(cfg.Services.Auth))
		{
			public.GET("/projects", h.Project.List)
			public.GET("/projects/:id", h.Project.Get)
			public.GET("/projects/slug/:slug", h.Project.GetBySlug)
			public.GET("/projects/:id/completeness", h.Project.Completeness)
			public.GET("/tags", h.Tag.List)
			public.GET("/users/:username", h.User.GetByUsername)
		}

		// ============================================
		// Protected routes (require auth middleware)
		// ============================================
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(cfg.Services.Auth, cfg.Services.User, log))
		{
			me := protected.Group("/me")
			{
				me.GET("", h.User.GetCurrentUser)
				me.GET("/projects", h.Project.ListMine)
				me.GET("/favorites", h.Favorite.List)
				me.GET("/tag-submissions", h.Tag.ListMySubmissions)
			}

			projects := protected.Group("/projects")
			{
				projects.POST("", h.Project.Create)
				projects.PUT("/:id", h.Project.Update)
				projects.DELETE("/:id", h.Project.Delete)
				projects.POST("/:id/restore", h.Project.Restore)
				projects.DELETE("/:id/permanent", h.Project.PermanentDelete)

				// Category data & field order
				projects.PATCH("/:id/category-data", h.Project.UpdateCategoryData)
				projects.POST("/:id/fields", h.Project.AddField)
				projects.POST("/:id/fields/toggle", h.Project.ToggleField)
				projects.POST("/:id/fields/move", h.Project.MoveField)
				projects.PUT("/:id/fields/position", h.Project.SetFieldPosition)

				// Category changes
				projects.POST("/:id/category", h.Project.RequestCategoryChange)

				// Tags
				projects.POST("/:id/tags", h.Tag.Attach)
				projects.DELETE("/:id/tags/:tag", h.Tag.Detach)

				// Favorites
				projects.GET("/:id/favorite", h.Favorite.Status)
				projects.POST("/:id/favorite", h.Favorite.Add)
				projects.DELETE("/:id/favorite", h.Favorite.Remove)
			}

			changes := protected.Group("/category-changes")
			{
				changes.POST("/confirm", h.Project.ConfirmCategoryChange)
				changes.POST("/cancel", h.Project.CancelCategoryChange)
			}

			admin := protected.Group("/admin")
			admin.Use(middleware.RequireAdmin(cfg.Services.User, log))
			{
				admin.GET("/tag-submissions", h.Tag.ListSubmissions)
				admin.POST("/tag-submissions/:id/approve", h.Tag.Approve)
				admin.POST("/tag-submissions/:id/reject", h.Tag.Reject)
				admin.PUT("/users/:id/role", h.User.SetRole)

				admin.GET("/analytics", h.Analytics.Overview)
				admin.GET("/analytics/completeness", h.Analytics.Completeness)
				admin.GET("/analytics/snapshots", h.Analytics.Snapshots)
				admin.POST("/analytics/snapshots", h.Analytics.TakeSnapshot)
			}
		}
	}

	return r
}
