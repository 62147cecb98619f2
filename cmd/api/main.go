// main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jsayram/CodeDetailsWeb-sub001/internal/api"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/api/handlers"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/config"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/cron"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/db"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/logger"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/repository"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/seed"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/service"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/socket"
)

func main() {
	// ============================================
	// Load environment variables
	// ============================================
	envErr := godotenv.Load()

	// ============================================
	// Load configuration & logger
	// ============================================
	cfg := config.Load()

	zlog, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync() //nolint:errcheck

	if envErr != nil {
		zlog.Info("no .env file found, using environment variables")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ============================================
	// Run Database Migrations FIRST
	// ============================================
	dbLog := logger.Component(zlog, "db")
	if err := db.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, dbLog); err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}

	// ============================================
	// Initialize PostgreSQL (pgxpool + sqlx)
	// ============================================
	pg, err := db.NewPostgresDB(ctx, cfg.DatabaseURL, dbLog)
	if err != nil {
		zlog.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pg.Close()

	repos := repository.NewRepositories(pg.Pool, pg.SQL)

	// ============================================
	// Initialize Redis (optional)
	// ============================================
	var (
		redisDB *db.RedisDB
		kv      service.KeyValueStore
	)
	if cfg.RedisURL != "" {
		redisDB, err = db.NewRedisDB(ctx, cfg.RedisURL, logger.Component(zlog, "redis"))
		if err != nil {
			zlog.Warn("failed to connect to Redis, keeping pending changes in memory", zap.Error(err))
		} else {
			defer redisDB.Close()
			kv = redisDB
		}
	}

	// ============================================
	// Initialize WebSocket Hub
	// ============================================
	hub := socket.NewHub(logger.Component(zlog, "hub"))
	go hub.Run(ctx)
	broadcaster := socket.NewBroadcaster(hub)

	// ============================================
	// Initialize All Services
	// ============================================
	services := service.NewServices(&service.ServiceDeps{
		Config: cfg,
		Repos:  repos,
		KV:     kv,
		Events: broadcaster,
		Logger: logger.Component(zlog, "service"),
	})

	if err := services.Tag.WarmCache(ctx); err != nil {
		zlog.Warn("failed to warm tag cache", zap.Error(err))
	}

	// ============================================
	// Seed Data (for development)
	// ============================================
	if !cfg.IsProduction() {
		if err := seed.SeedData(ctx, repos, services, logger.Component(zlog, "seed")); err != nil {
			zlog.Warn("failed to seed development data", zap.Error(err))
		}
	}

	// ============================================
	// Initialize Cron Scheduler
	// ============================================
	if cfg.CronEnabled {
		scheduler := cron.NewScheduler(services, logger.Component(zlog, "cron"))
		if err := scheduler.Start(); err != nil {
			zlog.Fatal("failed to start scheduler", zap.Error(err))
		}
		defer scheduler.Stop()
	}

	// ============================================
	// Create Gin Router
	// ============================================
	wsHandler := socket.NewHandler(hub, services.Auth.UserIDFromToken, cfg.CORSOrigins)
	r := api.NewRouter(api.RouterConfig{
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger.Component(zlog, "http"),
		Services:    services,
		Handlers:    handlers.NewHandlers(services),
		WebSocket:   wsHandler.HandleWebSocket,
		Health: func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":     "healthy",
				"timestamp":  time.Now(),
				"database":   databaseStatus(c.Request.Context(), pg),
				"cache":      getCacheStatus(redisDB),
				"ws_clients": hub.GetConnectedClientsCount(),
			})
		},
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zlog.Info("server starting", zap.String("port", cfg.Port), zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	<-ctx.Done()
	zlog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server forced to shutdown", zap.Error(err))
	}
	zlog.Info("server exited")
}

func databaseStatus(ctx context.Context, pg *db.PostgresDB) string {
	if err := pg.Pool.Ping(ctx); err != nil {
		return "unavailable"
	}
	return "connected"
}

func getCacheStatus(redisDB *db.RedisDB) string {
	if redisDB == nil {
		return "memory"
	}
	return "redis"
}
