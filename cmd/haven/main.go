package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/havenapp/haven/internal/alertstore"
	"github.com/havenapp/haven/internal/api"
	"github.com/havenapp/haven/internal/config"
	"github.com/havenapp/haven/internal/geocode"
	"github.com/havenapp/haven/internal/ingestion"
	"github.com/havenapp/haven/internal/logging"
	"github.com/havenapp/haven/internal/planner"
	"github.com/havenapp/haven/internal/repository"
	"github.com/havenapp/haven/internal/resource"
	"github.com/havenapp/haven/internal/weather"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port)

	db, err := repository.NewSQLiteDB(cfg.DB.Path)
	if err != nil {
		logging.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := alertstore.New(ctx, db)
	if err != nil {
		logging.Fatalf("Failed to initialize alert store: %v", err)
	}

	usgs := ingestion.NewUSGSClient(cfg.Sources.USGSBaseURL, cfg.Sources.USGSTimeout)

	// Start ingestion manager
	mgr := ingestion.NewManager(cfg, store, usgs)
	mgr.Start(ctx)

	weatherClient := weather.NewClient(cfg.Weather.BaseURL, cfg.Weather.APIKey, cfg.Weather.Timeout)

	var planClient api.PlanGenerator
	if cfg.OpenAI.APIKey != "" {
		planClient = planner.NewClient(planner.CompletionConfig{
			APIKey:      cfg.OpenAI.APIKey,
			Model:       cfg.OpenAI.Model,
			Temperature: float32(cfg.OpenAI.Temperature),
			MaxTokens:   cfg.OpenAI.MaxTokens,
			Timeout:     cfg.OpenAI.Timeout,
		})
	} else {
		slog.Warn("no OpenAI API key configured, plans and recommendations fall back to templates")
	}

	generator := resource.NewSeeded(time.Now().UnixNano())

	geocoder := geocode.NewClient(cfg.Geocode.BaseURL, cfg.Geocode.UserAgent, cfg.Geocode.Timeout)

	// Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false, // Set to false when using wildcard origins
	}))
	router.Use(api.RateLimitMiddleware(5)) // 5 req/s global limit

	handler := api.NewHandler(store, weatherClient, usgs, planClient, generator, geocoder)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	cancel()
	mgr.Stop()
	store.Close()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
}
