// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andresuchdata/stockpilot/internal/api"
	"github.com/andresuchdata/stockpilot/internal/cache"
	"github.com/andresuchdata/stockpilot/internal/config"
	"github.com/andresuchdata/stockpilot/internal/engine"
	"github.com/andresuchdata/stockpilot/internal/repository"
	"github.com/andresuchdata/stockpilot/internal/repository/jsonfile"
	"github.com/andresuchdata/stockpilot/internal/repository/postgres"
	"github.com/andresuchdata/stockpilot/internal/service"
	"github.com/andresuchdata/stockpilot/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	repo, cleanup, err := newRepository(cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize action log store")
	}
	defer cleanup()

	summaryCache, err := cache.NewSummaryCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Cache unavailable, continuing without it")
		summaryCache = cache.NewNoopSummaryCache()
	}

	rnd := engine.NewRand()
	inventoryService := service.NewInventoryService(engine.NewGenerator(rnd), repo, summaryCache)
	actionService := service.NewActionService(repo, engine.NewSimulator(rnd), cfg.Engine.DefaultOwner, summaryCache)

	if err := actionService.SeedSampleLogs(context.Background()); err != nil {
		logger.Log.Warn().Err(err).Msg("Failed to seed sample action logs")
	}

	router := api.NewRouter(&api.Services{
		InventoryService: inventoryService,
		ActionService:    actionService,
	}, api.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		DefaultItemCount: cfg.Engine.ItemCount,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Str("backend", cfg.Storage.Backend).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}

func newRepository(cfg *config.Config) (repository.ActionLogRepository, func(), error) {
	switch cfg.Storage.Backend {
	case "postgres":
		db, err := postgres.NewDB(&cfg.Storage)
		if err != nil {
			return nil, nil, err
		}
		repo, err := postgres.NewActionLogRepository(db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return repo, func() { db.Close() }, nil
	default:
		store, err := jsonfile.NewStore(cfg.Storage.FilePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}
