package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/wadjakorntonsri/go-link-in-bio/pkg/adapters/cache"
	"github.com/wadjakorntonsri/go-link-in-bio/pkg/adapters/handler"
	"github.com/wadjakorntonsri/go-link-in-bio/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/go-link-in-bio/pkg/config"
	"github.com/wadjakorntonsri/go-link-in-bio/pkg/core/catalog"
	"github.com/wadjakorntonsri/go-link-in-bio/pkg/core/services"
	"github.com/wadjakorntonsri/go-link-in-bio/pkg/logger"
	"github.com/wadjakorntonsri/go-link-in-bio/pkg/ports"
)

func main() {
	cfg := config.Load()
	logger.Initialize(cfg.LogLevel, cfg.AppEnv)

	// Initialize Repository
	repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer repo.Close()

	// Initialize Render Cache
	var renderCache ports.RenderCache
	if cfg.CacheMaxSizeMB > 0 {
		rc, err := cache.NewRenderCache(cache.Options{MaxSizeMB: cfg.CacheMaxSizeMB, TTL: cfg.CacheTTL})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize render cache")
		}
		defer rc.Close()
		renderCache = rc
	}

	// Initialize Services
	accounts := services.NewAccountService(repo, cfg.AuthDelay)
	profiles := services.NewProfileService(repo, renderCache, catalog.Themes(), cfg.BaseURL)

	// Initialize Router
	mux := handler.NewRouter(cfg, accounts, profiles)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.AppEnv).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server stopped")
}
