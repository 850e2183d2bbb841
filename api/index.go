package handler

import (
	"net/http"

	"github.com/wadjakorntonsri/go-link-in-bio/pkg/adapters/cache"
	"github.com/wadjakorntonsri/go-link-in-bio/pkg/adapters/handler"
	"github.com/wadjakorntonsri/go-link-in-bio/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/go-link-in-bio/pkg/config"
	"github.com/wadjakorntonsri/go-link-in-bio/pkg/core/catalog"
	"github.com/wadjakorntonsri/go-link-in-bio/pkg/core/services"
	"github.com/wadjakorntonsri/go-link-in-bio/pkg/logger"
	"github.com/wadjakorntonsri/go-link-in-bio/pkg/ports"
)

var mux http.Handler

func init() {
	cfg := config.Load()
	logger.Initialize(cfg.LogLevel, cfg.AppEnv)

	// Note: On Vercel, db.sqlite is ephemeral unless using a remote SQL/Turso URL in DATABASE_URL
	repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		panic(err)
	}

	// Instances are short lived, the cache only helps within one warm instance.
	var renderCache ports.RenderCache
	if cfg.CacheMaxSizeMB > 0 {
		rc, err := cache.NewRenderCache(cache.Options{MaxSizeMB: cfg.CacheMaxSizeMB, TTL: cfg.CacheTTL})
		if err != nil {
			panic(err)
		}
		renderCache = rc
	}

	accounts := services.NewAccountService(repo, cfg.AuthDelay)
	profiles := services.NewProfileService(repo, renderCache, catalog.Themes(), cfg.BaseURL)
	mux = handler.NewRouter(cfg, accounts, profiles)
}

// Handler is the entrypoint for Vercel
func Handler(w http.ResponseWriter, r *http.Request) {
	mux.ServeHTTP(w, r)
}
