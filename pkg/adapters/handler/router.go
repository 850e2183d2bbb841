package handler

import (
	"net/http"

	"github.com/wadjakorntonsri/go-link-in-bio/pkg/config"
	"github.com/wadjakorntonsri/go-link-in-bio/pkg/ports"
)

// NewRouter creates and configures the main application router
func NewRouter(cfg *config.Config, accounts ports.AccountService, profiles ports.ProfileService) http.Handler {
	// Initialize Handlers
	ah := NewAuthHandler(cfg, accounts)
	ph := NewProfileHandler(profiles)
	lh := NewLinkHandler(profiles)
	pub := NewPublicHandler(profiles)

	// Initialize Middleware
	mw := NewMiddleware(cfg, profiles)
	limiter := NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.TrustedProxies...)

	// Setup Router
	mux := http.NewServeMux()

	// Public Routes
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	})
	mux.Handle("GET /u/{username}", limiter.Limit(http.HandlerFunc(pub.GetProfile)))
	mux.Handle("GET /u/{username}/qr", limiter.Limit(http.HandlerFunc(pub.QRCode)))
	mux.Handle("POST /auth/register", limiter.Limit(http.HandlerFunc(ah.Register)))
	mux.Handle("POST /auth/login", limiter.Limit(http.HandlerFunc(ah.PasswordLogin)))
	mux.HandleFunc("GET /auth/google/login", ah.GoogleLogin)
	mux.HandleFunc("GET /auth/google/callback", ah.GoogleCallback)
	mux.HandleFunc("GET /auth/logout", ah.Logout)

	// Protected Routes
	protectedMux := http.NewServeMux()
	protectedMux.HandleFunc("GET /api/v1/profile", ph.Get)
	protectedMux.HandleFunc("PATCH /api/v1/profile", ph.Update)
	protectedMux.HandleFunc("POST /api/v1/profile/avatar", ph.UploadAvatar)
	protectedMux.HandleFunc("PUT /api/v1/profile/theme", ph.ChangeTheme)
	protectedMux.HandleFunc("PUT /api/v1/profile/settings", ph.UpdateSettings)
	protectedMux.HandleFunc("POST /api/v1/profile/refresh", ph.RefreshCache)
	protectedMux.HandleFunc("GET /api/v1/themes", ph.Themes)

	protectedMux.HandleFunc("GET /api/v1/links", lh.List)
	protectedMux.HandleFunc("POST /api/v1/links", lh.Create)
	protectedMux.HandleFunc("POST /api/v1/links/reorder", lh.Reorder)
	protectedMux.HandleFunc("PUT /api/v1/links/{id}", lh.Update)
	protectedMux.HandleFunc("DELETE /api/v1/links/{id}", lh.Delete)
	protectedMux.HandleFunc("POST /api/v1/links/{id}/toggle", lh.Toggle)
	protectedMux.HandleFunc("POST /api/v1/links/{id}/pin", lh.Pin)

	// protectedMux holds the full paths, so the prefix match dispatches to it.
	mux.Handle("/api/v1/", mw.AuthMiddleware(protectedMux))

	return RequestLogger(mux)
}
