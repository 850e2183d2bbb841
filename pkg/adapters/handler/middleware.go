package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"github.com/wadjakorntonsri/go-link-in-bio/pkg/config"
	"github.com/wadjakorntonsri/go-link-in-bio/pkg/core/domain"
	"github.com/wadjakorntonsri/go-link-in-bio/pkg/ports"
)

const authCookie = "auth_token"

type ctxKey int

const sessionKey ctxKey = iota

type Middleware struct {
	jwtSecret []byte
	profiles  ports.ProfileService
}

func NewMiddleware(cfg *config.Config, profiles ports.ProfileService) *Middleware {
	return &Middleware{
		jwtSecret: []byte(cfg.JWTSecret),
		profiles:  profiles,
	}
}

// AuthMiddleware verifies the JWT token from the cookie and opens a session
// for the token's user for the duration of the request.
func (m *Middleware) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := m.userID(r)
		if !ok {
			unauthorized(w, r)
			return
		}

		sess, err := m.profiles.OpenSession(r.Context(), userID)
		if err != nil {
			if domain.IsNotFound(err) {
				unauthorized(w, r)
				return
			}
			writeError(w, r, err)
			return
		}
		defer m.profiles.CloseSession(sess)

		ctx := context.WithValue(r.Context(), sessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middleware) userID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(authCookie)
	if err != nil {
		return "", false
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		return m.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}

func unauthorized(w http.ResponseWriter, r *http.Request) {
	if isAPIRequest(r) {
		writeErrorStatus(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	http.Redirect(w, r, "/login", http.StatusTemporaryRedirect)
}

func isAPIRequest(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/")
}

// sessionFrom returns the session opened by AuthMiddleware.
func sessionFrom(ctx context.Context) *domain.Session {
	sess, _ := ctx.Value(sessionKey).(*domain.Session)
	return sess
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs every request except health checks.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/healthz" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Str("remote_addr", r.RemoteAddr).
			Msg("Request handled")
	})
}
