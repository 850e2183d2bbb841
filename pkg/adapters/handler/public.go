package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/skip2/go-qrcode"
	"github.com/wadjakorntonsri/go-link-in-bio/pkg/ports"
)

const (
	defaultQRSize = 256
	minQRSize     = 128
	maxQRSize     = 1024
)

var qrLevels = map[string]qrcode.RecoveryLevel{
	"low":     qrcode.Low,
	"medium":  qrcode.Medium,
	"high":    qrcode.High,
	"highest": qrcode.Highest,
}

type PublicHandler struct {
	profiles ports.ProfileService
}

func NewPublicHandler(profiles ports.ProfileService) *PublicHandler {
	return &PublicHandler{profiles: profiles}
}

// GetProfile returns the visitor view of a public profile.
func (h *PublicHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	view, err := h.profiles.GetPublicProfile(r.Context(), r.PathValue("username"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=60")
	writeJSON(w, http.StatusOK, view)
}

// QRCode serves a PNG QR code pointing at the profile's share URL.
// Query params: size (128-1024, default 256), level (low, medium, high, highest).
func (h *PublicHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	size := defaultQRSize
	if sizeStr := query.Get("size"); sizeStr != "" {
		parsed, err := strconv.Atoi(sizeStr)
		if err != nil {
			writeErrorStatus(w, http.StatusBadRequest, "Size must be a number")
			return
		}
		if parsed < minQRSize || parsed > maxQRSize {
			writeErrorStatus(w, http.StatusBadRequest, "Size must be between 128 and 1024")
			return
		}
		size = parsed
	}

	levelName := query.Get("level")
	if levelName == "" {
		levelName = "medium"
	}
	level, ok := qrLevels[levelName]
	if !ok {
		writeErrorStatus(w, http.StatusBadRequest, "Level must be: low, medium, high, or highest")
		return
	}

	view, err := h.profiles.GetPublicProfile(r.Context(), r.PathValue("username"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	png, err := qrcode.Encode(view.ShareURL, level, size)
	if err != nil {
		log.Error().Err(err).Str("url", view.ShareURL).Msg("Failed to generate QR code")
		writeError(w, r, errors.New("failed to generate QR code"))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `attachment; filename="`+view.Username+`-qrcode.png"`)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	if _, err := w.Write(png); err != nil {
		log.Error().Err(err).Msg("Failed to write QR code response")
		return
	}

	log.Debug().
		Str("username", view.Username).
		Int("size", size).
		Str("level", levelName).
		Msg("QR code generated")
}
