package handler

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/wadjakorntonsri/go-link-in-bio/pkg/core/domain"
	"github.com/wadjakorntonsri/go-link-in-bio/pkg/ports"
)

const maxAvatarSize = 5 << 20

var avatarTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
}

type ProfileHandler struct {
	profiles ports.ProfileService
}

func NewProfileHandler(profiles ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// UpdateProfileRequest payload. Omitted fields are left unchanged.
type UpdateProfileRequest struct {
	Email  *string `json:"email,omitempty"`
	Bio    *string `json:"bio,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

// OwnerProfileResponse is what the editor loads: the stored profile and the
// page as it will render.
type OwnerProfileResponse struct {
	Profile domain.UserProfile   `json:"profile"`
	View    domain.PublicProfile `json:"view"`
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	profile, err := sess.Profile()
	if err != nil {
		writeError(w, r, err)
		return
	}
	view, err := h.profiles.OwnerView(sess)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, OwnerProfileResponse{
		Profile: profile,
		View:    view,
	})
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var updates []domain.ProfileUpdate
	if req.Email != nil {
		email, err := domain.NormalizeEmail(*req.Email)
		if err != nil {
			writeError(w, r, err)
			return
		}
		updates = append(updates, domain.SetEmail(email))
	}
	if req.Bio != nil {
		updates = append(updates, domain.SetBio(strings.TrimSpace(*req.Bio)))
	}
	if req.Avatar != nil {
		updates = append(updates, domain.SetAvatar(strings.TrimSpace(*req.Avatar)))
	}

	profile, err := h.profiles.UpdateDetails(r.Context(), sessionFrom(r.Context()), updates...)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// UploadAvatar stores an uploaded image inline as a data URL.
func (h *ProfileHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarSize+(1<<20))
	file, header, err := r.FormFile("avatar")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErrorStatus(w, http.StatusRequestEntityTooLarge, "Avatar must be 5MB or smaller")
			return
		}
		writeErrorStatus(w, http.StatusBadRequest, "Missing avatar file")
		return
	}
	defer file.Close()

	if header.Size > maxAvatarSize {
		writeErrorStatus(w, http.StatusRequestEntityTooLarge, "Avatar must be 5MB or smaller")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxAvatarSize+1))
	if err != nil {
		writeErrorStatus(w, http.StatusBadRequest, "Failed to read avatar")
		return
	}
	if len(data) > maxAvatarSize {
		writeErrorStatus(w, http.StatusRequestEntityTooLarge, "Avatar must be 5MB or smaller")
		return
	}

	contentType := http.DetectContentType(data)
	if !avatarTypes[contentType] {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_failed",
			Message: "avatar must be a PNG, JPG or GIF image",
			Field:   "avatar",
		})
		return
	}

	dataURL := "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
	profile, err := h.profiles.UpdateDetails(r.Context(), sessionFrom(r.Context()), domain.SetAvatar(dataURL))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) ChangeTheme(w http.ResponseWriter, r *http.Request) {
	var req domain.Theme
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, err := h.profiles.ChangeTheme(r.Context(), sessionFrom(r.Context()), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req domain.UserSettings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, err := h.profiles.UpdateSettings(r.Context(), sessionFrom(r.Context()), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) RefreshCache(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profiles.RefreshCache(r.Context(), sessionFrom(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"cacheVersion": profile.Settings.CacheVersion})
}

func (h *ProfileHandler) Themes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.profiles.Themes())
}
