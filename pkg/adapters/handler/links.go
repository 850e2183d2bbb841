package handler

import (
	"encoding/json"
	"net/http"

	"github.com/wadjakorntonsri/go-link-in-bio/pkg/core/domain"
	"github.com/wadjakorntonsri/go-link-in-bio/pkg/ports"
)

type LinkHandler struct {
	profiles ports.ProfileService
}

func NewLinkHandler(profiles ports.ProfileService) *LinkHandler {
	return &LinkHandler{profiles: profiles}
}

// ToggleLinkRequest payload
type ToggleLinkRequest struct {
	Enabled bool `json:"enabled"`
}

// PinLinkRequest payload
type PinLinkRequest struct {
	Pinned bool `json:"pinned"`
}

// ReorderRequest moves one link by index, or reorders all links when IDs
// is given.
type ReorderRequest struct {
	From *int     `json:"from,omitempty"`
	To   *int     `json:"to,omitempty"`
	IDs  []string `json:"ids,omitempty"`
}

// List returns the owner's links in display order, disabled ones included.
func (h *LinkHandler) List(w http.ResponseWriter, r *http.Request) {
	view, err := h.profiles.OwnerView(sessionFrom(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view.Links)
}

func (h *LinkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.LinkInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	link, err := h.profiles.AddLink(r.Context(), sessionFrom(r.Context()), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, link)
}

func (h *LinkHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req domain.LinkInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	link, err := h.profiles.EditLink(r.Context(), sessionFrom(r.Context()), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, link)
}

func (h *LinkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.profiles.DeleteLink(r.Context(), sessionFrom(r.Context()), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LinkHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req ToggleLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	link, err := h.profiles.ToggleLink(r.Context(), sessionFrom(r.Context()), r.PathValue("id"), req.Enabled)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, link)
}

func (h *LinkHandler) Pin(w http.ResponseWriter, r *http.Request) {
	var req PinLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	link, err := h.profiles.PinLink(r.Context(), sessionFrom(r.Context()), r.PathValue("id"), req.Pinned)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, link)
}

func (h *LinkHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sess := sessionFrom(r.Context())
	var (
		links []domain.Link
		err   error
	)
	switch {
	case req.IDs != nil:
		links, err = h.profiles.ReorderLinksByID(r.Context(), sess, req.IDs)
	case req.From != nil && req.To != nil:
		links, err = h.profiles.ReorderLinks(r.Context(), sess, *req.From, *req.To)
	default:
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_failed",
			Message: "either ids or from and to are required",
		})
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, links)
}
