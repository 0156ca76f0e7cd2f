package handlers

import (
	"net/http"

	"github.com/batchcrick/tournament-engine/models"
	"github.com/batchcrick/tournament-engine/services"
	"github.com/go-chi/chi/v5"
)

type BracketHandler struct {
	bracketService services.BracketService
}

func NewBracketHandler(bracketService services.BracketService) *BracketHandler {
	return &BracketHandler{bracketService: bracketService}
}

func (h *BracketHandler) AutoMap(w http.ResponseWriter, r *http.Request) {
	t, err := h.bracketService.AutoMap(r.Context(), chi.URLParam(r, "tournamentID"))
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// EnsureDefault creates the default cross-seeded bracket when none exists
// yet. Calling it against a populated bracket changes nothing.
func (h *BracketHandler) EnsureDefault(w http.ResponseWriter, r *http.Request) {
	t, err := h.bracketService.EnsureDefault(r.Context(), chi.URLParam(r, "tournamentID"))
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// SetSlot writes one side of one slot. Seeds arrive in their wire form:
// a raw squad id, "groupID:rank", "winner:slotID", or "TBD".
func (h *BracketHandler) SetSlot(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Side models.SlotSide `json:"side"`
		Seed string          `json:"seed"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequest(w, err)
		return
	}

	ref, err := models.ParseSeedRef(input.Seed)
	if err != nil {
		serviceError(w, services.ErrInvalidSeed)
		return
	}

	t, err := h.bracketService.SetSlot(r.Context(),
		chi.URLParam(r, "tournamentID"), chi.URLParam(r, "slotID"), input.Side, ref)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// Resolved returns the bracket with every seed resolved as far as confirmed
// qualifiers and finished matches allow.
func (h *BracketHandler) Resolved(w http.ResponseWriter, r *http.Request) {
	view, err := h.bracketService.ResolvedView(r.Context(), chi.URLParam(r, "tournamentID"))
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"bracket": view})
}
