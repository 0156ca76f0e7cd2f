package handlers

import (
	"errors"
	"net/http"

	"github.com/batchcrick/tournament-engine/repositories"
	"github.com/go-chi/chi/v5"
)

// SquadHandler exposes the read-only squad registry. Squads are provisioned
// out of band; the engine only references them.
type SquadHandler struct {
	squadRepo repositories.SquadRepository
}

func NewSquadHandler(squadRepo repositories.SquadRepository) *SquadHandler {
	return &SquadHandler{squadRepo: squadRepo}
}

func (h *SquadHandler) List(w http.ResponseWriter, r *http.Request) {
	squads, err := h.squadRepo.List(r.Context())
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, envelope{"squads": squads})
}

func (h *SquadHandler) Get(w http.ResponseWriter, r *http.Request) {
	squad, err := h.squadRepo.GetByID(r.Context(), chi.URLParam(r, "squadID"))
	if err != nil {
		if errors.Is(err, repositories.ErrSquadNotFound) {
			errorResponse(w, http.StatusNotFound, err.Error())
			return
		}
		errorResponse(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, squad)
}
