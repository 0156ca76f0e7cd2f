package handlers

import (
	"errors"
	"net/http"

	"github.com/batchcrick/tournament-engine/models"
	"github.com/batchcrick/tournament-engine/repositories"
	"github.com/batchcrick/tournament-engine/services"
	"github.com/go-chi/chi/v5"
)

type MatchHandler struct {
	tournamentService services.TournamentService
	matchRepo         repositories.MatchRepository
}

func NewMatchHandler(tournamentService services.TournamentService, matchRepo repositories.MatchRepository) *MatchHandler {
	return &MatchHandler{tournamentService: tournamentService, matchRepo: matchRepo}
}

// ListByTournament returns the tournament's matches, optionally filtered by
// stage type (?stage=group|knockout).
func (h *MatchHandler) ListByTournament(w http.ResponseWriter, r *http.Request) {
	var stage *models.StageType
	if raw := r.URL.Query().Get("stage"); raw != "" {
		s := models.StageType(raw)
		if s != models.StageTypeGroup && s != models.StageTypeKnockout {
			badRequest(w, errors.New("stage must be group or knockout"))
			return
		}
		stage = &s
	}

	matches, err := h.matchRepo.ListByTournament(r.Context(), chi.URLParam(r, "tournamentID"), stage)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, envelope{"matches": matches})
}

// RecordResult is the hook for the live-scoring side: it sets a match's
// status and winner, which in turn unlocks winner seeds in the bracket.
func (h *MatchHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Status   models.MatchStatus `json:"status"`
		WinnerID *string            `json:"winner_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequest(w, err)
		return
	}

	match, err := h.tournamentService.RecordMatchResult(r.Context(),
		chi.URLParam(r, "matchID"), input.Status, input.WinnerID)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, match)
}
