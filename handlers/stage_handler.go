package handlers

import (
	"net/http"

	"github.com/batchcrick/tournament-engine/models"
	"github.com/batchcrick/tournament-engine/services"
	"github.com/go-chi/chi/v5"
)

type StageHandler struct {
	stageService services.StageService
}

func NewStageHandler(stageService services.StageService) *StageHandler {
	return &StageHandler{stageService: stageService}
}

func (h *StageHandler) Add(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name string           `json:"name"`
		Type models.StageType `json:"type"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequest(w, err)
		return
	}

	t, err := h.stageService.AddStage(r.Context(), chi.URLParam(r, "tournamentID"), input.Name, input.Type)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *StageHandler) Remove(w http.ResponseWriter, r *http.Request) {
	t, err := h.stageService.RemoveStage(r.Context(),
		chi.URLParam(r, "tournamentID"), chi.URLParam(r, "stageID"))
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *StageHandler) Move(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Direction models.MoveDirection `json:"direction"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequest(w, err)
		return
	}

	t, err := h.stageService.MoveStage(r.Context(),
		chi.URLParam(r, "tournamentID"), chi.URLParam(r, "stageID"), input.Direction)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// Activate starts a stage. For knockout stages the optional schedules list is
// applied to the stage's slots in bracket order.
func (h *StageHandler) Activate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Schedules []models.MatchSchedule `json:"schedules"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequest(w, err)
		return
	}

	t, err := h.stageService.ActivateStage(r.Context(),
		chi.URLParam(r, "tournamentID"), chi.URLParam(r, "stageID"), input.Schedules)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *StageHandler) Complete(w http.ResponseWriter, r *http.Request) {
	t, err := h.stageService.CompleteStage(r.Context(),
		chi.URLParam(r, "tournamentID"), chi.URLParam(r, "stageID"))
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *StageHandler) MatchStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stageService.StageMatchStats(r.Context(),
		chi.URLParam(r, "tournamentID"), chi.URLParam(r, "stageID"))
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
