package handlers

import (
	"net/http"

	"github.com/batchcrick/tournament-engine/services"
	"github.com/go-chi/chi/v5"
)

type GroupHandler struct {
	groupService services.GroupService
}

func NewGroupHandler(groupService services.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

func (h *GroupHandler) Add(w http.ResponseWriter, r *http.Request) {
	t, err := h.groupService.AddGroup(r.Context(), chi.URLParam(r, "tournamentID"))
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *GroupHandler) Remove(w http.ResponseWriter, r *http.Request) {
	t, err := h.groupService.RemoveGroup(r.Context(),
		chi.URLParam(r, "tournamentID"), chi.URLParam(r, "groupID"))
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *GroupHandler) AssignSquad(w http.ResponseWriter, r *http.Request) {
	var input struct {
		SquadID  string `json:"squad_id"`
		Included bool   `json:"included"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequest(w, err)
		return
	}

	t, err := h.groupService.AssignSquad(r.Context(),
		chi.URLParam(r, "tournamentID"), chi.URLParam(r, "groupID"),
		input.SquadID, input.Included)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *GroupHandler) SetQualifyCount(w http.ResponseWriter, r *http.Request) {
	var input struct {
		QualifyCount int `json:"qualify_count"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequest(w, err)
		return
	}

	t, err := h.groupService.SetQualifyCount(r.Context(),
		chi.URLParam(r, "tournamentID"), chi.URLParam(r, "groupID"), input.QualifyCount)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}
