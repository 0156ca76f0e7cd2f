package handlers

import (
	"net/http"

	"github.com/batchcrick/tournament-engine/services"
	"github.com/go-chi/chi/v5"
)

type QualifierHandler struct {
	qualifierService services.QualifierService
}

func NewQualifierHandler(qualifierService services.QualifierService) *QualifierHandler {
	return &QualifierHandler{qualifierService: qualifierService}
}

// Confirm replaces the ranked qualifier list for one group. Index 0 of the
// list is rank 1.
func (h *QualifierHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var input struct {
		SquadIDs []string `json:"squad_ids"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequest(w, err)
		return
	}

	t, err := h.qualifierService.ConfirmQualifiers(r.Context(),
		chi.URLParam(r, "tournamentID"), chi.URLParam(r, "groupID"), input.SquadIDs)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}
