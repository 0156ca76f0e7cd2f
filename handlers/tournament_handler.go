package handlers

import (
	"errors"
	"net/http"

	"github.com/batchcrick/tournament-engine/models"
	"github.com/batchcrick/tournament-engine/services"
	"github.com/go-chi/chi/v5"
)

const maxLogoSize = 5 << 20

type TournamentHandler struct {
	tournamentService services.TournamentService
}

func NewTournamentHandler(tournamentService services.TournamentService) *TournamentHandler {
	return &TournamentHandler{tournamentService: tournamentService}
}

func (h *TournamentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequest(w, err)
		return
	}

	t, err := h.tournamentService.Create(r.Context(), input)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *TournamentHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.tournamentService.GetByID(r.Context(), chi.URLParam(r, "tournamentID"))
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *TournamentHandler) List(w http.ResponseWriter, r *http.Request) {
	var status *models.TournamentStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := models.TournamentStatus(raw)
		switch s {
		case models.TournamentUpcoming, models.TournamentOngoing, models.TournamentCompleted:
			status = &s
		default:
			badRequest(w, errors.New("status must be upcoming, ongoing or completed"))
			return
		}
	}

	tournaments, err := h.tournamentService.List(r.Context(), status)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"tournaments": tournaments})
}

func (h *TournamentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Status models.TournamentStatus `json:"status"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequest(w, err)
		return
	}

	t, err := h.tournamentService.UpdateStatus(r.Context(), chi.URLParam(r, "tournamentID"), input.Status)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *TournamentHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxLogoSize); err != nil {
		badRequest(w, errors.New("could not parse multipart form"))
		return
	}
	file, header, err := r.FormFile("logo")
	if err != nil {
		badRequest(w, errors.New("missing 'logo' file field"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	t, err := h.tournamentService.UploadLogo(r.Context(), chi.URLParam(r, "tournamentID"), contentType, file)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}
