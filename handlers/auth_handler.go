package handlers

import (
	"net/http"

	"github.com/batchcrick/tournament-engine/models"
	"github.com/batchcrick/tournament-engine/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		// Role is accepted on the wire for client compatibility but never
		// honored; signup only creates viewers.
		Role models.UserRole `json:"role"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequest(w, err)
		return
	}

	user, err := h.authService.Register(r.Context(), input.Name, input.Email, input.Password)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequest(w, err)
		return
	}

	user, token, err := h.authService.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"user": user, "token": token})
}
