package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/batchcrick/tournament-engine/services"
)

type envelope map[string]interface{}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already out; nothing left to do but note it.
		log.Printf("failed to encode response: %v", err)
	}
}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	_, _ = io.Copy(io.Discard, r.Body)
	return nil
}

func errorResponse(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{"error": message})
}

func badRequest(w http.ResponseWriter, err error) {
	errorResponse(w, http.StatusBadRequest, err.Error())
}

// serviceError maps the service error taxonomy onto HTTP statuses. Specific
// errors wrap one of four category sentinels, so matching the category is
// enough.
func serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		errorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrValidation):
		errorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrConflict):
		errorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrPrecondition):
		errorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		errorResponse(w, http.StatusUnauthorized, err.Error())
	default:
		errorResponse(w, http.StatusInternalServerError, "internal server error")
	}
}
