package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/authbase/authbase-go/internal/service"
)

// respondError is the single place where service errors become HTTP statuses.
// Anything outside the known taxonomy is logged and surfaced as a generic 500.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmailRequired),
		errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrEmailInvalid),
		errors.Is(err, service.ErrEmailNotFound):
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrEmailTaken):
		writeJSON(w, http.StatusConflict, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotSessionOwner):
		writeJSON(w, http.StatusForbidden, errorResponse(err.Error()))
	default:
		slog.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorResponse(msg string) map[string]string {
	return map[string]string{"error": msg}
}
