package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/foreveruup/fifa-bot/internal/service"
)

func InternalServerError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func BadRequest(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("bad request", "message", msg, "error", err)
	} else {
		slog.Warn("bad request", "message", msg)
	}
	http.Error(w, msg, http.StatusBadRequest)
}

func NotFound(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("not found", "message", msg, "error", err)
	} else {
		slog.Warn("not found", "message", msg)
	}
	http.Error(w, msg, http.StatusNotFound)
}

func Conflict(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("conflict", "message", msg, "error", err)
	} else {
		slog.Warn("conflict", "message", msg)
	}
	http.Error(w, msg, http.StatusConflict)
}

func Forbidden(w http.ResponseWriter, msg string) {
	slog.Warn("forbidden", "message", msg)
	http.Error(w, msg, http.StatusForbidden)
}

// ServiceError maps the service layer's sentinel errors onto HTTP
// statuses. Unknown errors are treated as internal.
func ServiceError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, service.ErrTournamentNotFound),
		errors.Is(err, service.ErrParticipantNotFound),
		errors.Is(err, service.ErrMatchNotFound),
		errors.Is(err, service.ErrNoTournamentSelected):
		NotFound(w, err.Error(), nil)
	case errors.Is(err, service.ErrNameConflict),
		errors.Is(err, service.ErrAlreadyPlayed),
		errors.Is(err, service.ErrNotPlayedYet),
		errors.Is(err, service.ErrScheduleExists):
		Conflict(w, err.Error(), nil)
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrNotEnoughParticipants),
		errors.Is(err, service.ErrUnknownClub),
		errors.Is(err, service.ErrUnknownParticipant):
		BadRequest(w, err.Error(), nil)
	default:
		InternalServerError(w, msg, err)
	}
}

// WriteJSON renders v with the given status. Encoding failures are
// logged, the status line has already been sent by then.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
