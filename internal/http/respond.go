package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"budgetbuddy/internal/core"
	"budgetbuddy/internal/ledger"
)

type errorBody struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorBody{Error: msg})
}

// respondDomainError maps domain errors onto HTTP statuses. Validation
// failures are the caller's fault, persistence failures are ours.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrEmptyDescription),
		errors.Is(err, core.ErrEmptyCategory):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ledger.ErrPersistence):
		respondError(w, http.StatusInternalServerError, "failed to persist changes")
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeBody decodes a JSON request body, rejecting unknown fields.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
