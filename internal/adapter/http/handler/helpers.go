package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/iho/betwallet/internal/adapter/http/dto"
	"github.com/iho/betwallet/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrWalletNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrBetNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrWalletExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrBetNotPending):
		return http.StatusConflict
	case errors.Is(err, domain.ErrWalletInactive):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidBetType):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidOdds):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidDiceBet):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidDicePick):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
