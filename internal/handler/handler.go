package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"estate-marketplace/internal/domain"
	"estate-marketplace/internal/usecase"
)

// errorResponse matches the error body shape the client expects.
type errorResponse struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{
		Success:    false,
		StatusCode: status,
		Message:    message,
	})
}

// writeUsecaseError maps the error taxonomy onto HTTP statuses:
// invalid input 400, unauthorized 401, forbidden 403, not found 404.
func writeUsecaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidListing), errors.Is(err, domain.ErrDuplicateEmail):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, usecase.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, usecase.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, usecase.ErrListingNotFound), errors.Is(err, usecase.ErrUserNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
