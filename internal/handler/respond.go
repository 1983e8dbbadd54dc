package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/piggybank-api/internal/usecase"
)

// Machine-readable error kinds carried in error responses.
const (
	KindForbidden          = "FORBIDDEN"
	KindInvalidCredentials = "INVALID_CREDENTIALS"
	KindInvalidPassword    = "INVALID_PASSWORD"
	KindEmailAlreadyTaken  = "EMAIL_ALREADY_TAKEN"
	KindUnprocessable      = "UNPROCESSABLE_ENTITY"
	KindNotFound           = "NOT_FOUND"
	KindRequestTimeout     = "REQUEST_TIMEOUT"
	KindValidation         = "VALIDATION_ERROR"
	KindInternal           = "INTERNAL_SERVER_ERROR"
)

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError is the single translation point between usecase sentinel
// errors and the HTTP error surface.
func respondError(w http.ResponseWriter, logger *zerolog.Logger, err error) {
	status := http.StatusInternalServerError
	kind := KindInternal
	message := "something went wrong"

	switch {
	case errors.Is(err, usecase.ErrTooManyAttempts):
		status, kind = http.StatusForbidden, KindForbidden
		message = "too many failed login attempts, try again later"
	case errors.Is(err, usecase.ErrInvalidCredentials):
		status, kind = http.StatusUnauthorized, KindInvalidCredentials
		message = "wrong email or password"
	case errors.Is(err, usecase.ErrPasswordMismatch):
		status, kind = http.StatusBadRequest, KindInvalidPassword
		message = "password confirmation mismatched"
	case errors.Is(err, usecase.ErrEmailTaken):
		status, kind = http.StatusConflict, KindEmailAlreadyTaken
		message = "email is already registered"
	case errors.Is(err, usecase.ErrUserNotFound):
		status, kind = http.StatusUnprocessableEntity, KindUnprocessable
		message = "unknown user"
	case errors.Is(err, usecase.ErrEmailNotFound):
		status, kind = http.StatusNotFound, KindNotFound
		message = "no account registered with this email"
	case errors.Is(err, usecase.ErrStoreTimeout):
		status, kind = http.StatusGatewayTimeout, KindRequestTimeout
		message = "store operation timed out"
	default:
		logger.Error().Err(err).Msg("unhandled error")
	}

	respondJSON(w, status, errorResponse{Error: errorBody{Kind: kind, Message: message}})
}

func respondValidationError(w http.ResponseWriter, err error) {
	respondJSON(w, http.StatusBadRequest, errorResponse{
		Error: errorBody{Kind: KindValidation, Message: err.Error()},
	})
}

// decodeBody decodes a JSON request body into v.
func decodeBody(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
