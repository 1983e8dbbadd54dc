package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/piggybank-api/internal/payload"
	"github.com/vasapolrittideah/piggybank-api/internal/usecase"
	"github.com/vasapolrittideah/piggybank-api/shared/validate"
)

// AuthHandler serves the authentication endpoints.
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validate.Validator
	logger      *zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(
	authUsecase usecase.AuthUsecase,
	validator *validate.Validator,
	logger *zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator,
		logger:      logger,
	}
}

// RegisterRoutes mounts the authentication routes on r.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/login", h.Login)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		respondValidationError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	result, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
