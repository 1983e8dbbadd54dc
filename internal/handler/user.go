package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/piggybank-api/internal/payload"
	"github.com/vasapolrittideah/piggybank-api/internal/usecase"
	"github.com/vasapolrittideah/piggybank-api/shared/validate"
)

// UserHandler serves the user CRUD endpoints.
type UserHandler struct {
	userUsecase usecase.UserUsecase
	validator   *validate.Validator
	logger      *zerolog.Logger
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(
	userUsecase usecase.UserUsecase,
	validator *validate.Validator,
	logger *zerolog.Logger,
) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		validator:   validator,
		logger:      logger,
	}
}

// RegisterRoutes mounts the user routes on r.
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.ListUsers)
		r.Post("/", h.CreateUser)
		r.Get("/{id}", h.GetUser)
		r.Put("/{id}", h.UpdateUser)
		r.Delete("/{id}", h.DeleteUser)
		r.Post("/{id}/change-password", h.ChangePassword)
	})
}

// ListUsers returns either a paginated envelope or, when none of the
// pagination parameters are present, the raw unpaginated collection.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if !q.Has("page_number") && !q.Has("page_size") && !q.Has("sort") {
		users, err := h.userUsecase.ListUsers(r.Context())
		if err != nil {
			respondError(w, h.logger, err)
			return
		}

		respondJSON(w, http.StatusOK, users)
		return
	}

	page, err := h.userUsecase.ListUsersPage(r.Context(), usecase.ListPageParams{
		PageNumber: atoiOrZero(q.Get("page_number")),
		PageSize:   atoiOrZero(q.Get("page_size")),
		Sort:       q.Get("sort"),
		Search:     q.Get("search"),
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, payload.PagedResponse{
		PageNumber:      page.PageNumber,
		PageSize:        page.PageSize,
		Count:           page.Count,
		TotalPages:      page.TotalPages,
		HasPreviousPage: page.HasPrevious,
		HasNextPage:     page.HasNext,
		Data:            page.Users,
	})
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userUsecase.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req payload.CreateUserRequest
	if err := decodeBody(r, &req); err != nil {
		respondValidationError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	user, err := h.userUsecase.CreateUser(r.Context(), usecase.CreateUserParams{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req payload.UpdateUserRequest
	if err := decodeBody(r, &req); err != nil {
		respondValidationError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.userUsecase.UpdateUser(r.Context(), id, usecase.UpdateUserParams{
		Name:  req.Name,
		Email: req.Email,
	}); err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.userUsecase.DeleteUser(r.Context(), id); err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ChangePasswordRequest
	if err := decodeBody(r, &req); err != nil {
		respondValidationError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.userUsecase.ChangePassword(r.Context(), id, usecase.ChangePasswordParams{
		PasswordOld:     req.PasswordOld,
		PasswordNew:     req.PasswordNew,
		PasswordConfirm: req.PasswordConfirm,
	}); err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"id": id})
}

// atoiOrZero parses a query parameter, treating anything unparsable as
// absent.
func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}

	return n
}
