package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/piggybank-api/internal/payload"
	"github.com/vasapolrittideah/piggybank-api/internal/usecase"
	"github.com/vasapolrittideah/piggybank-api/shared/validate"
)

// PiggybankHandler serves the piggybank account endpoints.
type PiggybankHandler struct {
	piggybankUsecase usecase.PiggybankUsecase
	validator        *validate.Validator
	logger           *zerolog.Logger
}

// NewPiggybankHandler creates a new PiggybankHandler instance.
func NewPiggybankHandler(
	piggybankUsecase usecase.PiggybankUsecase,
	validator *validate.Validator,
	logger *zerolog.Logger,
) *PiggybankHandler {
	return &PiggybankHandler{
		piggybankUsecase: piggybankUsecase,
		validator:        validator,
		logger:           logger,
	}
}

// RegisterRoutes mounts the piggybank routes on r.
func (h *PiggybankHandler) RegisterRoutes(r chi.Router) {
	r.Route("/piggybanks", func(r chi.Router) {
		r.Get("/", h.ListAccounts)
		r.Post("/", h.CreateAccount)
		r.Post("/ktp", h.LookupKTP)
		r.Get("/{id}", h.GetAccount)
		r.Put("/{id}", h.UpdateAccount)
		r.Delete("/{id}", h.DeleteAccount)
		r.Post("/{id}/change-password", h.ChangePassword)
	})
}

func (h *PiggybankHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if !q.Has("page_number") && !q.Has("page_size") && !q.Has("sort") {
		accounts, err := h.piggybankUsecase.ListAccounts(r.Context())
		if err != nil {
			respondError(w, h.logger, err)
			return
		}

		respondJSON(w, http.StatusOK, accounts)
		return
	}

	page, err := h.piggybankUsecase.ListAccountsPage(r.Context(), usecase.ListPageParams{
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
		Data:            page.Accounts,
	})
}

func (h *PiggybankHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	account, err := h.piggybankUsecase.GetAccount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, account)
}

func (h *PiggybankHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req payload.CreatePiggybankRequest
	if err := decodeBody(r, &req); err != nil {
		respondValidationError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	account, err := h.piggybankUsecase.CreateAccount(r.Context(), usecase.CreateAccountParams{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		Balance:         req.Balance,
		KTP:             req.KTP,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, account)
}

func (h *PiggybankHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	var req payload.UpdatePiggybankRequest
	if err := decodeBody(r, &req); err != nil {
		respondValidationError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.piggybankUsecase.UpdateAccount(r.Context(), id, usecase.UpdateAccountParams{
		Name:  req.Name,
		Email: req.Email,
		KTP:   req.KTP,
	}); err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (h *PiggybankHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.piggybankUsecase.DeleteAccount(r.Context(), id); err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (h *PiggybankHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
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
	if err := h.piggybankUsecase.ChangePassword(r.Context(), id, usecase.ChangePasswordParams{
		PasswordOld:     req.PasswordOld,
		PasswordNew:     req.PasswordNew,
		PasswordConfirm: req.PasswordConfirm,
	}); err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"id": id})
}

// LookupKTP returns the name and national-ID registered for an email.
func (h *PiggybankHandler) LookupKTP(w http.ResponseWriter, r *http.Request) {
	var req payload.KTPLookupRequest
	if err := decodeBody(r, &req); err != nil {
		respondValidationError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	detail, err := h.piggybankUsecase.GetKTPByEmail(r.Context(), req.Email)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, detail)
}
