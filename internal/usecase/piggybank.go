package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/piggybank-api/internal/model"
	"github.com/vasapolrittideah/piggybank-api/internal/query"
	"github.com/vasapolrittideah/piggybank-api/internal/repository"
	"github.com/vasapolrittideah/piggybank-api/shared/security"
)

// PiggybankUsecase defines the business logic for piggybank accounts.
type PiggybankUsecase interface {
	ListAccounts(ctx context.Context) ([]AccountSummary, error)
	ListAccountsPage(ctx context.Context, params ListPageParams) (*AccountPage, error)
	GetAccount(ctx context.Context, id string) (*AccountSummary, error)
	CreateAccount(ctx context.Context, params CreateAccountParams) (*AccountSummary, error)
	UpdateAccount(ctx context.Context, id string, params UpdateAccountParams) error
	DeleteAccount(ctx context.Context, id string) error
	ChangePassword(ctx context.Context, id string, params ChangePasswordParams) error
	GetKTPByEmail(ctx context.Context, email string) (*KTPDetail, error)
}

// AccountSummary is the projection of a piggybank account returned to
// callers.
type AccountSummary struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Balance float64 `json:"balance"`
	KTP     string  `json:"ktp"`
}

// AccountPage is one page of an account listing plus pagination metadata.
type AccountPage struct {
	PageNumber  int
	PageSize    int
	Count       int64
	TotalPages  int
	HasPrevious bool
	HasNext     bool
	Accounts    []AccountSummary
}

// CreateAccountParams defines the parameters for opening a piggybank
// account.
type CreateAccountParams struct {
	Name            string
	Email           string
	Password        string
	PasswordConfirm string
	Balance         float64
	KTP             string
}

// UpdateAccountParams defines the parameters for updating a piggybank
// account profile.
type UpdateAccountParams struct {
	Name  string
	Email string
	KTP   string
}

// KTPDetail is the result of the email-keyed national-ID lookup.
type KTPDetail struct {
	Name string `json:"name"`
	KTP  string `json:"ktp"`
}

type piggybankUsecase struct {
	accountRepo repository.PiggybankRepository
}

// NewPiggybankUsecase creates a new instance of PiggybankUsecase.
func NewPiggybankUsecase(accountRepo repository.PiggybankRepository) PiggybankUsecase {
	return &piggybankUsecase{accountRepo: accountRepo}
}

func (u *piggybankUsecase) ListAccounts(ctx context.Context) ([]AccountSummary, error) {
	accounts, err := u.accountRepo.ListAccounts(ctx, repository.ListAccountsParams{
		Spec: query.ParseSpec("", ""),
	})
	if err != nil {
		return nil, mapStoreError(err, ErrUserNotFound)
	}

	return summarizeAccounts(accounts), nil
}

func (u *piggybankUsecase) ListAccountsPage(ctx context.Context, params ListPageParams) (*AccountPage, error) {
	if params.PageNumber < 1 {
		params.PageNumber = 1
	}
	if params.PageSize < 1 {
		params.PageSize = 10
	}

	spec := query.ParseSpec(params.Search, params.Sort)

	count, err := u.accountRepo.CountAccounts(ctx, spec)
	if err != nil {
		return nil, mapStoreError(err, ErrUserNotFound)
	}

	page := query.Paginate(count, params.PageNumber, params.PageSize)

	accounts, err := u.accountRepo.ListAccounts(ctx, repository.ListAccountsParams{
		Spec:  spec,
		Limit: int64(params.PageSize),
		Skip:  page.Skip,
	})
	if err != nil {
		return nil, mapStoreError(err, ErrUserNotFound)
	}

	return &AccountPage{
		PageNumber:  params.PageNumber,
		PageSize:    params.PageSize,
		Count:       count,
		TotalPages:  page.TotalPages,
		HasPrevious: page.HasPrevious,
		HasNext:     page.HasNext,
		Accounts:    summarizeAccounts(accounts),
	}, nil
}

func (u *piggybankUsecase) GetAccount(ctx context.Context, id string) (*AccountSummary, error) {
	account, err := u.accountRepo.GetAccount(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, ErrUserNotFound)
	}

	summary := summarizeAccount(account)
	return &summary, nil
}

func (u *piggybankUsecase) CreateAccount(ctx context.Context, params CreateAccountParams) (*AccountSummary, error) {
	if params.Password != params.PasswordConfirm {
		return nil, ErrPasswordMismatch
	}

	if err := u.checkEmailAvailable(ctx, params.Email, ""); err != nil {
		return nil, err
	}

	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	account, err := u.accountRepo.CreateAccount(ctx, &model.PiggybankAccount{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: passwordHash,
		Balance:      params.Balance,
		KTP:          params.KTP,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}

		return nil, mapStoreError(err, ErrUserNotFound)
	}

	summary := summarizeAccount(account)
	return &summary, nil
}

func (u *piggybankUsecase) UpdateAccount(ctx context.Context, id string, params UpdateAccountParams) error {
	if err := u.checkEmailAvailable(ctx, params.Email, id); err != nil {
		return err
	}

	_, err := u.accountRepo.UpdateAccount(ctx, id, repository.UpdateAccountParams{
		Name:  &params.Name,
		Email: &params.Email,
		KTP:   &params.KTP,
	})
	if err != nil {
		return mapStoreError(err, ErrUserNotFound)
	}

	return nil
}

func (u *piggybankUsecase) DeleteAccount(ctx context.Context, id string) error {
	if _, err := u.accountRepo.DeleteAccount(ctx, id); err != nil {
		return mapStoreError(err, ErrUserNotFound)
	}

	return nil
}

func (u *piggybankUsecase) ChangePassword(ctx context.Context, id string, params ChangePasswordParams) error {
	if params.PasswordNew != params.PasswordConfirm {
		return ErrPasswordMismatch
	}

	account, err := u.accountRepo.GetAccount(ctx, id)
	if err != nil {
		return mapStoreError(err, ErrUserNotFound)
	}

	if ok, err := security.VerifyPassword(params.PasswordOld, account.PasswordHash); err != nil {
		return err
	} else if !ok {
		return ErrInvalidCredentials
	}

	passwordHash, err := security.HashPassword(params.PasswordNew)
	if err != nil {
		return err
	}

	_, err = u.accountRepo.UpdateAccount(ctx, id, repository.UpdateAccountParams{
		PasswordHash: &passwordHash,
	})
	if err != nil {
		return mapStoreError(err, ErrUserNotFound)
	}

	return nil
}

func (u *piggybankUsecase) GetKTPByEmail(ctx context.Context, email string) (*KTPDetail, error) {
	account, err := u.accountRepo.GetAccountByEmail(ctx, email)
	if err != nil {
		return nil, mapStoreError(err, ErrEmailNotFound)
	}

	return &KTPDetail{
		Name: account.Name,
		KTP:  account.KTP,
	}, nil
}

func (u *piggybankUsecase) checkEmailAvailable(ctx context.Context, email, selfID string) error {
	existing, err := u.accountRepo.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil
		}

		return mapStoreError(err, ErrUserNotFound)
	}

	if selfID != "" && existing.ID.Hex() == selfID {
		return nil
	}

	return ErrEmailTaken
}

func summarizeAccount(account *model.PiggybankAccount) AccountSummary {
	return AccountSummary{
		ID:      account.ID.Hex(),
		Name:    account.Name,
		Email:   account.Email,
		Balance: account.Balance,
		KTP:     account.KTP,
	}
}

func summarizeAccounts(accounts []*model.PiggybankAccount) []AccountSummary {
	summaries := make([]AccountSummary, 0, len(accounts))
	for _, account := range accounts {
		summaries = append(summaries, summarizeAccount(account))
	}

	return summaries
}
