package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/piggybank-api/internal/model"
	"github.com/vasapolrittideah/piggybank-api/internal/query"
	"github.com/vasapolrittideah/piggybank-api/internal/repository"
	"github.com/vasapolrittideah/piggybank-api/shared/mailer"
	"github.com/vasapolrittideah/piggybank-api/shared/security"
)

// UserUsecase defines the business logic for user accounts.
type UserUsecase interface {
	ListUsers(ctx context.Context) ([]UserSummary, error)
	ListUsersPage(ctx context.Context, params ListPageParams) (*UserPage, error)
	GetUser(ctx context.Context, id string) (*UserSummary, error)
	CreateUser(ctx context.Context, params CreateUserParams) (*UserSummary, error)
	UpdateUser(ctx context.Context, id string, params UpdateUserParams) error
	DeleteUser(ctx context.Context, id string) error
	ChangePassword(ctx context.Context, id string, params ChangePasswordParams) error
}

// UserSummary is the projection of a user returned to callers; the password
// hash never leaves the usecase layer.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ListPageParams defines the raw listing parameters of a paged request.
type ListPageParams struct {
	PageNumber int
	PageSize   int
	Sort       string
	Search     string
}

// UserPage is one page of a user listing plus its pagination metadata.
type UserPage struct {
	PageNumber  int
	PageSize    int
	Count       int64
	TotalPages  int
	HasPrevious bool
	HasNext     bool
	Users       []UserSummary
}

// CreateUserParams defines the parameters for registering a user.
type CreateUserParams struct {
	Name            string
	Email           string
	Password        string
	PasswordConfirm string
}

// UpdateUserParams defines the parameters for updating a user profile.
type UpdateUserParams struct {
	Name  string
	Email string
}

// ChangePasswordParams defines the parameters for a password change.
type ChangePasswordParams struct {
	PasswordOld     string
	PasswordNew     string
	PasswordConfirm string
}

type userUsecase struct {
	userRepo repository.UserRepository
	mailer   *mailer.Mailer
	logger   *zerolog.Logger
}

// NewUserUsecase creates a new instance of UserUsecase. The mailer may be
// nil, in which case no welcome emails are sent.
func NewUserUsecase(
	userRepo repository.UserRepository,
	mailer *mailer.Mailer,
	logger *zerolog.Logger,
) UserUsecase {
	return &userUsecase{
		userRepo: userRepo,
		mailer:   mailer,
		logger:   logger,
	}
}

func (u *userUsecase) ListUsers(ctx context.Context) ([]UserSummary, error) {
	users, err := u.userRepo.ListUsers(ctx, repository.ListUsersParams{
		Spec: query.ParseSpec("", ""),
	})
	if err != nil {
		return nil, mapStoreError(err, ErrUserNotFound)
	}

	return summarizeUsers(users), nil
}

func (u *userUsecase) ListUsersPage(ctx context.Context, params ListPageParams) (*UserPage, error) {
	if params.PageNumber < 1 {
		params.PageNumber = 1
	}
	if params.PageSize < 1 {
		params.PageSize = 10
	}

	spec := query.ParseSpec(params.Search, params.Sort)

	count, err := u.userRepo.CountUsers(ctx, spec)
	if err != nil {
		return nil, mapStoreError(err, ErrUserNotFound)
	}

	page := query.Paginate(count, params.PageNumber, params.PageSize)

	users, err := u.userRepo.ListUsers(ctx, repository.ListUsersParams{
		Spec:  spec,
		Limit: int64(params.PageSize),
		Skip:  page.Skip,
	})
	if err != nil {
		return nil, mapStoreError(err, ErrUserNotFound)
	}

	return &UserPage{
		PageNumber:  params.PageNumber,
		PageSize:    params.PageSize,
		Count:       count,
		TotalPages:  page.TotalPages,
		HasPrevious: page.HasPrevious,
		HasNext:     page.HasNext,
		Users:       summarizeUsers(users),
	}, nil
}

func (u *userUsecase) GetUser(ctx context.Context, id string) (*UserSummary, error) {
	user, err := u.userRepo.GetUser(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, ErrUserNotFound)
	}

	summary := summarizeUser(user)
	return &summary, nil
}

func (u *userUsecase) CreateUser(ctx context.Context, params CreateUserParams) (*UserSummary, error) {
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

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		// The unique index catches an email registered between the
		// availability check and the insert.
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}

		return nil, mapStoreError(err, ErrUserNotFound)
	}

	u.sendWelcomeEmail(user)

	summary := summarizeUser(user)
	return &summary, nil
}

func (u *userUsecase) UpdateUser(ctx context.Context, id string, params UpdateUserParams) error {
	// The availability check skips the record's own email so a profile can
	// be resubmitted unchanged.
	if err := u.checkEmailAvailable(ctx, params.Email, id); err != nil {
		return err
	}

	_, err := u.userRepo.UpdateUser(ctx, id, repository.UpdateUserParams{
		Name:  &params.Name,
		Email: &params.Email,
	})
	if err != nil {
		return mapStoreError(err, ErrUserNotFound)
	}

	return nil
}

func (u *userUsecase) DeleteUser(ctx context.Context, id string) error {
	if _, err := u.userRepo.DeleteUser(ctx, id); err != nil {
		return mapStoreError(err, ErrUserNotFound)
	}

	return nil
}

func (u *userUsecase) ChangePassword(ctx context.Context, id string, params ChangePasswordParams) error {
	if params.PasswordNew != params.PasswordConfirm {
		return ErrPasswordMismatch
	}

	user, err := u.userRepo.GetUser(ctx, id)
	if err != nil {
		return mapStoreError(err, ErrUserNotFound)
	}

	if ok, err := security.VerifyPassword(params.PasswordOld, user.PasswordHash); err != nil {
		return err
	} else if !ok {
		return ErrInvalidCredentials
	}

	passwordHash, err := security.HashPassword(params.PasswordNew)
	if err != nil {
		return err
	}

	_, err = u.userRepo.UpdateUser(ctx, id, repository.UpdateUserParams{
		PasswordHash: &passwordHash,
	})
	if err != nil {
		return mapStoreError(err, ErrUserNotFound)
	}

	return nil
}

// checkEmailAvailable returns ErrEmailTaken when email belongs to a record
// other than selfID. An empty selfID means any existing record conflicts.
func (u *userUsecase) checkEmailAvailable(ctx context.Context, email, selfID string) error {
	existing, err := u.userRepo.GetUserByEmail(ctx, email)
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

func (u *userUsecase) sendWelcomeEmail(user *model.User) {
	if u.mailer == nil {
		return
	}

	go func() {
		body := fmt.Sprintf("Hi %s,\n\nYour account has been created.", user.Name)
		if err := u.mailer.SendSimple([]string{user.Email}, "Welcome", body); err != nil {
			u.logger.Error().Err(err).Str("email", user.Email).Msg("failed to send welcome email")
		}
	}()
}

func summarizeUser(user *model.User) UserSummary {
	return UserSummary{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
	}
}

func summarizeUsers(users []*model.User) []UserSummary {
	summaries := make([]UserSummary, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, summarizeUser(user))
	}

	return summaries
}
