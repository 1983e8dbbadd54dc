package usecase

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/piggybank-api/internal/repository"
	"github.com/vasapolrittideah/piggybank-api/internal/throttle"
	"github.com/vasapolrittideah/piggybank-api/shared/auth"
	"github.com/vasapolrittideah/piggybank-api/shared/security"
)

// AuthUsecase defines the business logic for authentication.
type AuthUsecase interface {
	Login(ctx context.Context, params LoginParams) (*AuthenticatedUser, error)
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string
	Password string
}

// AuthenticatedUser is the payload returned on a successful login.
type AuthenticatedUser struct {
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	AccessToken string `json:"access_token"`
}

// TokenConfig holds the signing settings for issued access tokens.
type TokenConfig struct {
	Secret    string
	ExpiresIn time.Duration
}

type authUsecase struct {
	userRepo repository.UserRepository
	limiter  *throttle.Limiter
	jwtAuth  auth.JWTAuthenticator
	tokenCfg TokenConfig
}

// NewAuthUsecase creates a new instance of AuthUsecase.
func NewAuthUsecase(
	userRepo repository.UserRepository,
	limiter *throttle.Limiter,
	jwtAuth auth.JWTAuthenticator,
	tokenCfg TokenConfig,
) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		limiter:  limiter,
		jwtAuth:  jwtAuth,
		tokenCfg: tokenCfg,
	}
}

// Login authenticates a user by email and password. Attempts for an email
// that has accumulated too many failures are rejected before the store is
// consulted. An unknown email and a wrong password are indistinguishable to
// the caller and both count as a failed attempt.
func (u *authUsecase) Login(ctx context.Context, params LoginParams) (*AuthenticatedUser, error) {
	if err := u.limiter.Allow(params.Email); err != nil {
		return nil, ErrTooManyAttempts
	}

	user, err := u.userRepo.GetUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			u.limiter.RecordFailure(params.Email)
			return nil, ErrInvalidCredentials
		}

		return nil, mapStoreError(err, ErrInvalidCredentials)
	}

	if ok, err := security.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		return nil, err
	} else if !ok {
		u.limiter.RecordFailure(params.Email)
		return nil, ErrInvalidCredentials
	}

	u.limiter.RecordSuccess(params.Email)

	accessToken, err := u.jwtAuth.GenerateToken(
		user.ID.Hex(),
		user.Email,
		u.tokenCfg.Secret,
		u.tokenCfg.ExpiresIn,
	)
	if err != nil {
		return nil, err
	}

	return &AuthenticatedUser{
		UserID:      user.ID.Hex(),
		Name:        user.Name,
		Email:       user.Email,
		AccessToken: accessToken,
	}, nil
}
