package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Sentinel errors returned by the usecases. Handlers translate these into
// the machine-readable error kinds of the HTTP surface.
var (
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordMismatch   = errors.New("password confirmation mismatched")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrUserNotFound       = errors.New("unknown user")
	ErrEmailNotFound      = errors.New("no account registered with this email")
	ErrStoreTimeout       = errors.New("store operation timed out")
)

// mapStoreError translates driver-level errors into usecase sentinels:
// a missing document becomes notFound and an expired store deadline becomes
// ErrStoreTimeout. Anything else passes through unchanged.
func mapStoreError(err error, notFound error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return notFound
	case errors.Is(err, context.DeadlineExceeded):
		return ErrStoreTimeout
	default:
		return err
	}
}
