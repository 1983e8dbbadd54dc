package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/piggybank-api/shared/security"
)

func mustCreateAccount(t *testing.T, u PiggybankUsecase, name, email string) AccountSummary {
	t.Helper()

	summary, err := u.CreateAccount(context.Background(), CreateAccountParams{
		Name:            name,
		Email:           email,
		Password:        "secret",
		PasswordConfirm: "secret",
		Balance:         150000,
		KTP:             "3174051208900001",
	})
	require.NoError(t, err)

	return *summary
}

func TestCreateAccount(t *testing.T) {
	repo := newFakePiggybankRepo()
	u := NewPiggybankUsecase(repo)

	summary := mustCreateAccount(t, u, "Alice", "alice@example.com")

	assert.Equal(t, float64(150000), summary.Balance)
	assert.Equal(t, "3174051208900001", summary.KTP)

	stored := repo.accounts[summary.ID]
	require.NotNil(t, stored)

	ok, err := security.VerifyPassword("secret", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreateAccount_PasswordMismatch(t *testing.T) {
	repo := newFakePiggybankRepo()
	u := NewPiggybankUsecase(repo)

	_, err := u.CreateAccount(context.Background(), CreateAccountParams{
		Name:            "Alice",
		Email:           "alice@example.com",
		Password:        "secret",
		PasswordConfirm: "other",
	})
	assert.ErrorIs(t, err, ErrPasswordMismatch)
	assert.Empty(t, repo.accounts)
}

func TestCreateAccount_EmailTaken(t *testing.T) {
	repo := newFakePiggybankRepo()
	u := NewPiggybankUsecase(repo)

	mustCreateAccount(t, u, "Alice", "alice@example.com")

	_, err := u.CreateAccount(context.Background(), CreateAccountParams{
		Name:            "Impostor",
		Email:           "alice@example.com",
		Password:        "secret",
		PasswordConfirm: "secret",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestGetKTPByEmail(t *testing.T) {
	repo := newFakePiggybankRepo()
	u := NewPiggybankUsecase(repo)

	mustCreateAccount(t, u, "Alice", "alice@example.com")

	detail, err := u.GetKTPByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)

	assert.Equal(t, "Alice", detail.Name)
	assert.Equal(t, "3174051208900001", detail.KTP)
}

func TestGetKTPByEmail_UnknownEmail(t *testing.T) {
	repo := newFakePiggybankRepo()
	u := NewPiggybankUsecase(repo)

	_, err := u.GetKTPByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrEmailNotFound)
}

func TestUpdateAccount_KTP(t *testing.T) {
	repo := newFakePiggybankRepo()
	u := NewPiggybankUsecase(repo)

	summary := mustCreateAccount(t, u, "Alice", "alice@example.com")

	err := u.UpdateAccount(context.Background(), summary.ID, UpdateAccountParams{
		Name:  "Alice",
		Email: "alice@example.com",
		KTP:   "3174051208900002",
	})
	require.NoError(t, err)
	assert.Equal(t, "3174051208900002", repo.accounts[summary.ID].KTP)
}

func TestDeleteAccount(t *testing.T) {
	repo := newFakePiggybankRepo()
	u := NewPiggybankUsecase(repo)

	summary := mustCreateAccount(t, u, "Alice", "alice@example.com")

	require.NoError(t, u.DeleteAccount(context.Background(), summary.ID))
	assert.ErrorIs(t, u.DeleteAccount(context.Background(), summary.ID), ErrUserNotFound)
}

func TestPiggybankChangePassword(t *testing.T) {
	repo := newFakePiggybankRepo()
	u := NewPiggybankUsecase(repo)

	summary := mustCreateAccount(t, u, "Alice", "alice@example.com")

	err := u.ChangePassword(context.Background(), summary.ID, ChangePasswordParams{
		PasswordOld:     "secret",
		PasswordNew:     "new-secret",
		PasswordConfirm: "new-secret",
	})
	require.NoError(t, err)

	ok, err := security.VerifyPassword("new-secret", repo.accounts[summary.ID].PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}
