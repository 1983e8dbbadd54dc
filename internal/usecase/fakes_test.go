package usecase

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/piggybank-api/internal/model"
	"github.com/vasapolrittideah/piggybank-api/internal/query"
	"github.com/vasapolrittideah/piggybank-api/internal/repository"
)

// duplicateKeyErr mimics the driver error produced by a unique index
// violation; mongo.IsDuplicateKeyError recognizes it.
var duplicateKeyErr = mongo.WriteException{
	WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}},
}

type fakeUserRepo struct {
	users map[string]*model.User

	createErr  error
	lookupErr  error
	createCall int
	lookupCall int

	lastList repository.ListUsersParams
	count    int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	f.createCall++
	if f.createErr != nil {
		return nil, f.createErr
	}

	for _, existing := range f.users {
		if existing.Email == user.Email {
			return nil, duplicateKeyErr
		}
	}

	user.ID = bson.NewObjectID()
	f.users[user.ID.Hex()] = user
	return user, nil
}

func (f *fakeUserRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	return user, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	f.lookupCall++
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}

	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) UpdateUser(
	_ context.Context,
	id string,
	params repository.UpdateUserParams,
) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.Name != nil {
		user.Name = *params.Name
	}
	if params.Email != nil {
		user.Email = *params.Email
	}
	if params.PasswordHash != nil {
		user.PasswordHash = *params.PasswordHash
	}

	return user, nil
}

func (f *fakeUserRepo) DeleteUser(_ context.Context, id string) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	delete(f.users, id)
	return user, nil
}

func (f *fakeUserRepo) ListUsers(_ context.Context, params repository.ListUsersParams) ([]*model.User, error) {
	f.lastList = params

	users := make([]*model.User, 0, len(f.users))
	for _, user := range f.users {
		users = append(users, user)
	}

	return users, nil
}

func (f *fakeUserRepo) CountUsers(_ context.Context, _ query.Spec) (int64, error) {
	if f.count > 0 {
		return f.count, nil
	}

	return int64(len(f.users)), nil
}

type fakePiggybankRepo struct {
	accounts map[string]*model.PiggybankAccount
}

func newFakePiggybankRepo() *fakePiggybankRepo {
	return &fakePiggybankRepo{accounts: make(map[string]*model.PiggybankAccount)}
}

func (f *fakePiggybankRepo) CreateAccount(
	_ context.Context,
	account *model.PiggybankAccount,
) (*model.PiggybankAccount, error) {
	for _, existing := range f.accounts {
		if existing.Email == account.Email {
			return nil, duplicateKeyErr
		}
	}

	account.ID = bson.NewObjectID()
	f.accounts[account.ID.Hex()] = account
	return account, nil
}

func (f *fakePiggybankRepo) GetAccount(_ context.Context, id string) (*model.PiggybankAccount, error) {
	account, ok := f.accounts[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	return account, nil
}

func (f *fakePiggybankRepo) GetAccountByEmail(_ context.Context, email string) (*model.PiggybankAccount, error) {
	for _, account := range f.accounts {
		if account.Email == email {
			return account, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (f *fakePiggybankRepo) UpdateAccount(
	_ context.Context,
	id string,
	params repository.UpdateAccountParams,
) (*model.PiggybankAccount, error) {
	account, ok := f.accounts[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.Name != nil {
		account.Name = *params.Name
	}
	if params.Email != nil {
		account.Email = *params.Email
	}
	if params.PasswordHash != nil {
		account.PasswordHash = *params.PasswordHash
	}
	if params.Balance != nil {
		account.Balance = *params.Balance
	}
	if params.KTP != nil {
		account.KTP = *params.KTP
	}

	return account, nil
}

func (f *fakePiggybankRepo) DeleteAccount(_ context.Context, id string) (*model.PiggybankAccount, error) {
	account, ok := f.accounts[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	delete(f.accounts, id)
	return account, nil
}

func (f *fakePiggybankRepo) ListAccounts(
	_ context.Context,
	_ repository.ListAccountsParams,
) ([]*model.PiggybankAccount, error) {
	accounts := make([]*model.PiggybankAccount, 0, len(f.accounts))
	for _, account := range f.accounts {
		accounts = append(accounts, account)
	}

	return accounts, nil
}

func (f *fakePiggybankRepo) CountAccounts(_ context.Context, _ query.Spec) (int64, error) {
	return int64(len(f.accounts)), nil
}
