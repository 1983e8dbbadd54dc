package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/piggybank-api/internal/model"
	"github.com/vasapolrittideah/piggybank-api/internal/query"
)

// PiggybankRepository defines the interface for piggybank account database
// operations.
type PiggybankRepository interface {
	CreateAccount(ctx context.Context, account *model.PiggybankAccount) (*model.PiggybankAccount, error)
	GetAccount(ctx context.Context, id string) (*model.PiggybankAccount, error)
	GetAccountByEmail(ctx context.Context, email string) (*model.PiggybankAccount, error)
	UpdateAccount(ctx context.Context, id string, params UpdateAccountParams) (*model.PiggybankAccount, error)
	DeleteAccount(ctx context.Context, id string) (*model.PiggybankAccount, error)
	ListAccounts(ctx context.Context, params ListAccountsParams) ([]*model.PiggybankAccount, error)
	CountAccounts(ctx context.Context, spec query.Spec) (int64, error)
}

// UpdateAccountParams defines the optional parameters for updating a
// piggybank account. Only the fields that are not nil will be updated.
type UpdateAccountParams struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Balance      *float64
	KTP          *string
}

// ListAccountsParams defines the parameters for listing piggybank accounts.
// A Limit of zero returns the whole collection.
type ListAccountsParams struct {
	Spec  query.Spec
	Limit int64
	Skip  int64
}

const piggybankCollection = "piggybank"

type piggybankMongoRepository struct {
	db      *mongo.Database
	timeout time.Duration
}

// NewPiggybankMongoRepository creates the piggybank repository and ensures
// the unique email index exists.
func NewPiggybankMongoRepository(
	ctx context.Context,
	logger *zerolog.Logger,
	db *mongo.Database,
	timeout time.Duration,
) PiggybankRepository {
	collection := db.Collection(piggybankCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create piggybank indexes")
	}

	return &piggybankMongoRepository{db: db, timeout: timeout}
}

func (r *piggybankMongoRepository) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *piggybankMongoRepository) CreateAccount(
	ctx context.Context,
	account *model.PiggybankAccount,
) (*model.PiggybankAccount, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now

	result, err := r.db.Collection(piggybankCollection).InsertOne(ctx, account)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		account.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return account, nil
}

func (r *piggybankMongoRepository) GetAccount(ctx context.Context, id string) (*model.PiggybankAccount, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	ctx, cancel := r.opContext(ctx)
	defer cancel()

	result := r.db.Collection(piggybankCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var account model.PiggybankAccount
	if err := result.Decode(&account); err != nil {
		return nil, err
	}

	return &account, nil
}

func (r *piggybankMongoRepository) GetAccountByEmail(
	ctx context.Context,
	email string,
) (*model.PiggybankAccount, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	result := r.db.Collection(piggybankCollection).FindOne(ctx, bson.M{"email": email})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var account model.PiggybankAccount
	if err := result.Decode(&account); err != nil {
		return nil, err
	}

	return &account, nil
}

// UpdateAccount applies the non-nil fields of params to the account with the
// given id. It returns mongo.ErrNoDocuments if the account vanished between
// an existence check and the write.
func (r *piggybankMongoRepository) UpdateAccount(
	ctx context.Context,
	id string,
	params UpdateAccountParams,
) (*model.PiggybankAccount, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	updateMap := bson.M{}
	if params.Name != nil {
		updateMap["name"] = *params.Name
	}
	if params.Email != nil {
		updateMap["email"] = *params.Email
	}
	if params.PasswordHash != nil {
		updateMap["password_hash"] = *params.PasswordHash
	}
	if params.Balance != nil {
		updateMap["balance"] = *params.Balance
	}
	if params.KTP != nil {
		updateMap["ktp"] = *params.KTP
	}

	if len(updateMap) == 0 {
		return nil, errors.New("no account fields to update")
	}

	updateMap["updated_at"] = time.Now()

	ctx, cancel := r.opContext(ctx)
	defer cancel()

	result := r.db.Collection(piggybankCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var account model.PiggybankAccount
	if err := result.Decode(&account); err != nil {
		return nil, err
	}

	return &account, nil
}

func (r *piggybankMongoRepository) DeleteAccount(ctx context.Context, id string) (*model.PiggybankAccount, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	ctx, cancel := r.opContext(ctx)
	defer cancel()

	result := r.db.Collection(piggybankCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var account model.PiggybankAccount
	if err := result.Decode(&account); err != nil {
		return nil, err
	}

	return &account, nil
}

func (r *piggybankMongoRepository) ListAccounts(
	ctx context.Context,
	params ListAccountsParams,
) ([]*model.PiggybankAccount, error) {
	findOptions := options.Find()

	if params.Limit > 0 {
		findOptions.SetLimit(params.Limit)
	}
	if params.Skip > 0 {
		findOptions.SetSkip(params.Skip)
	}
	findOptions.SetSort(specSort(params.Spec))

	ctx, cancel := r.opContext(ctx)
	defer cancel()

	cursor, err := r.db.Collection(piggybankCollection).Find(ctx, specFilter(params.Spec), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var accounts []*model.PiggybankAccount
	for cursor.Next(ctx) {
		var account model.PiggybankAccount
		if err := cursor.Decode(&account); err != nil {
			return nil, err
		}
		accounts = append(accounts, &account)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return accounts, nil
}

func (r *piggybankMongoRepository) CountAccounts(ctx context.Context, spec query.Spec) (int64, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	return r.db.Collection(piggybankCollection).CountDocuments(ctx, specFilter(spec))
}
