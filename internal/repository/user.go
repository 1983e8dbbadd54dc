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

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateUser(ctx context.Context, id string, params UpdateUserParams) (*model.User, error)
	DeleteUser(ctx context.Context, id string) (*model.User, error)
	ListUsers(ctx context.Context, params ListUsersParams) ([]*model.User, error)
	CountUsers(ctx context.Context, spec query.Spec) (int64, error)
}

// UpdateUserParams defines the optional parameters for updating a user.
// Only the fields that are not nil will be updated.
type UpdateUserParams struct {
	Name         *string
	Email        *string
	PasswordHash *string
}

// ListUsersParams defines the parameters for listing users. A Limit of zero
// returns the whole collection (the unpaginated listing path).
type ListUsersParams struct {
	Spec  query.Spec
	Limit int64
	Skip  int64
}

const userCollection = "users"

type userMongoRepository struct {
	db      *mongo.Database
	timeout time.Duration
}

// NewUserMongoRepository creates the users repository and ensures the unique
// email index exists.
func NewUserMongoRepository(
	ctx context.Context,
	logger *zerolog.Logger,
	db *mongo.Database,
	timeout time.Duration,
) UserRepository {
	collection := db.Collection(userCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create user indexes")
	}

	return &userMongoRepository{db: db, timeout: timeout}
}

func (r *userMongoRepository) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *userMongoRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := r.db.Collection(userCollection).InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		user.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return user, nil
}

func (r *userMongoRepository) GetUser(ctx context.Context, id string) (*model.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		// A malformed id matches no document.
		return nil, mongo.ErrNoDocuments
	}

	ctx, cancel := r.opContext(ctx)
	defer cancel()

	result := r.db.Collection(userCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	result := r.db.Collection(userCollection).FindOne(ctx, bson.M{"email": email})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

// UpdateUser applies the non-nil fields of params to the user with the given
// id. It returns mongo.ErrNoDocuments if the user vanished between an
// existence check and the write, so callers need no separate read.
func (r *userMongoRepository) UpdateUser(
	ctx context.Context,
	id string,
	params UpdateUserParams,
) (*model.User, error) {
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

	if len(updateMap) == 0 {
		return nil, errors.New("no user fields to update")
	}

	updateMap["updated_at"] = time.Now()

	ctx, cancel := r.opContext(ctx)
	defer cancel()

	result := r.db.Collection(userCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) DeleteUser(ctx context.Context, id string) (*model.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	ctx, cancel := r.opContext(ctx)
	defer cancel()

	result := r.db.Collection(userCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) ListUsers(ctx context.Context, params ListUsersParams) ([]*model.User, error) {
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

	cursor, err := r.db.Collection(userCollection).Find(ctx, specFilter(params.Spec), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []*model.User
	for cursor.Next(ctx) {
		var user model.User
		if err := cursor.Decode(&user); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userMongoRepository) CountUsers(ctx context.Context, spec query.Spec) (int64, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	return r.db.Collection(userCollection).CountDocuments(ctx, specFilter(spec))
}
