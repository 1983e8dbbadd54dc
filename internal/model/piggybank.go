package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// PiggybankAccount represents a savings account. It lives in its own
// collection with no reference to User; the two record kinds only share
// the credential fields.
type PiggybankAccount struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Name         string        `bson:"name"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"password_hash"`
	Balance      float64       `bson:"balance"`
	KTP          string        `bson:"ktp"`
	CreatedAt    time.Time     `bson:"created_at"`
	UpdatedAt    time.Time     `bson:"updated_at"`
}
