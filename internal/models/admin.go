package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminAccount is the single dashboard credential set. Setup refuses to
// create a second one; reset replaces it wholesale.
type AdminAccount struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
}
