package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SiteContent is a keyed content block. Public pages look blocks up by key
// and fall back to their hard-coded copy when a key is missing or inactive,
// so lookups and updates are keyed rather than id-based.
type SiteContent struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Key       string             `bson:"key" json:"key"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	Items     []string           `bson:"items" json:"items"`
	IsActive  bool               `bson:"is_active" json:"isActive"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}
