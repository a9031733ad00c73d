package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Image is a site-wide marketing image (hero banners, facility shots, ...).
type Image struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Src        string             `bson:"src" json:"src"`
	Alt        string             `bson:"alt" json:"alt"`
	Category   string             `bson:"category" json:"category"`
	Order      int                `bson:"order" json:"order"`
	IsActive   bool               `bson:"is_active" json:"isActive"`
	IsUploaded bool               `bson:"is_uploaded" json:"isUploaded"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updatedAt"`
}
