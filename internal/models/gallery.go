package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GalleryPhoto is an Image enriched with gallery grouping fields. Year is an
// academic-year string ("2024-25"); it is free text and matched exactly.
type GalleryPhoto struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Src         string             `bson:"src" json:"src"`
	Alt         string             `bson:"alt" json:"alt"`
	Category    string             `bson:"category" json:"category"`
	Year        string             `bson:"year" json:"year"`
	Description string             `bson:"description" json:"description"`
	Order       int                `bson:"order" json:"order"`
	IsActive    bool               `bson:"is_active" json:"isActive"`
	IsUploaded  bool               `bson:"is_uploaded" json:"isUploaded"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

type GalleryVideo struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Src         string             `bson:"src" json:"src"`
	Type        string             `bson:"type" json:"type"`
	Thumbnail   string             `bson:"thumbnail" json:"thumbnail"`
	Category    string             `bson:"category" json:"category"`
	Year        string             `bson:"year" json:"year"`
	Order       int                `bson:"order" json:"order"`
	IsActive    bool               `bson:"is_active" json:"isActive"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}
