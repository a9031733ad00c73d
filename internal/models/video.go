package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Video source types. The type drives the client-side rendering strategy
// (platform embed vs native player).
const (
	VideoTypeYoutube   = "youtube"
	VideoTypeVimeo     = "vimeo"
	VideoTypeFacebook  = "facebook"
	VideoTypeInstagram = "instagram"
	VideoTypeURL       = "url"
	VideoTypeUploaded  = "uploaded"
)

var videoTypes = map[string]bool{
	VideoTypeYoutube:   true,
	VideoTypeVimeo:     true,
	VideoTypeFacebook:  true,
	VideoTypeInstagram: true,
	VideoTypeURL:       true,
	VideoTypeUploaded:  true,
}

func ValidVideoType(t string) bool { return videoTypes[t] }

type Video struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Src         string             `bson:"src" json:"src"`
	Type        string             `bson:"type" json:"type"`
	Thumbnail   string             `bson:"thumbnail" json:"thumbnail"`
	Order       int                `bson:"order" json:"order"`
	IsActive    bool               `bson:"is_active" json:"isActive"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}
