package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	LevelPrePrimary = "preprimary"
	LevelPrimary    = "primary"
	LevelMiddle     = "middle"
	LevelSecondary  = "secondary"
	LevelSenior     = "senior"
)

var curriculumLevels = map[string]bool{
	LevelPrePrimary: true,
	LevelPrimary:    true,
	LevelMiddle:     true,
	LevelSecondary:  true,
	LevelSenior:     true,
}

func ValidCurriculumLevel(l string) bool { return curriculumLevels[l] }

type Subject struct {
	Name string `bson:"name" json:"name"`
	Icon string `bson:"icon" json:"icon"`
}

type CurriculumLevel struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Level       string             `bson:"level" json:"level"`
	Title       string             `bson:"title" json:"title"`
	Age         string             `bson:"age" json:"age"`
	Description string             `bson:"description" json:"description"`
	Subjects    []Subject          `bson:"subjects" json:"subjects"`
	Streams     []string           `bson:"streams" json:"streams"`
	Highlights  []string           `bson:"highlights" json:"highlights"`
	Order       int                `bson:"order" json:"order"`
	IsActive    bool               `bson:"is_active" json:"isActive"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}
