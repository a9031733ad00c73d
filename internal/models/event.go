package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var eventMonths = map[string]bool{
	"January": true, "February": true, "March": true, "April": true,
	"May": true, "June": true, "July": true, "August": true,
	"September": true, "October": true, "November": true, "December": true,
}

var eventTypes = map[string]bool{
	"celebration": true,
	"competition": true,
	"sports":      true,
	"cultural":    true,
	"academic":    true,
	"other":       true,
}

func ValidEventMonth(m string) bool { return eventMonths[m] }
func ValidEventType(t string) bool  { return eventTypes[t] }

// AnnualEvent is one entry of the school's annual calendar. Date is free
// text on purpose: entries like "14-16" or "TBA" are normal.
type AnnualEvent struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Month       string             `bson:"month" json:"month"`
	Date        string             `bson:"date" json:"date"`
	Title       string             `bson:"title" json:"title"`
	Type        string             `bson:"type" json:"type"`
	Icon        string             `bson:"icon" json:"icon"`
	Description string             `bson:"description" json:"description"`
	Order       int                `bson:"order" json:"order"`
	IsActive    bool               `bson:"is_active" json:"isActive"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}
