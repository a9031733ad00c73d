package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feedback is a contact-form submission. ReadToken gates the one-click
// mark-read link sent in the notification email; it never appears in
// public API responses. ReadAt is set exactly once, on the first
// successful mark-read, and drives the retention cutoff.
type Feedback struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Phone       string             `bson:"phone" json:"phone"`
	Subject     string             `bson:"subject" json:"subject"`
	Message     string             `bson:"message" json:"message"`
	SubmittedAt time.Time          `bson:"submitted_at" json:"submittedAt"`
	IsRead      bool               `bson:"is_read" json:"isRead"`
	ReadAt      *time.Time         `bson:"read_at,omitempty" json:"readAt,omitempty"`
	ReadToken   string             `bson:"read_token" json:"-"`
}

// DeleteAfter reports when a read feedback becomes eligible for
// reclamation. Unread feedback is kept indefinitely.
func (f *Feedback) DeleteAfter(retentionMonths int) (time.Time, bool) {
	if f.ReadAt == nil {
		return time.Time{}, false
	}
	return f.ReadAt.AddDate(0, retentionMonths, 0), true
}
