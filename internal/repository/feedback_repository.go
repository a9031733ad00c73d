package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"school-site-backend/internal/models"
)

var ErrBadReadToken = errors.New("mark-read token mismatch")

type FeedbackRepo struct {
	col *mongo.Collection
}

func NewFeedbackRepo(col *mongo.Collection) *FeedbackRepo {
	return &FeedbackRepo{col: col}
}

func (r *FeedbackRepo) Insert(ctx context.Context, fb *models.Feedback) error {
	if fb.SubmittedAt.IsZero() {
		fb.SubmittedAt = time.Now().UTC()
	}
	res, err := r.col.InsertOne(ctx, fb)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		fb.ID = id
	}
	return nil
}

func (r *FeedbackRepo) List(ctx context.Context) ([]models.Feedback, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submitted_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	docs := []models.Feedback{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *FeedbackRepo) Get(ctx context.Context, id primitive.ObjectID) (*models.Feedback, error) {
	var fb models.Feedback
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&fb)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &fb, nil
}

// MarkReadByToken flips is_read on the first valid call and leaves read_at
// untouched on every later one. The filter makes the transition atomic, so
// two concurrent clicks on the email link cannot both set read_at.
func (r *FeedbackRepo) MarkReadByToken(ctx context.Context, id primitive.ObjectID, token string) (*models.Feedback, error) {
	now := time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var fb models.Feedback
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "read_token": token, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true, "read_at": now}},
		opts,
	).Decode(&fb)
	if err == nil {
		return &fb, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	// no transition happened: either unknown id, wrong token, or already read
	existing, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.ReadToken != token {
		return nil, ErrBadReadToken
	}
	return existing, nil
}

// MarkRead is the dashboard's manual variant; same set-once semantics
// without the token check.
func (r *FeedbackRepo) MarkRead(ctx context.Context, id primitive.ObjectID) (*models.Feedback, error) {
	now := time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var fb models.Feedback
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true, "read_at": now}},
		opts,
	).Decode(&fb)
	if err == nil {
		return &fb, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *FeedbackRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteReadBefore removes read feedback whose read_at is older than the
// cutoff. Used by the retention job.
func (r *FeedbackRepo) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{
		"is_read": true,
		"read_at": bson.M{"$lt": cutoff},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *FeedbackRepo) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}
