// Package repository holds the Mongo persistence layer: one generic CRUD
// repository shared by the content collections, plus specialized
// repositories where a collection has extra invariants (keyed site
// content, one-shot feedback read state, the single admin account).
package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("document not found")

// ListQuery carries the exact-match filters the API supports. Zero values
// mean "no filter". ActiveOnly is set on every public read path.
type ListQuery struct {
	ActiveOnly bool
	Category   string
	Year       string
	Month      string
	Level      string
}

func (q ListQuery) filter() bson.M {
	f := bson.M{}
	if q.ActiveOnly {
		f["is_active"] = true
	}
	if q.Category != "" {
		f["category"] = q.Category
	}
	if q.Year != "" {
		f["year"] = q.Year
	}
	if q.Month != "" {
		f["month"] = q.Month
	}
	if q.Level != "" {
		f["level"] = q.Level
	}
	return f
}

// Collection is the generic repository over one typed Mongo collection.
type Collection[T any] struct {
	col *mongo.Collection
}

func NewCollection[T any](col *mongo.Collection) *Collection[T] {
	return &Collection[T]{col: col}
}

func (r *Collection[T]) List(ctx context.Context, q ListQuery) ([]T, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "order", Value: 1},
		{Key: "created_at", Value: 1},
	})
	cur, err := r.col.Find(ctx, q.filter(), opts)
	if err != nil {
		return nil, err
	}
	docs := []T{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *Collection[T]) Get(ctx context.Context, id primitive.ObjectID) (*T, error) {
	var doc T
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *Collection[T]) Insert(ctx context.Context, doc *T) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

// Update applies a partial $set and returns the updated document.
func (r *Collection[T]) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*T, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc T
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *Collection[T]) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Collection[T]) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}
