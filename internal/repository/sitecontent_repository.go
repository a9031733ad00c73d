package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"school-site-backend/internal/models"
)

var ErrDuplicateKey = errors.New("content key already exists")

// SiteContentRepo addresses content blocks by their key. Updating by key
// rather than id keeps existing page lookups valid no matter how the block
// was recreated.
type SiteContentRepo struct {
	col *mongo.Collection
}

func NewSiteContentRepo(col *mongo.Collection) *SiteContentRepo {
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return &SiteContentRepo{col: col}
}

func (r *SiteContentRepo) List(ctx context.Context, activeOnly bool) ([]models.SiteContent, error) {
	f := bson.M{}
	if activeOnly {
		f["is_active"] = true
	}
	cur, err := r.col.Find(ctx, f, options.Find().SetSort(bson.D{{Key: "key", Value: 1}}))
	if err != nil {
		return nil, err
	}
	docs := []models.SiteContent{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *SiteContentRepo) GetByKey(ctx context.Context, key string, activeOnly bool) (*models.SiteContent, error) {
	f := bson.M{"key": key}
	if activeOnly {
		f["is_active"] = true
	}
	var doc models.SiteContent
	err := r.col.FindOne(ctx, f).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *SiteContentRepo) Insert(ctx context.Context, doc *models.SiteContent) error {
	doc.CreatedAt = time.Now().UTC()
	doc.UpdatedAt = doc.CreatedAt
	_, err := r.col.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}

// UpdateByKey patches a block's mutable fields. The key itself is not
// updatable; that would orphan the pages referencing it.
func (r *SiteContentRepo) UpdateByKey(ctx context.Context, key string, set bson.M) (*models.SiteContent, error) {
	set["updated_at"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc models.SiteContent
	err := r.col.FindOneAndUpdate(ctx, bson.M{"key": key}, bson.M{"$set": set}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *SiteContentRepo) DeleteByKey(ctx context.Context, key string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"key": key})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SiteContentRepo) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}
