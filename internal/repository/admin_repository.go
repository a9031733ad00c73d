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

type AdminRepo struct {
	col *mongo.Collection
}

func NewAdminRepo(col *mongo.Collection) *AdminRepo {
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return &AdminRepo{col: col}
}

func (r *AdminRepo) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *AdminRepo) FindByUsername(ctx context.Context, username string) (*models.AdminAccount, error) {
	var acc models.AdminAccount
	err := r.col.FindOne(ctx, bson.M{"username": username}).Decode(&acc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (r *AdminRepo) Create(ctx context.Context, acc *models.AdminAccount) error {
	if acc.CreatedAt.IsZero() {
		acc.CreatedAt = time.Now().UTC()
	}
	res, err := r.col.InsertOne(ctx, acc)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		acc.ID = id
	}
	return nil
}

// Replace drops whatever accounts exist and installs the given one. The
// dashboard assumes a single meaningful admin, so reset is wholesale.
func (r *AdminRepo) Replace(ctx context.Context, acc *models.AdminAccount) error {
	if _, err := r.col.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	return r.Create(ctx, acc)
}
