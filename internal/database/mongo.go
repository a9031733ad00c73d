package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func ConnectMongo(uri, dbName string, logger *zap.SugaredLogger) (*mongo.Database, *mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		logger.Errorf("mongodb connect failed: %v", err)
		return nil, nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		logger.Errorf("mongodb ping failed: %v", err)
		return nil, nil, err
	}
	logger.Infof("mongodb connected, database %q", dbName)
	return client.Database(dbName), client, nil
}

// Stats is the subset of dbStats the dashboard shows.
type Stats struct {
	Database    string `bson:"db" json:"database"`
	Collections int64  `bson:"collections" json:"collections"`
	Documents   int64  `bson:"objects" json:"documents"`
	StorageSize int64  `bson:"storageSize" json:"storageSize"`
}

func DBStats(ctx context.Context, db *mongo.Database) (*Stats, error) {
	var st Stats
	if err := db.RunCommand(ctx, bson.D{{Key: "dbStats", Value: 1}}).Decode(&st); err != nil {
		return nil, err
	}
	return &st, nil
}
