package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrUnknownCollection = errors.New("unknown collection")

// ContentCollections are the collection names the import/export and
// introspection endpoints may touch. The admins collection is not on the
// list: credentials never ride along with a content migration.
var ContentCollections = []string{
	"images",
	"videos",
	"galleryphotos",
	"galleryvideos",
	"curriculum",
	"annualevents",
	"sitecontents",
	"feedbacks",
}

var contentCollectionSet = func() map[string]bool {
	m := make(map[string]bool, len(ContentCollections))
	for _, name := range ContentCollections {
		m[name] = true
	}
	return m
}()

// DataRepo is the raw escape hatch behind the migration endpoints. It
// bypasses the typed repositories and their create defaults on purpose.
type DataRepo struct {
	db *mongo.Database
}

func NewDataRepo(db *mongo.Database) *DataRepo {
	return &DataRepo{db: db}
}

type CollectionInfo struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

func (r *DataRepo) Collections(ctx context.Context) ([]CollectionInfo, error) {
	infos := make([]CollectionInfo, 0, len(ContentCollections))
	for _, name := range ContentCollections {
		n, err := r.db.Collection(name).CountDocuments(ctx, bson.M{})
		if err != nil {
			return nil, err
		}
		infos = append(infos, CollectionInfo{Name: name, Count: n})
	}
	return infos, nil
}

// Import inserts raw documents as-is. A failed insert aborts with the
// count already written; callers surface that count.
func (r *DataRepo) Import(ctx context.Context, name string, docs []bson.M) (int, error) {
	if !contentCollectionSet[name] {
		return 0, ErrUnknownCollection
	}
	if len(docs) == 0 {
		return 0, nil
	}
	payload := make([]interface{}, len(docs))
	for i, d := range docs {
		delete(d, "_id") // let the store assign ids; re-imports must not collide
		payload[i] = d
	}
	res, err := r.db.Collection(name).InsertMany(ctx, payload)
	inserted := 0
	if res != nil {
		inserted = len(res.InsertedIDs)
	}
	return inserted, err
}

func (r *DataRepo) Export(ctx context.Context, name string) ([]bson.M, error) {
	if !contentCollectionSet[name] {
		return nil, ErrUnknownCollection
	}
	cur, err := r.db.Collection(name).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	docs := []bson.M{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
