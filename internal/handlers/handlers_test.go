package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"school-site-backend/internal/repository"
	"school-site-backend/internal/services"
)

// fakeStore is an in-memory Store[T]. Filtering and $set application are
// injected per document type so the same fake backs every handler test.
type fakeStore[T any] struct {
	docs     map[primitive.ObjectID]*T
	match    func(doc *T, q repository.ListQuery) bool
	applySet func(doc *T, set bson.M)
	setID    func(doc *T, id primitive.ObjectID)
}

func (f *fakeStore[T]) List(ctx context.Context, q repository.ListQuery) ([]T, error) {
	ids := make([]primitive.ObjectID, 0, len(f.docs))
	for id := range f.docs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Hex() < ids[j].Hex() })
	out := []T{}
	for _, id := range ids {
		if f.match == nil || f.match(f.docs[id], q) {
			out = append(out, *f.docs[id])
		}
	}
	return out, nil
}

func (f *fakeStore[T]) Get(ctx context.Context, id primitive.ObjectID) (*T, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *doc
	return &cp, nil
}

func (f *fakeStore[T]) Insert(ctx context.Context, doc *T) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	if f.setID != nil {
		f.setID(doc, id)
	}
	cp := *doc
	f.docs[id] = &cp
	return id, nil
}

func (f *fakeStore[T]) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*T, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if f.applySet != nil {
		f.applySet(doc, set)
	}
	cp := *doc
	return &cp, nil
}

func (f *fakeStore[T]) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.docs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.docs, id)
	return nil
}

// fakeIngestor pretends every inline payload decodes unless told to fail.
type fakeIngestor struct {
	err error
}

func (f *fakeIngestor) IngestImage(ctx context.Context, payload string) (*services.StoredMedia, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &services.StoredMedia{Src: "/uploads/images/fake.png", Thumbnail: "/uploads/images/fake_thumb.jpg"}, nil
}

func (f *fakeIngestor) IngestVideo(ctx context.Context, payload string) (*services.StoredMedia, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &services.StoredMedia{Src: "/uploads/videos/fake.mp4"}, nil
}

func jsonBody(t *testing.T, body interface{}) io.Reader {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	return bytes.NewReader(raw)
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}
