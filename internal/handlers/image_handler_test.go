package handlers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"school-site-backend/internal/models"
	"school-site-backend/internal/repository"
	"school-site-backend/internal/services"
)

func newImageStore() *fakeStore[models.Image] {
	return &fakeStore[models.Image]{
		docs: map[primitive.ObjectID]*models.Image{},
		match: func(doc *models.Image, q repository.ListQuery) bool {
			if q.ActiveOnly && !doc.IsActive {
				return false
			}
			if q.Category != "" && doc.Category != q.Category {
				return false
			}
			return true
		},
		applySet: func(doc *models.Image, set bson.M) {
			if v, ok := set["src"].(string); ok {
				doc.Src = v
			}
			if v, ok := set["alt"].(string); ok {
				doc.Alt = v
			}
			if v, ok := set["category"].(string); ok {
				doc.Category = v
			}
			if v, ok := set["order"].(int); ok {
				doc.Order = v
			}
			if v, ok := set["is_active"].(bool); ok {
				doc.IsActive = v
			}
			if v, ok := set["is_uploaded"].(bool); ok {
				doc.IsUploaded = v
			}
		},
		setID: func(doc *models.Image, id primitive.ObjectID) { doc.ID = id },
	}
}

func newImageApp(store *fakeStore[models.Image], media MediaIngestor) *fiber.App {
	h := NewImageHandler(store, media)
	app := fiber.New()
	app.Get("/api/images", h.List)
	app.Get("/api/admin/images", h.AdminList)
	app.Get("/api/admin/images/:id", h.Get)
	app.Post("/api/admin/images", h.Create)
	app.Put("/api/admin/images/:id", h.Update)
	app.Delete("/api/admin/images/:id", h.Delete)
	app.Post("/api/admin/images/batch-upload", h.BatchUpload)
	return app
}

func TestImagePublicListFiltersInactive(t *testing.T) {
	store := newImageStore()
	app := newImageApp(store, &fakeIngestor{})

	for _, doc := range []models.Image{
		{Src: "a.png", Category: "hero", IsActive: true},
		{Src: "b.png", Category: "hero", IsActive: false},
		{Src: "c.png", Category: "campus", IsActive: true},
	} {
		d := doc
		_, err := store.Insert(context.Background(), &d)
		require.NoError(t, err)
	}

	resp := doJSON(t, app, "GET", "/api/images", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	var docs []models.Image
	require.NoError(t, json.Unmarshal(env.Data, &docs))
	assert.Len(t, docs, 2)
	for _, d := range docs {
		assert.True(t, d.IsActive)
	}

	resp = doJSON(t, app, "GET", "/api/images?category=hero", nil)
	env = decodeEnvelope(t, resp)
	require.NoError(t, json.Unmarshal(env.Data, &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, "a.png", docs[0].Src)

	resp = doJSON(t, app, "GET", "/api/admin/images", nil)
	env = decodeEnvelope(t, resp)
	require.NoError(t, json.Unmarshal(env.Data, &docs))
	assert.Len(t, docs, 3)
}

func TestImageCreateFromURL(t *testing.T) {
	store := newImageStore()
	app := newImageApp(store, &fakeIngestor{})

	resp := doJSON(t, app, "POST", "/api/admin/images", fiber.Map{
		"src": "https://cdn.example.com/x.png", "alt": "campus",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	var doc models.Image
	require.NoError(t, json.Unmarshal(env.Data, &doc))
	assert.False(t, doc.ID.IsZero())
	assert.True(t, doc.IsActive)
	assert.False(t, doc.IsUploaded)
	assert.Equal(t, "https://cdn.example.com/x.png", doc.Src)
}

func TestImageCreateFromInlineData(t *testing.T) {
	store := newImageStore()
	app := newImageApp(store, &fakeIngestor{})

	resp := doJSON(t, app, "POST", "/api/admin/images", fiber.Map{"imageData": "aGVsbG8="})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	var doc models.Image
	require.NoError(t, json.Unmarshal(env.Data, &doc))
	assert.True(t, doc.IsUploaded)
	assert.Equal(t, "/uploads/images/fake.png", doc.Src)
}

func TestImageCreateRequiresSource(t *testing.T) {
	app := newImageApp(newImageStore(), &fakeIngestor{})

	resp := doJSON(t, app, "POST", "/api/admin/images", fiber.Map{"alt": "no source"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestImageCreateMapsIngestErrors(t *testing.T) {
	app := newImageApp(newImageStore(), &fakeIngestor{err: services.ErrPayloadTooLarge})
	resp := doJSON(t, app, "POST", "/api/admin/images", fiber.Map{"imageData": "aGVsbG8="})
	assert.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)

	app = newImageApp(newImageStore(), &fakeIngestor{err: services.ErrBadEncoding})
	resp = doJSON(t, app, "POST", "/api/admin/images", fiber.Map{"imageData": "%%%"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestImageUpdateAndDelete(t *testing.T) {
	store := newImageStore()
	app := newImageApp(store, &fakeIngestor{})

	seed := models.Image{Src: "a.png", IsActive: true}
	id, err := store.Insert(context.Background(), &seed)
	require.NoError(t, err)

	resp := doJSON(t, app, "PUT", "/api/admin/images/"+id.Hex(), fiber.Map{"isActive": false, "alt": "updated"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	var doc models.Image
	require.NoError(t, json.Unmarshal(env.Data, &doc))
	assert.False(t, doc.IsActive)
	assert.Equal(t, "updated", doc.Alt)

	resp = doJSON(t, app, "PUT", "/api/admin/images/"+primitive.NewObjectID().Hex(), fiber.Map{"alt": "x"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, "PUT", "/api/admin/images/not-hex", fiber.Map{"alt": "x"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, "DELETE", "/api/admin/images/"+id.Hex(), nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	resp = doJSON(t, app, "DELETE", "/api/admin/images/"+id.Hex(), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestImageBatchUploadIsolatesFailures(t *testing.T) {
	store := newImageStore()
	ingestor := &fakeIngestor{}
	app := newImageApp(store, ingestor)

	resp := doJSON(t, app, "POST", "/api/admin/images/batch-upload", fiber.Map{
		"items": []fiber.Map{
			{"src": "one.png"},
			{"alt": "missing source"},
			{"src": "three.png"},
		},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	env := decodeEnvelope(t, resp)

	var result struct {
		Successful []models.Image `json:"successful"`
		Failed     []struct {
			Index int    `json:"index"`
			Error string `json:"error"`
		} `json:"failed"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Len(t, result.Successful, 2)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, 1, result.Failed[0].Index)
	assert.Equal(t, errMissingSource.Error(), result.Failed[0].Error)
	assert.Len(t, store.docs, 2)
}
