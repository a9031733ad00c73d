package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"school-site-backend/internal/models"
	"school-site-backend/internal/repository"
	"school-site-backend/internal/services"
)

type memFeedbackStore struct {
	items map[primitive.ObjectID]*models.Feedback
}

func (m *memFeedbackStore) Insert(ctx context.Context, fb *models.Feedback) error {
	fb.ID = primitive.NewObjectID()
	cp := *fb
	m.items[fb.ID] = &cp
	return nil
}

func (m *memFeedbackStore) List(ctx context.Context) ([]models.Feedback, error) {
	out := []models.Feedback{}
	for _, fb := range m.items {
		out = append(out, *fb)
	}
	return out, nil
}

func (m *memFeedbackStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Feedback, error) {
	fb, ok := m.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *fb
	return &cp, nil
}

func (m *memFeedbackStore) MarkReadByToken(ctx context.Context, id primitive.ObjectID, token string) (*models.Feedback, error) {
	fb, ok := m.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if fb.ReadToken != token {
		return nil, repository.ErrBadReadToken
	}
	if !fb.IsRead {
		fb.IsRead = true
		now := time.Now().UTC()
		fb.ReadAt = &now
	}
	cp := *fb
	return &cp, nil
}

func (m *memFeedbackStore) MarkRead(ctx context.Context, id primitive.ObjectID) (*models.Feedback, error) {
	fb, ok := m.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if !fb.IsRead {
		fb.IsRead = true
		now := time.Now().UTC()
		fb.ReadAt = &now
	}
	cp := *fb
	return &cp, nil
}

func (m *memFeedbackStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := m.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memFeedbackStore) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

type memNotifier struct {
	err  error
	urls []string
}

func (m *memNotifier) SendFeedbackNotification(fb *models.Feedback, markReadURL string) error {
	if m.err != nil {
		return m.err
	}
	m.urls = append(m.urls, markReadURL)
	return nil
}

func newFeedbackApp(store *memFeedbackStore, mail services.Notifier) *fiber.App {
	svc := services.NewFeedbackService(store, mail, "http://localhost:5000", zap.NewNop().Sugar())
	h := NewFeedbackHandler(svc, store)
	app := fiber.New()
	app.Post("/api/feedback", h.Submit)
	app.Get("/api/feedback/:id/mark-read/:token", h.MarkReadByToken)
	app.Get("/api/admin/feedback", h.AdminList)
	app.Put("/api/admin/feedback/:id/mark-read", h.AdminMarkRead)
	app.Delete("/api/admin/feedback/:id", h.AdminDelete)
	return app
}

func TestFeedbackSubmit(t *testing.T) {
	store := &memFeedbackStore{items: map[primitive.ObjectID]*models.Feedback{}}
	app := newFeedbackApp(store, &memNotifier{})

	resp := doJSON(t, app, "POST", "/api/feedback", fiber.Map{
		"name":    "Jordan",
		"email":   "jordan@example.com",
		"subject": "Admission enquiry",
		"message": "When does the next intake open?",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	var fb models.Feedback
	require.NoError(t, json.Unmarshal(env.Data, &fb))
	assert.False(t, fb.ID.IsZero())
	assert.False(t, fb.IsRead)
	assert.Empty(t, fb.ReadToken) // never serialized
	assert.Len(t, store.items, 1)
}

func TestFeedbackSubmitValidation(t *testing.T) {
	store := &memFeedbackStore{items: map[primitive.ObjectID]*models.Feedback{}}
	app := newFeedbackApp(store, &memNotifier{})

	cases := []fiber.Map{
		{"email": "a@b.c", "subject": "s", "message": "m"},
		{"name": "A", "email": "not-an-email", "subject": "s", "message": "m"},
		{"name": "A", "email": "a@b.c", "subject": "s"},
	}
	for _, body := range cases {
		resp := doJSON(t, app, "POST", "/api/feedback", body)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	}
	assert.Empty(t, store.items)
}

func TestFeedbackSubmitSurvivesMailFailure(t *testing.T) {
	store := &memFeedbackStore{items: map[primitive.ObjectID]*models.Feedback{}}
	app := newFeedbackApp(store, &memNotifier{err: errors.New("smtp down")})

	resp := doJSON(t, app, "POST", "/api/feedback", fiber.Map{
		"name": "A", "email": "a@b.c", "subject": "s", "message": "m",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Len(t, store.items, 1)
}

func TestFeedbackMarkReadByToken(t *testing.T) {
	store := &memFeedbackStore{items: map[primitive.ObjectID]*models.Feedback{}}
	app := newFeedbackApp(store, &memNotifier{})

	fb := &models.Feedback{Name: "A", Email: "a@b.c", ReadToken: "tok123", SubmittedAt: time.Now().UTC()}
	require.NoError(t, store.Insert(context.Background(), fb))

	resp := doJSON(t, app, "GET", "/api/feedback/"+fb.ID.Hex()+"/mark-read/wrong", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/feedback/"+primitive.NewObjectID().Hex()+"/mark-read/tok123", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/feedback/not-hex/mark-read/tok123", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/feedback/"+fb.ID.Hex()+"/mark-read/tok123", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	var read models.Feedback
	require.NoError(t, json.Unmarshal(env.Data, &read))
	assert.True(t, read.IsRead)
	require.NotNil(t, read.ReadAt)

	// repeat is idempotent, readAt unchanged
	resp = doJSON(t, app, "GET", "/api/feedback/"+fb.ID.Hex()+"/mark-read/tok123", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	env = decodeEnvelope(t, resp)
	var again models.Feedback
	require.NoError(t, json.Unmarshal(env.Data, &again))
	assert.Equal(t, read.ReadAt.Unix(), again.ReadAt.Unix())
}

func TestFeedbackAdminEndpoints(t *testing.T) {
	store := &memFeedbackStore{items: map[primitive.ObjectID]*models.Feedback{}}
	app := newFeedbackApp(store, &memNotifier{})

	fb := &models.Feedback{Name: "A", Email: "a@b.c", SubmittedAt: time.Now().UTC()}
	require.NoError(t, store.Insert(context.Background(), fb))

	resp := doJSON(t, app, "GET", "/api/admin/feedback", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	var docs []models.Feedback
	require.NoError(t, json.Unmarshal(env.Data, &docs))
	assert.Len(t, docs, 1)

	resp = doJSON(t, app, "PUT", "/api/admin/feedback/"+fb.ID.Hex()+"/mark-read", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	env = decodeEnvelope(t, resp)
	var read models.Feedback
	require.NoError(t, json.Unmarshal(env.Data, &read))
	assert.True(t, read.IsRead)

	resp = doJSON(t, app, "DELETE", "/api/admin/feedback/"+fb.ID.Hex(), nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	resp = doJSON(t, app, "DELETE", "/api/admin/feedback/"+fb.ID.Hex(), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
