package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBlobStore struct {
	saved map[string][]byte
	types map[string]string
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{saved: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeBlobStore) Save(ctx context.Context, name, contentType string, data []byte) (string, error) {
	f.saved[name] = data
	f.types[name] = contentType
	return "/uploads/" + name, nil
}

func pngPayload(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestIngestImageStoresBlobAndThumbnail(t *testing.T) {
	store := newFakeBlobStore()
	svc := NewMediaService(store, 10, 50, zap.NewNop().Sugar())

	out, err := svc.IngestImage(context.Background(), pngPayload(t, 64, 64))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.Src, "/uploads/images/"))
	assert.True(t, strings.HasSuffix(out.Src, ".png"))
	assert.True(t, strings.HasSuffix(out.Thumbnail, "_thumb.jpg"))

	require.Len(t, store.saved, 2)
	for name, ct := range store.types {
		if strings.HasSuffix(name, "_thumb.jpg") {
			assert.Equal(t, "image/jpeg", ct)
		} else {
			assert.Equal(t, "image/png", ct)
		}
	}
}

func TestIngestImageAcceptsDataURI(t *testing.T) {
	store := newFakeBlobStore()
	svc := NewMediaService(store, 10, 50, zap.NewNop().Sugar())

	payload := "data:image/png;base64," + pngPayload(t, 8, 8)
	out, err := svc.IngestImage(context.Background(), payload)
	require.NoError(t, err)
	assert.NotEmpty(t, out.Src)
}

func TestIngestImageRejectsBadBase64(t *testing.T) {
	store := newFakeBlobStore()
	svc := NewMediaService(store, 10, 50, zap.NewNop().Sugar())

	_, err := svc.IngestImage(context.Background(), "!!!not base64!!!")
	assert.ErrorIs(t, err, ErrBadEncoding)

	_, err = svc.IngestImage(context.Background(), "")
	assert.ErrorIs(t, err, ErrBadEncoding)
}

func TestIngestRejectsOversizedPayload(t *testing.T) {
	store := newFakeBlobStore()
	svc := NewMediaService(store, 1, 1, zap.NewNop().Sugar())

	big := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0xff}, 2<<20))
	_, err := svc.IngestImage(context.Background(), big)
	assert.ErrorIs(t, err, ErrPayloadTooLarge)

	_, err = svc.IngestVideo(context.Background(), big)
	assert.ErrorIs(t, err, ErrPayloadTooLarge)
	assert.Empty(t, store.saved)
}

func TestIngestVideoAtExactLimit(t *testing.T) {
	store := newFakeBlobStore()
	svc := NewMediaService(store, 1, 1, zap.NewNop().Sugar())

	exact := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0x42}, 1<<20))
	out, err := svc.IngestVideo(context.Background(), exact)
	require.NoError(t, err)
	assert.NotEmpty(t, out.Src)

	over := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0x42}, 1<<20+1))
	_, err = svc.IngestVideo(context.Background(), over)
	assert.ErrorIs(t, err, ErrPayloadTooLarge)
}

func TestRequestBodyLimitAdmitsEncodedMaximum(t *testing.T) {
	for _, mb := range []int{10, 50, 100, 500} {
		decoded := int64(mb) << 20
		encoded := (decoded + 2) / 3 * 4
		assert.Greater(t, int64(RequestBodyLimit(mb)), encoded, "%dMB video", mb)
	}
}

func TestIngestVideoStoresBlob(t *testing.T) {
	store := newFakeBlobStore()
	svc := NewMediaService(store, 10, 50, zap.NewNop().Sugar())

	payload := base64.StdEncoding.EncodeToString([]byte("not really a video"))
	out, err := svc.IngestVideo(context.Background(), payload)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.Src, "/uploads/videos/"))
	assert.Empty(t, out.Thumbnail)
}
