package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"school-site-backend/internal/storage"
	"school-site-backend/internal/utils"
)

var (
	ErrPayloadTooLarge = errors.New("media payload exceeds the size limit")
	ErrBadEncoding     = errors.New("media payload is not valid base64")
)

// MediaService turns base64 payloads from the admin panel into stored
// blobs and reference paths. URL sources pass through untouched; only
// inline payloads land here.
type MediaService struct {
	store    storage.Store
	maxImage int64
	maxVideo int64
	log      *zap.SugaredLogger
}

func NewMediaService(store storage.Store, maxImageMB, maxVideoMB int, log *zap.SugaredLogger) *MediaService {
	return &MediaService{
		store:    store,
		maxImage: int64(maxImageMB) << 20,
		maxVideo: int64(maxVideoMB) << 20,
		log:      log,
	}
}

// StoredMedia is what ingestion hands back to the document being created.
type StoredMedia struct {
	Src       string
	Thumbnail string
}

// IngestImage decodes, size-checks and persists a base64 image, and
// derives a JPEG thumbnail alongside it. Thumbnail failures are not
// fatal; a photo with no thumbnail still renders.
func (s *MediaService) IngestImage(ctx context.Context, payload string) (*StoredMedia, error) {
	data, err := decodeBase64(payload, s.maxImage)
	if err != nil {
		return nil, err
	}
	contentType := http.DetectContentType(data)
	name := fmt.Sprintf("images/%s%s", utils.NewID(), extensionFor(contentType))
	src, err := s.store.Save(ctx, name, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	out := &StoredMedia{Src: src}
	if thumb, err := makeThumbnail(data); err == nil {
		thumbName := strings.TrimSuffix(name, extensionFor(contentType)) + "_thumb.jpg"
		if url, err := s.store.Save(ctx, thumbName, "image/jpeg", thumb); err == nil {
			out.Thumbnail = url
		} else {
			s.log.Warnf("thumbnail store failed for %s: %v", name, err)
		}
	}
	return out, nil
}

// IngestVideo decodes, size-checks and persists a base64 video.
func (s *MediaService) IngestVideo(ctx context.Context, payload string) (*StoredMedia, error) {
	data, err := decodeBase64(payload, s.maxVideo)
	if err != nil {
		return nil, err
	}
	contentType := http.DetectContentType(data)
	name := fmt.Sprintf("videos/%s%s", utils.NewID(), extensionFor(contentType))
	src, err := s.store.Save(ctx, name, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("store video: %w", err)
	}
	return &StoredMedia{Src: src}, nil
}

// RequestBodyLimit is the transport-level body cap for a given decoded
// video limit. Inline media arrives base64-encoded, 4/3 the decoded size,
// and the JSON envelope around it needs headroom on top.
func RequestBodyLimit(maxVideoMB int) int {
	return (maxVideoMB*4/3 + 10) << 20
}

// decodeBase64 accepts plain base64 or a data URI. The size gate runs on
// the encoded length first so a huge payload is rejected before the
// decode allocates anything near it, then again on the real decoded size.
func decodeBase64(payload string, max int64) ([]byte, error) {
	if idx := strings.Index(payload, ";base64,"); idx >= 0 && strings.HasPrefix(payload, "data:") {
		payload = payload[idx+len(";base64,"):]
	}
	if payload == "" {
		return nil, ErrBadEncoding
	}
	// the encoded-length estimate overshoots by up to two padding bytes,
	// so leave that slack or an exactly-at-limit payload is rejected here
	if int64(len(payload))/4*3 > max+2 {
		return nil, ErrPayloadTooLarge
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrBadEncoding
	}
	if int64(len(data)) > max {
		return nil, ErrPayloadTooLarge
	}
	return data, nil
}

func makeThumbnail(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	thumb := imaging.Resize(img, 320, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "video/mp4":
		return ".mp4"
	case "video/webm":
		return ".webm"
	default:
		return ".bin"
	}
}
