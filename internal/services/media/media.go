package media

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"atelier/internal/lib/logger/sl"
	"atelier/internal/storage"
	"atelier/internal/storage/filestorage"

	"github.com/gabriel-vasile/mimetype"
)

// Uploader turns image bytes into a stable reference for a painting's
// image field.
type Uploader interface {
	UploadImage(ctx context.Context, name string, data []byte) (string, error)
}

const DefaultMaxSize = 10 << 20

var allowedTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
	"image/avif": {},
}

type ImageService struct {
	log     *slog.Logger
	storage filestorage.ImageStorage
	subPath string
	maxSize int64
}

// NewImageService returns an Uploader. With a nil storage the image is
// embedded as a data URI instead of being uploaded.
func NewImageService(log *slog.Logger, store filestorage.ImageStorage, subPath string, maxSize int64) *ImageService {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	return &ImageService{
		log:     log,
		storage: store,
		subPath: subPath,
		maxSize: maxSize,
	}
}

// UploadImage проверяет тип и размер изображения и сохраняет его
func (s *ImageService) UploadImage(ctx context.Context, name string, data []byte) (string, error) {
	const op = "services.media.UploadImage"
	log := s.log.With(
		slog.String("op", op),
		slog.String("name", name),
		slog.Int("size", len(data)),
	)

	if int64(len(data)) > s.maxSize {
		log.Warn("image too large")
		return "", fmt.Errorf("%s: %w: %d > %d bytes", op, storage.ErrFileTooLarge, len(data), s.maxSize)
	}

	mt := mimetype.Detect(data)
	contentType := mt.String()
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}

	if _, ok := allowedTypes[contentType]; !ok {
		log.Warn("rejected file type", slog.String("mime", contentType))
		return "", fmt.Errorf("%s: %w: %s", op, storage.ErrInvalidFileType, contentType)
	}

	if s.storage == nil {
		log.Debug("no image storage configured, embedding data uri")
		return DataURI(contentType, data), nil
	}

	url, err := s.storage.Save(ctx, s.subPath, mt.Extension(), data, contentType)
	if err != nil {
		log.Error("failed to store image", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	log.Info("image stored", slog.String("url", url))

	return url, nil
}

// DeleteImage removes an image saved by UploadImage. Embedded data URIs and
// references from other hosts are left alone.
func (s *ImageService) DeleteImage(ctx context.Context, ref string) error {
	const op = "services.media.DeleteImage"
	log := s.log.With(
		slog.String("op", op),
		slog.String("ref", ref),
	)

	if s.storage == nil || strings.HasPrefix(ref, "data:") {
		return nil
	}

	if err := s.storage.Delete(ctx, ref); err != nil {
		log.Error("failed to delete image", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("image deleted")

	return nil
}

// DataURI embeds data as a base64 data URI.
func DataURI(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
