package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"atelier/internal/storage"

	"github.com/google/uuid"
	storage_go "github.com/supabase-community/storage-go"
)

// SupabaseStorage uploads images to a public Supabase Storage bucket.
type SupabaseStorage struct {
	client  *storage_go.Client
	bucket  string
	baseURL string
}

func NewSupabaseStorage(supabaseURL, key, bucket string) *SupabaseStorage {
	baseURL := strings.TrimRight(supabaseURL, "/")

	return &SupabaseStorage{
		client:  storage_go.NewClient(baseURL+"/storage/v1", key, nil),
		bucket:  bucket,
		baseURL: baseURL,
	}
}

func (s *SupabaseStorage) Save(ctx context.Context, subPath, ext string, data []byte, contentType string) (string, error) {
	const op = "filestorage.SupabaseStorage.Save"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	objectPath := path.Join(subPath, uuid.NewString()+ext)
	upsert := false

	_, err := s.client.UploadFile(s.bucket, objectPath, bytes.NewReader(data), storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return s.PublicURL(objectPath), nil
}

func (s *SupabaseStorage) Delete(ctx context.Context, publicURL string) error {
	const op = "filestorage.SupabaseStorage.Delete"

	objectPath, ok := strings.CutPrefix(publicURL, s.PublicURL(""))
	if !ok {
		return fmt.Errorf("%s: %w: url %q is not in bucket %s", op, storage.ErrFileNotFound, publicURL, s.bucket)
	}

	removed, err := s.client.RemoveFile(s.bucket, []string{objectPath})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	// the API answers [] when nothing matched the path
	if len(removed) == 0 {
		return fmt.Errorf("%s: %w: %s", op, storage.ErrFileNotFound, objectPath)
	}

	return nil
}

// PublicURL builds the public object URL for a path inside the bucket.
func (s *SupabaseStorage) PublicURL(objectPath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, objectPath)
}
