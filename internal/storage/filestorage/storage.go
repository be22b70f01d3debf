package filestorage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"atelier/internal/storage"

	"github.com/google/uuid"
)

// ImageStorage хранит загруженные изображения и возвращает стабильный URL
type ImageStorage interface {
	Save(ctx context.Context, subPath, ext string, data []byte, contentType string) (publicURL string, err error)
	Delete(ctx context.Context, publicURL string) error
}

// LocalFileStorage реализация для локальной файловой системы
type LocalFileStorage struct {
	baseDir string // Базовый каталог для хранения (например: "./uploads")
	baseURL string // Базовый URL для доступа к файлам (например: "http://localhost:8080/uploads")
}

func NewLocalFileStorage(baseDir, baseURL string) (*LocalFileStorage, error) {
	// Создаем директорию, если она не существует
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &LocalFileStorage{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Save пишет файл под случайным именем; contentType не используется
func (s *LocalFileStorage) Save(ctx context.Context, subPath, ext string, data []byte, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	rel := path.Join(subPath, uuid.NewString()+ext)
	filePath := filepath.Join(s.baseDir, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directories: %w", err)
	}

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	done := make(chan struct{})
	var copyErr error

	go func() {
		_, copyErr = io.Copy(dst, bytes.NewReader(data))
		close(done)
	}()

	select {
	case <-done:
		if copyErr != nil {
			_ = os.Remove(filePath)
			return "", fmt.Errorf("failed to copy file: %w", copyErr)
		}
	case <-ctx.Done():
		<-done
		_ = os.Remove(filePath)
		return "", ctx.Err()
	}

	return s.baseURL + "/" + rel, nil
}

// Delete удаляет файл по URL, выданному Save
func (s *LocalFileStorage) Delete(ctx context.Context, publicURL string) error {
	rel, err := s.relative(publicURL)
	if err != nil {
		return err
	}
	if err := os.Remove(s.GetFullPath(rel)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", storage.ErrFileNotFound, rel)
		}
		return err
	}
	return nil
}

// GetFullPath возвращает полный путь к файлу на диске
func (s *LocalFileStorage) GetFullPath(relativePath string) string {
	return filepath.Join(s.baseDir, filepath.FromSlash(relativePath))
}

// BaseURL возвращает базовый URL для доступа к файлам
func (s *LocalFileStorage) BaseURL() string {
	return s.baseURL
}

func (s *LocalFileStorage) GetBaseDir() string {
	return s.baseDir
}

func (s *LocalFileStorage) relative(publicURL string) (string, error) {
	rel, ok := strings.CutPrefix(publicURL, s.baseURL+"/")
	if !ok {
		return "", fmt.Errorf("%w: url %q is not served by this storage", storage.ErrFileNotFound, publicURL)
	}

	rel, err := url.PathUnescape(rel)
	if err != nil {
		return "", err
	}

	clean := path.Clean("/" + rel)
	return strings.TrimPrefix(clean, "/"), nil
}
