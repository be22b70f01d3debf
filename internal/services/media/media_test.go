package media_test

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"atelier/internal/lib/logger/handlers/slogdiscard"
	"atelier/internal/services/media"
	"atelier/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockImageStorage struct {
	mock.Mock
}

func (m *MockImageStorage) Save(ctx context.Context, subPath, ext string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, subPath, ext, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockImageStorage) Delete(ctx context.Context, publicURL string) error {
	args := m.Called(ctx, publicURL)
	return args.Error(0)
}

// smallest valid PNG signature + IHDR is enough for sniffing
var pngBytes = []byte{
	0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
	0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1F, 0x15, 0xC4, 0x89,
}

func TestImageService_UploadImage(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		data      []byte
		maxSize   int64
		mockSetup func(m *MockImageStorage)
		wantURL   string
		wantErr   error
	}{
		{
			name: "stored png",
			data: pngBytes,
			mockSetup: func(m *MockImageStorage) {
				m.On("Save", ctx, "paintings", ".png", pngBytes, "image/png").
					Return("https://cdn.test/paintings/a.png", nil).Once()
			},
			wantURL: "https://cdn.test/paintings/a.png",
		},
		{
			name:      "text is rejected",
			data:      []byte("just some text"),
			mockSetup: func(m *MockImageStorage) {},
			wantErr:   storage.ErrInvalidFileType,
		},
		{
			name:      "too large",
			data:      pngBytes,
			maxSize:   8,
			mockSetup: func(m *MockImageStorage) {},
			wantErr:   storage.ErrFileTooLarge,
		},
		{
			name: "storage failure propagates",
			data: pngBytes,
			mockSetup: func(m *MockImageStorage) {
				m.On("Save", ctx, "paintings", ".png", pngBytes, "image/png").
					Return("", errors.New("bucket not found")).Once()
			},
			wantErr: errors.New("bucket not found"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockImageStorage)
			tt.mockSetup(store)

			svc := media.NewImageService(slogdiscard.NewDiscardLogger(), store, "paintings", tt.maxSize)
			url, err := svc.UploadImage(ctx, "photo.png", tt.data)

			switch {
			case tt.wantErr == nil:
				require.NoError(t, err)
				assert.Equal(t, tt.wantURL, url)
			case errors.Is(tt.wantErr, storage.ErrInvalidFileType), errors.Is(tt.wantErr, storage.ErrFileTooLarge):
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				assert.ErrorContains(t, err, tt.wantErr.Error())
			}
			store.AssertExpectations(t)
		})
	}
}

func TestImageService_DataURIFallback(t *testing.T) {
	svc := media.NewImageService(slogdiscard.NewDiscardLogger(), nil, "", 0)

	url, err := svc.UploadImage(context.Background(), "photo.png", pngBytes)
	require.NoError(t, err)

	prefix := "data:image/png;base64,"
	require.True(t, strings.HasPrefix(url, prefix))

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, prefix))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, decoded)
}

func TestImageService_DeleteImage(t *testing.T) {
	ctx := context.Background()

	t.Run("stored image is removed", func(t *testing.T) {
		store := new(MockImageStorage)
		store.On("Delete", ctx, "https://cdn.test/paintings/a.png").Return(nil).Once()

		svc := media.NewImageService(slogdiscard.NewDiscardLogger(), store, "paintings", 0)
		require.NoError(t, svc.DeleteImage(ctx, "https://cdn.test/paintings/a.png"))
		store.AssertExpectations(t)
	})

	t.Run("data uri never reaches the storage", func(t *testing.T) {
		store := new(MockImageStorage)

		svc := media.NewImageService(slogdiscard.NewDiscardLogger(), store, "paintings", 0)
		require.NoError(t, svc.DeleteImage(ctx, media.DataURI("image/png", pngBytes)))
		store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("missing file", func(t *testing.T) {
		store := new(MockImageStorage)
		store.On("Delete", ctx, "https://cdn.test/x.png").Return(storage.ErrFileNotFound).Once()

		svc := media.NewImageService(slogdiscard.NewDiscardLogger(), store, "paintings", 0)
		assert.ErrorIs(t, svc.DeleteImage(ctx, "https://cdn.test/x.png"), storage.ErrFileNotFound)
	})
}
