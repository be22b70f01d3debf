package admin_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"atelier/internal/admin"
	"atelier/internal/domain/models"
	"atelier/internal/lib/logger/handlers/slogdiscard"
	"atelier/internal/lib/validate"
	"atelier/internal/repository"
	pages "atelier/internal/services/page_service"
	paintings "atelier/internal/services/painting_service"
	settings "atelier/internal/services/setting_service"
	"atelier/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPaintingCollection struct {
	mock.Mock
}

func (m *MockPaintingCollection) GetAll(ctx context.Context) ([]models.Painting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Painting), args.Error(1)
}

func (m *MockPaintingCollection) Create(ctx context.Context, in models.PaintingInsert) (models.Painting, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(models.Painting), args.Error(1)
}

func (m *MockPaintingCollection) Update(ctx context.Context, id uuid.UUID, patch models.PaintingUpdate) (models.Painting, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(models.Painting), args.Error(1)
}

func (m *MockPaintingCollection) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type fixture struct {
	repo      *repository.Repository
	paintings *admin.PaintingEditor
	pages     *admin.PageEditor
	settings  *admin.SettingEditor
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	log := slogdiscard.NewDiscardLogger()
	v := validate.New()
	repo := repository.NewMemoryRepository()

	return fixture{
		repo:      repo,
		paintings: admin.NewPaintingEditor(log, paintings.NewPaintingService(log, repo.Paintings, v), nil),
		pages:     admin.NewPageEditor(log, pages.NewPageService(log, repo.Pages, v)),
		settings:  admin.NewSettingEditor(log, settings.NewSettingService(log, repo.Settings, v)),
	}
}

func fillPainting(f *admin.PaintingForm) {
	f.Title = "Shadow Study"
	f.Year = "2021"
	f.Medium = "Oil on canvas"
	f.Dimensions = "60 x 80 cm"
	f.SelectCollection("Phenomenology")
	f.Theme = "Urban"
	f.Description = "Late light on a wall."
	f.DisplayOrder = 5
}

func TestEditor_CreatePainting(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	ed := fx.paintings

	require.NoError(t, ed.StartCreate())
	assert.Equal(t, admin.Creating, ed.State())
	require.NoError(t, ed.Edit(fillPainting))

	require.NoError(t, ed.Submit(ctx))

	assert.Equal(t, admin.Browsing, ed.State())
	assert.Equal(t, admin.NoticeInfo, ed.Notice().Kind)
	assert.Equal(t, "", ed.Form().Title, "form is cleared after save")

	items := ed.Items()
	require.Len(t, items, 1)
	got := items[0]
	assert.Equal(t, "Shadow Study", got.Title)
	assert.Nil(t, got.TitleAr, "empty arabic input is stored as absent")
	require.NotNil(t, got.CollectionAr)
	assert.Equal(t, "الظاهرة", *got.CollectionAr)
}

func TestEditor_ViewWhileEditing(t *testing.T) {
	ed := admin.NewPaintingEditor(slogdiscard.NewDiscardLogger(), new(MockPaintingCollection), nil)
	require.NoError(t, ed.StartCreate())

	const writers = 8
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = ed.Edit(func(f *admin.PaintingForm) { f.DisplayOrder = i })
		}(i)
		go func() {
			defer wg.Done()
			ed.View(func(f *admin.PaintingForm) {
				assert.GreaterOrEqual(t, f.DisplayOrder, 0)
				assert.Less(t, f.DisplayOrder, writers)
			})
		}()
	}
	wg.Wait()

	require.NoError(t, ed.Edit(func(f *admin.PaintingForm) { f.Title = "Settled" }))
	var title string
	ed.View(func(f *admin.PaintingForm) { title = f.Title })
	assert.Equal(t, "Settled", title)
}

func TestEditor_IncompleteFormIsKept(t *testing.T) {
	ctx := context.Background()
	svc := new(MockPaintingCollection)
	ed := admin.NewPaintingEditor(slogdiscard.NewDiscardLogger(), svc, nil)

	require.NoError(t, ed.StartCreate())
	require.NoError(t, ed.Edit(func(f *admin.PaintingForm) { f.Title = "Only a title" }))

	err := ed.Submit(ctx)
	assert.ErrorIs(t, err, admin.ErrIncomplete)
	assert.ErrorIs(t, err, storage.ErrValidationRejected)
	assert.Contains(t, err.Error(), "year")

	assert.Equal(t, admin.Creating, ed.State())
	assert.Equal(t, "Only a title", ed.Form().Title)
	assert.Equal(t, admin.NoticeError, ed.Notice().Kind)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestEditor_StoreFailurePreservesForm(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		err        error
		wantNotice string
	}{
		{
			name:       "unavailable",
			err:        fmt.Errorf("op: %w: timeout", storage.ErrStoreUnavailable),
			wantNotice: "unavailable",
		},
		{
			name:       "conflict",
			err:        fmt.Errorf("op: %w: %w", storage.ErrValidationRejected, storage.ErrConflict),
			wantNotice: "already uses this key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockPaintingCollection)
			svc.On("Create", ctx, mock.AnythingOfType("models.PaintingInsert")).
				Return(models.Painting{}, tt.err).Once()

			ed := admin.NewPaintingEditor(slogdiscard.NewDiscardLogger(), svc, nil)
			require.NoError(t, ed.StartCreate())
			require.NoError(t, ed.Edit(fillPainting))

			err := ed.Submit(ctx)
			assert.ErrorIs(t, err, tt.err)

			assert.Equal(t, admin.Creating, ed.State())
			assert.Equal(t, "Shadow Study", ed.Form().Title)
			assert.Contains(t, ed.Notice().Text, tt.wantNotice)
			svc.AssertNotCalled(t, "GetAll", mock.Anything)
			svc.AssertExpectations(t)
		})
	}
}

func TestEditor_SubmitIsNotReentrant(t *testing.T) {
	ctx := context.Background()
	release := make(chan time.Time)

	svc := new(MockPaintingCollection)
	svc.On("Create", mock.Anything, mock.AnythingOfType("models.PaintingInsert")).
		WaitUntil(release).
		Return(models.Painting{ID: uuid.New(), Title: "Shadow Study"}, nil).Once()
	svc.On("GetAll", mock.Anything).Return([]models.Painting{{Title: "Shadow Study"}}, nil).Once()

	ed := admin.NewPaintingEditor(slogdiscard.NewDiscardLogger(), svc, nil)
	require.NoError(t, ed.StartCreate())
	require.NoError(t, ed.Edit(fillPainting))

	done := make(chan error, 1)
	go func() { done <- ed.Submit(ctx) }()

	require.Eventually(t, func() bool { return ed.State() == admin.Submitting }, time.Second, time.Millisecond)

	assert.ErrorIs(t, ed.Submit(ctx), admin.ErrBusy)
	assert.ErrorIs(t, ed.Edit(func(f *admin.PaintingForm) { f.Title = "x" }), admin.ErrBusy)
	assert.ErrorIs(t, ed.StartCreate(), admin.ErrBusy)
	assert.ErrorIs(t, ed.Cancel(), admin.ErrBusy)

	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, admin.Browsing, ed.State())
	assert.Len(t, ed.Items(), 1)
	svc.AssertExpectations(t)
}

func TestEditor_ResetDuringSubmitDiscardsForm(t *testing.T) {
	ctx := context.Background()
	release := make(chan time.Time)

	svc := new(MockPaintingCollection)
	svc.On("Create", mock.Anything, mock.AnythingOfType("models.PaintingInsert")).
		WaitUntil(release).
		Return(models.Painting{}, fmt.Errorf("op: %w", storage.ErrStoreUnavailable)).Once()

	ed := admin.NewPaintingEditor(slogdiscard.NewDiscardLogger(), svc, nil)
	require.NoError(t, ed.StartCreate())
	require.NoError(t, ed.Edit(fillPainting))

	done := make(chan error, 1)
	go func() { done <- ed.Submit(ctx) }()
	require.Eventually(t, func() bool { return ed.State() == admin.Submitting }, time.Second, time.Millisecond)

	ed.Reset()
	close(release)

	assert.ErrorIs(t, <-done, storage.ErrStoreUnavailable)
	assert.Equal(t, admin.Browsing, ed.State())
	assert.Equal(t, "", ed.Form().Title)
}

func TestEditor_EditPainting(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)

	created, err := fx.repo.Paintings.Create(ctx, models.PaintingInsert{
		Title:       "Shadow Study",
		TitleAr:     func() *string { s := "دراسة الظل"; return &s }(),
		Year:        "2021",
		Medium:      "Oil",
		Dimensions:  "60 x 80",
		Collection:  "Phenomenology",
		Theme:       "Urban",
		Description: "d",
	})
	require.NoError(t, err)

	ed := fx.paintings
	require.NoError(t, ed.Load(ctx))
	require.NoError(t, ed.StartEdit(created))
	assert.Equal(t, "دراسة الظل", ed.Form().TitleAr)
	assert.Equal(t, "", ed.Form().MediumAr, "absent arabic value hydrates as empty input")

	require.NoError(t, ed.Edit(func(f *admin.PaintingForm) {
		f.Year = "2019-2021"
		f.TitleAr = ""
	}))
	require.NoError(t, ed.Submit(ctx))

	got, err := fx.repo.Paintings.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "2019-2021", got.Year)
	require.NotNil(t, got.TitleAr)
	assert.Equal(t, "", *got.TitleAr)
	assert.Nil(t, got.MediumAr, "untouched absent value stays absent")
	assert.True(t, got.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, admin.Browsing, ed.State())
	assert.Nil(t, ed.Editing())
}

func TestPaintingForm_PatchHoldsOnlyChanges(t *testing.T) {
	orig := models.Painting{
		ID:           uuid.New(),
		Title:        "A",
		Year:         "2020",
		Medium:       "Oil",
		Dimensions:   "1x1",
		Collection:   "Phenomenology",
		Theme:        "Urban",
		Description:  "d",
		DisplayOrder: 3,
	}

	var f admin.PaintingForm
	f.Hydrate(orig)

	patch, err := f.Patch(orig)
	require.NoError(t, err)
	assert.Empty(t, patch.Fields())

	f.DisplayOrder = 1
	f.IsFeatured = true
	patch, err = f.Patch(orig)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"display_order": 1, "is_featured": true}, patch.Fields())
}

func TestEditor_DeleteRequiresConfirmation(t *testing.T) {
	ctx := context.Background()
	rec := models.Painting{ID: uuid.New(), Title: "Shadow Study"}

	t.Run("declined", func(t *testing.T) {
		svc := new(MockPaintingCollection)
		ed := admin.NewPaintingEditor(slogdiscard.NewDiscardLogger(), svc, nil)

		deleted, err := ed.Delete(ctx, rec, func(models.Painting) bool { return false })
		require.NoError(t, err)
		assert.False(t, deleted)
		svc.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("confirmed while editing the same record", func(t *testing.T) {
		svc := new(MockPaintingCollection)
		svc.On("Delete", ctx, rec.ID).Return(nil).Once()
		svc.On("GetAll", ctx).Return([]models.Painting{}, nil).Once()

		ed := admin.NewPaintingEditor(slogdiscard.NewDiscardLogger(), svc, nil)
		require.NoError(t, ed.StartEdit(rec))

		var asked string
		deleted, err := ed.Delete(ctx, rec, func(p models.Painting) bool {
			asked = p.Title
			return true
		})
		require.NoError(t, err)
		assert.True(t, deleted)
		assert.Equal(t, "Shadow Study", asked)
		assert.Equal(t, admin.Browsing, ed.State())
		assert.Nil(t, ed.Editing())
		svc.AssertExpectations(t)
	})

	t.Run("refresh failure after delete", func(t *testing.T) {
		svc := new(MockPaintingCollection)
		svc.On("Delete", ctx, rec.ID).Return(nil).Once()
		svc.On("GetAll", ctx).Return(nil, fmt.Errorf("op: %w", storage.ErrStoreUnavailable)).Once()

		ed := admin.NewPaintingEditor(slogdiscard.NewDiscardLogger(), svc, nil)

		deleted, err := ed.Delete(ctx, rec, func(models.Painting) bool { return true })
		assert.True(t, deleted)
		assert.ErrorIs(t, err, storage.ErrStoreUnavailable)
		assert.Contains(t, ed.Notice().Text, "could not be refreshed")
	})
}

func TestEditor_DeleteUnknownRecord(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)

	deleted, err := fx.paintings.Delete(ctx, models.Painting{ID: uuid.New()}, func(models.Painting) bool { return true })
	assert.False(t, deleted)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Contains(t, fx.paintings.Notice().Text, "no longer exists")
}

func TestEditor_SubmitWithoutForm(t *testing.T) {
	fx := newFixture(t)
	assert.ErrorIs(t, fx.settings.Submit(context.Background()), admin.ErrNoForm)
}

type stubUploader struct {
	url string
	err error
}

func (s stubUploader) UploadImage(_ context.Context, _ string, _ []byte) (string, error) {
	return s.url, s.err
}

func TestPaintingEditor_AttachImage(t *testing.T) {
	ctx := context.Background()
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	t.Run("inline data uri", func(t *testing.T) {
		ed := admin.NewPaintingEditor(slogdiscard.NewDiscardLogger(), new(MockPaintingCollection), nil)
		require.NoError(t, ed.StartCreate())

		ref, err := ed.AttachImage(ctx, "a.png", png)
		require.NoError(t, err)
		assert.Contains(t, ref, "data:image/png;base64,")
		assert.Equal(t, ref, ed.Form().ImageURL)
		assert.False(t, ed.Uploading())
	})

	t.Run("uploader", func(t *testing.T) {
		up := stubUploader{url: "https://cdn.test/paintings/a.png"}
		ed := admin.NewPaintingEditor(slogdiscard.NewDiscardLogger(), new(MockPaintingCollection), up)
		require.NoError(t, ed.StartCreate())

		ref, err := ed.AttachImage(ctx, "a.png", png)
		require.NoError(t, err)
		assert.Equal(t, up.url, ed.Form().ImageURL)
		assert.Equal(t, up.url, ref)
	})

	t.Run("upload failure leaves the field", func(t *testing.T) {
		up := stubUploader{err: storage.ErrInvalidFileType}
		ed := admin.NewPaintingEditor(slogdiscard.NewDiscardLogger(), new(MockPaintingCollection), up)
		require.NoError(t, ed.StartCreate())
		require.NoError(t, ed.Edit(func(f *admin.PaintingForm) { f.ImageURL = "keep" }))

		_, err := ed.AttachImage(ctx, "a.txt", []byte("text"))
		assert.ErrorIs(t, err, storage.ErrInvalidFileType)
		assert.Equal(t, "keep", ed.Form().ImageURL)
		assert.Equal(t, admin.NoticeError, ed.Notice().Kind)
	})
}
