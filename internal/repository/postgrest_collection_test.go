package repository_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"atelier/internal/domain/models"
	"atelier/internal/repository"
	"atelier/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supabase-community/supabase-go"
)

type restCall struct {
	method string
	path   string
	query  string
	body   string
}

// fakeRest answers every request with the same status/body and records it.
type fakeRest struct {
	status       int
	body         string
	contentRange string
	calls        []restCall
}

func (f *fakeRest) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	f.calls = append(f.calls, restCall{
		method: r.Method,
		path:   r.URL.Path,
		query:  r.URL.RawQuery,
		body:   string(raw),
	})

	if f.contentRange != "" {
		w.Header().Set("Content-Range", f.contentRange)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(f.status)
	_, _ = w.Write([]byte(f.body))
}

func newRestRepo(t *testing.T, fake *fakeRest) *repository.Repository {
	t.Helper()

	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := supabase.NewClient(srv.URL, "service-key", nil)
	require.NoError(t, err)

	return repository.NewSupabaseRepository(client)
}

func TestRest_ListOrdersByDisplayOrder(t *testing.T) {
	id := uuid.New()
	fake := &fakeRest{
		status: http.StatusOK,
		body:   `[{"id":"` + id.String() + `","title":"Light Study","display_order":2,"is_featured":true,"created_at":"2024-05-01T10:00:00.123456+00:00","updated_at":"2024-05-01T10:00:00.123456+00:00"}]`,
	}
	repo := newRestRepo(t, fake)

	items, err := repo.Paintings.List(testCtx, repository.Filter{"is_featured": true})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, id, items[0].ID)
	assert.Equal(t, "Light Study", items[0].Title)
	assert.Nil(t, items[0].TitleAr)

	require.Len(t, fake.calls, 1)
	call := fake.calls[0]
	assert.Equal(t, http.MethodGet, call.method)
	assert.Equal(t, "/rest/v1/paintings", call.path)
	assert.Contains(t, call.query, "is_featured=eq.true")
	assert.Contains(t, call.query, "display_order.asc")
}

func TestRest_GetByIDEmptyIsNotFound(t *testing.T) {
	repo := newRestRepo(t, &fakeRest{status: http.StatusOK, body: `[]`})

	_, err := repo.Pages.GetByID(testCtx, uuid.New())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRest_CreateSendsOnlyInsertShape(t *testing.T) {
	fake := &fakeRest{
		status: http.StatusCreated,
		body:   `[{"id":"` + uuid.NewString() + `","name":"site_title","value_en":"Atelier","value_ar":null}]`,
	}
	repo := newRestRepo(t, fake)

	s, err := repo.Settings.Create(testCtx, models.SettingInsert{Name: "site_title", ValueEn: "Atelier"})
	require.NoError(t, err)
	assert.Equal(t, "site_title", s.Name)

	require.Len(t, fake.calls, 1)
	assert.Equal(t, http.MethodPost, fake.calls[0].method)

	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(fake.calls[0].body), &sent))
	assert.Equal(t, "site_title", sent["name"])
	assert.NotContains(t, sent, "id")
	assert.NotContains(t, sent, "created_at")
}

func TestRest_UpdateStampsUpdatedAt(t *testing.T) {
	id := uuid.New()
	fake := &fakeRest{
		status: http.StatusOK,
		body:   `[{"id":"` + id.String() + `","title":"After"}]`,
	}
	repo := newRestRepo(t, fake)

	title := "After"
	_, err := repo.Paintings.Update(testCtx, id, models.PaintingUpdate{Title: &title})
	require.NoError(t, err)

	require.Len(t, fake.calls, 2)
	assert.Equal(t, http.MethodGet, fake.calls[0].method)
	assert.Contains(t, fake.calls[0].query, "select=updated_at")

	update := fake.calls[1]
	assert.Equal(t, http.MethodPatch, update.method)

	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(update.body), &sent))
	assert.Equal(t, "After", sent["title"])
	assert.Contains(t, sent, "updated_at")
	assert.NotContains(t, sent, "year")
	assert.Contains(t, update.query, "id=eq."+id.String())
}

// rowStore keeps one painting row and applies PATCH bodies to it.
type rowStore struct {
	row map[string]any
}

func (f *rowStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPatch {
		var patch map[string]any
		_ = json.NewDecoder(r.Body).Decode(&patch)
		for k, v := range patch {
			f.row[k] = v
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode([]map[string]any{f.row})
}

func TestRest_UpdateNeverMovesUpdatedAtBack(t *testing.T) {
	id := uuid.New()
	// the store clock runs ahead of ours
	stored := time.Now().UTC().Add(time.Minute).Truncate(time.Microsecond)

	tests := []struct {
		name  string
		patch models.PaintingUpdate
	}{
		{name: "with fields", patch: models.PaintingUpdate{Title: ptr("After")}},
		{name: "empty patch", patch: models.PaintingUpdate{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &rowStore{row: map[string]any{
				"id":         id.String(),
				"title":      "Before",
				"updated_at": stored.Format(time.RFC3339Nano),
			}}
			srv := httptest.NewServer(fake)
			t.Cleanup(srv.Close)

			client, err := supabase.NewClient(srv.URL, "service-key", nil)
			require.NoError(t, err)
			repo := repository.NewSupabaseRepository(client)

			updated, err := repo.Paintings.Update(testCtx, id, tt.patch)
			require.NoError(t, err)
			assert.True(t, updated.UpdatedAt.After(stored),
				"updated_at %s must be after %s", updated.UpdatedAt, stored)
		})
	}
}

func TestRest_UpdateUnknownIsNotFound(t *testing.T) {
	fake := &fakeRest{status: http.StatusOK, body: `[]`}
	repo := newRestRepo(t, fake)

	_, err := repo.Paintings.Update(testCtx, uuid.New(), models.PaintingUpdate{})
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Len(t, fake.calls, 1, "no PATCH for a missing row")
}

func TestRest_DeleteUnknownIsNotFound(t *testing.T) {
	repo := newRestRepo(t, &fakeRest{status: http.StatusOK, body: `[]`})

	err := repo.Paintings.Delete(testCtx, uuid.New())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRest_ErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{
			name:   "duplicate key",
			status: http.StatusConflict,
			body:   `{"code":"23505","message":"duplicate key value violates unique constraint \"pages_slug_key\""}`,
			want:   storage.ErrConflict,
		},
		{
			name:   "not null",
			status: http.StatusBadRequest,
			body:   `{"code":"23502","message":"null value in column \"content_en\""}`,
			want:   storage.ErrValidationRejected,
		},
		{
			name:   "no rows",
			status: http.StatusNotAcceptable,
			body:   `{"code":"PGRST116","message":"JSON object requested, multiple (or no) rows returned"}`,
			want:   storage.ErrNotFound,
		},
		{
			name:   "bad key",
			status: http.StatusUnauthorized,
			body:   `{"code":"PGRST301","message":"JWT invalid"}`,
			want:   storage.ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newRestRepo(t, &fakeRest{status: tt.status, body: tt.body})

			_, err := repo.Pages.Create(testCtx, models.PageInsert{
				Slug: "about", TitleEn: "About", ContentEn: models.Content{},
			})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRest_CountUsesContentRange(t *testing.T) {
	fake := &fakeRest{status: http.StatusOK, body: ``, contentRange: "*/42"}
	repo := newRestRepo(t, fake)

	count, err := repo.Paintings.Count(testCtx)
	require.NoError(t, err)
	assert.Equal(t, 42, count)
	assert.Equal(t, http.MethodHead, fake.calls[0].method)
}
