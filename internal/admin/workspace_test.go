package admin_test

import (
	"context"
	"testing"

	"atelier/internal/admin"
	"atelier/internal/domain/models"
	"atelier/internal/lib/logger/handlers/slogdiscard"
	"atelier/internal/services/probe"
	"atelier/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticProbe probe.Status

func (s staticProbe) Check(context.Context) probe.Status { return probe.Status(s) }

func newWorkspace(fx fixture, status probe.Status) *admin.Workspace {
	return admin.NewWorkspace(slogdiscard.NewDiscardLogger(), staticProbe(status), fx.paintings, fx.pages, fx.settings)
}

func TestPageEditor_InvalidJSONMidEdit(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)

	page, err := fx.repo.Pages.Create(ctx, models.PageInsert{
		Slug:      "about",
		TitleEn:   "About",
		ContentEn: models.Content{"a": float64(0)},
	})
	require.NoError(t, err)

	ed := fx.pages
	require.NoError(t, ed.StartEdit(page))

	require.NoError(t, ed.Edit(func(f *admin.PageForm) { f.ContentEn.SetText(`{"a":1}`) }))
	require.NoError(t, ed.Edit(func(f *admin.PageForm) { f.ContentEn.SetText(`{"a":1`) }))

	field := ed.Form().ContentEn
	assert.Equal(t, `{"a":1`, field.Text())
	assert.False(t, field.Valid())
	assert.ErrorIs(t, field.Err(), admin.ErrInvalidJSON)
	assert.Equal(t, models.Content{"a": float64(1)}, field.Value())

	require.NoError(t, ed.Submit(ctx))

	got, err := fx.repo.Pages.GetByID(ctx, page.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Content{"a": float64(1)}, got.ContentEn)
}

func TestPageEditor_CreateDefaults(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	ed := fx.pages

	require.NoError(t, ed.StartCreate())
	form := ed.Form()
	assert.True(t, form.IsPublished)
	assert.Equal(t, models.Content{}, form.ContentEn.Value())
	assert.Nil(t, form.ContentAr.Value())

	require.NoError(t, ed.Edit(func(f *admin.PageForm) {
		f.Slug = "contact"
		f.TitleEn = "Contact"
		f.ContentEn.SetText(`{"email":"studio@atelier.test"}`)
	}))
	require.NoError(t, ed.Submit(ctx))

	items := ed.Items()
	require.Len(t, items, 1)
	assert.True(t, items[0].IsPublished)
	assert.Nil(t, items[0].ContentAr)
	assert.Nil(t, items[0].TitleAr)
}

func TestPageEditor_DuplicateSlug(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)

	_, err := fx.repo.Pages.Create(ctx, models.PageInsert{Slug: "about", TitleEn: "About", ContentEn: models.Content{}})
	require.NoError(t, err)

	ed := fx.pages
	require.NoError(t, ed.StartCreate())
	require.NoError(t, ed.Edit(func(f *admin.PageForm) {
		f.Slug = "about"
		f.TitleEn = "Second"
	}))

	err = ed.Submit(ctx)
	assert.ErrorIs(t, err, storage.ErrConflict)
	assert.Equal(t, admin.Creating, ed.State())
	assert.Equal(t, "Second", ed.Form().TitleEn)

	all, err := fx.repo.Pages.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "About", all[0].TitleEn)
}

func TestJSONField(t *testing.T) {
	tests := []struct {
		name      string
		optional  bool
		text      string
		wantValid bool
		wantValue models.Content
	}{
		{name: "object", text: `{"k":"v"}`, wantValid: true, wantValue: models.Content{"k": "v"}},
		{name: "nested", text: `{"k":{"n":[1,2]}}`, wantValid: true, wantValue: models.Content{"k": map[string]any{"n": []any{float64(1), float64(2)}}}},
		{name: "truncated keeps previous", text: `{"k":`, wantValue: models.Content{"start": true}},
		{name: "array is not an object", text: `[1]`, wantValue: models.Content{"start": true}},
		{name: "null is rejected", text: `null`, wantValue: models.Content{"start": true}},
		{name: "blank required", text: "  ", wantValue: models.Content{"start": true}},
		{name: "blank optional", optional: true, text: "", wantValid: true, wantValue: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := admin.NewJSONField(models.Content{"start": true}, tt.optional)
			f.SetText(tt.text)

			assert.Equal(t, tt.text, f.Text())
			assert.Equal(t, tt.wantValid, f.Valid())
			assert.Equal(t, tt.wantValue, f.Value())
		})
	}
}

func TestSettingEditor_Roundtrip(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	ed := fx.settings

	require.NoError(t, ed.StartCreate())
	require.NoError(t, ed.Edit(func(f *admin.SettingForm) {
		f.Name = "hero_tagline"
		f.ValueEn = "Paintings 2015-2024"
	}))
	require.NoError(t, ed.Submit(ctx))

	items := ed.Items()
	require.Len(t, items, 1)
	assert.Nil(t, items[0].ValueAr)

	require.NoError(t, ed.StartEdit(items[0]))
	require.NoError(t, ed.Edit(func(f *admin.SettingForm) { f.ValueAr = "لوحات" }))
	require.NoError(t, ed.Submit(ctx))

	items = ed.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "لوحات", models.Resolve(items[0].ValuePair(), models.LocaleAR))
	assert.Equal(t, "Paintings 2015-2024", items[0].ValueEn)
}

func TestWorkspace_Open(t *testing.T) {
	ctx := context.Background()

	t.Run("probe failure requires setup", func(t *testing.T) {
		fx := newFixture(t)
		_, err := fx.repo.Paintings.Create(ctx, models.PaintingInsert{Title: "x"})
		require.NoError(t, err)

		ws := newWorkspace(fx, probe.StatusPlaceholder)
		err = ws.Open(ctx)
		assert.ErrorIs(t, err, admin.ErrSetupRequired)
		assert.True(t, ws.SetupRequired())
		assert.Equal(t, probe.StatusPlaceholder, ws.Status())
		assert.Empty(t, ws.Paintings.Items(), "nothing is loaded before setup")
	})

	t.Run("ok loads every tab", func(t *testing.T) {
		fx := newFixture(t)
		_, err := fx.repo.Paintings.Create(ctx, models.PaintingInsert{Title: "x"})
		require.NoError(t, err)
		_, err = fx.repo.Settings.Create(ctx, models.SettingInsert{Name: "n", ValueEn: "v"})
		require.NoError(t, err)

		ws := newWorkspace(fx, probe.StatusOK)
		require.NoError(t, ws.Open(ctx))
		assert.False(t, ws.SetupRequired())
		assert.Equal(t, admin.TabPaintings, ws.Active())
		assert.Len(t, ws.Paintings.Items(), 1)
		assert.Len(t, ws.Pages.Items(), 0)
		assert.Len(t, ws.Settings.Items(), 1)
	})
}

func TestWorkspace_SwitchTabResetsForms(t *testing.T) {
	fx := newFixture(t)
	ws := newWorkspace(fx, probe.StatusOK)

	require.NoError(t, ws.Paintings.StartCreate())
	require.NoError(t, ws.Paintings.Edit(func(f *admin.PaintingForm) { f.Title = "draft" }))
	require.NoError(t, ws.Settings.StartCreate())

	ws.SwitchTab(admin.TabPages)

	assert.Equal(t, admin.TabPages, ws.Active())
	assert.Equal(t, admin.Browsing, ws.Paintings.State())
	assert.Equal(t, "", ws.Paintings.Form().Title)
	assert.Equal(t, admin.Browsing, ws.Settings.State())
}

func TestParseTab(t *testing.T) {
	tab, err := admin.ParseTab(" Pages ")
	require.NoError(t, err)
	assert.Equal(t, admin.TabPages, tab)

	_, err = admin.ParseTab("media")
	assert.Error(t, err)
}
