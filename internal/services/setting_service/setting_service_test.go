package services

import (
	"context"
	"testing"

	"atelier/internal/domain/models"
	"atelier/internal/lib/logger/handlers/slogdiscard"
	"atelier/internal/lib/validate"
	"atelier/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingService_Value(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingService(slogdiscard.NewDiscardLogger(), repository.NewMemoryRepository().Settings, validate.New())

	ar := "معرض"
	blank := "  "
	_, err := svc.Create(ctx, models.SettingInsert{Name: "site_title", ValueEn: "Gallery", ValueAr: &ar})
	require.NoError(t, err)
	_, err = svc.Create(ctx, models.SettingInsert{Name: "tagline", ValueEn: "Paintings", ValueAr: &blank})
	require.NoError(t, err)
	_, err = svc.Create(ctx, models.SettingInsert{Name: "footer", ValueEn: "Footer"})
	require.NoError(t, err)

	tests := []struct {
		name string
		key  string
		loc  models.Locale
		want string
	}{
		{name: "english", key: "site_title", loc: models.LocaleEN, want: "Gallery"},
		{name: "arabic", key: "site_title", loc: models.LocaleAR, want: "معرض"},
		{name: "blank arabic falls back", key: "tagline", loc: models.LocaleAR, want: "Paintings"},
		{name: "absent arabic falls back", key: "footer", loc: models.LocaleAR, want: "Footer"},
		{name: "missing setting uses fallback", key: "nope", loc: models.LocaleAR, want: "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Value(ctx, tt.key, tt.loc, "default")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	footer, err := svc.GetByName(ctx, "footer")
	require.NoError(t, err)
	require.NotNil(t, footer)
	assert.Nil(t, footer.ValueAr, "absent stays absent")

	tagline, err := svc.GetByName(ctx, "tagline")
	require.NoError(t, err)
	require.NotNil(t, tagline.ValueAr, "blank stays blank, not absent")
	assert.Equal(t, "  ", *tagline.ValueAr)
}
