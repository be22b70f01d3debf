package repository

import (
	"atelier/internal/domain/models"
)

const (
	paintingsTable = "paintings"
	pagesTable     = "pages"
	settingsTable  = "gallery_settings"
)

// RowScanner is satisfied by pgx.Row and pgx.Rows.
type RowScanner interface {
	Scan(dest ...any) error
}

// Order is one ORDER BY term.
type Order struct {
	Column string
	Desc   bool
}

func (o Order) String() string {
	if o.Desc {
		return o.Column + " DESC"
	}
	return o.Column + " ASC"
}

// Schema describes how one entity is laid out in the store.
type Schema[T any] struct {
	Table   string
	Columns []string
	// OrderBy is applied to every list query.
	OrderBy []Order
	// UniqueKey is the business key enforced by the store, empty if none.
	UniqueKey string
	// Required mirrors NOT NULL columns without defaults.
	Required []string
	// Defaults mirrors column defaults for backends that cannot apply them.
	Defaults map[string]any
	Scan     func(row RowScanner) (T, error)
}

func (s Schema[T]) orderTerms() []string {
	terms := make([]string, 0, len(s.OrderBy))
	for _, o := range s.OrderBy {
		terms = append(terms, o.String())
	}
	return terms
}

// PaintingSchema orders by display_order; created_at breaks ties so equal
// ranks keep insertion order.
var PaintingSchema = Schema[models.Painting]{
	Table: paintingsTable,
	Columns: []string{
		"id", "title", "title_ar", "year", "medium", "medium_ar", "dimensions",
		"collection", "collection_ar", "theme", "image_url", "description",
		"description_ar", "is_featured", "display_order", "created_at", "updated_at",
	},
	OrderBy:  []Order{{Column: "display_order"}, {Column: "created_at"}},
	Required: []string{"title"},
	Defaults: map[string]any{
		"year":          "",
		"medium":        "",
		"dimensions":    "",
		"collection":    "",
		"theme":         "",
		"image_url":     "",
		"description":   "",
		"is_featured":   false,
		"display_order": 0,
	},
	Scan: scanPainting,
}

var PageSchema = Schema[models.Page]{
	Table: pagesTable,
	Columns: []string{
		"id", "slug", "title_en", "title_ar", "content_en", "content_ar",
		"meta_description_en", "meta_description_ar", "is_published", "created_at", "updated_at",
	},
	OrderBy:   []Order{{Column: "slug"}},
	UniqueKey: "slug",
	Required:  []string{"slug", "title_en", "content_en"},
	Defaults: map[string]any{
		"is_published": true,
	},
	Scan: scanPage,
}

var SettingSchema = Schema[models.Setting]{
	Table: settingsTable,
	Columns: []string{
		"id", "name", "value_en", "value_ar", "description", "created_at", "updated_at",
	},
	OrderBy:   []Order{{Column: "name"}},
	UniqueKey: "name",
	Required:  []string{"name", "value_en"},
	Scan:      scanSetting,
}

func scanPainting(row RowScanner) (models.Painting, error) {
	var p models.Painting
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.TitleAr,
		&p.Year,
		&p.Medium,
		&p.MediumAr,
		&p.Dimensions,
		&p.Collection,
		&p.CollectionAr,
		&p.Theme,
		&p.ImageURL,
		&p.Description,
		&p.DescriptionAr,
		&p.IsFeatured,
		&p.DisplayOrder,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func scanPage(row RowScanner) (models.Page, error) {
	var (
		p                    models.Page
		contentEn, contentAr []byte
	)
	err := row.Scan(
		&p.ID,
		&p.Slug,
		&p.TitleEn,
		&p.TitleAr,
		&contentEn,
		&contentAr,
		&p.MetaDescriptionEn,
		&p.MetaDescriptionAr,
		&p.IsPublished,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return p, err
	}

	if err := p.ContentEn.Scan(contentEn); err != nil {
		return p, err
	}
	if err := p.ContentAr.Scan(contentAr); err != nil {
		return p, err
	}

	return p, nil
}

func scanSetting(row RowScanner) (models.Setting, error) {
	var s models.Setting
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.ValueEn,
		&s.ValueAr,
		&s.Description,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}
