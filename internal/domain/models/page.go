package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Content is a schema-free JSON document stored per locale.
type Content map[string]any

// Value реализует интерфейс driver.Valuer для сериализации Content в JSONB
func (c Content) Value() (driver.Value, error) {
	if c == nil {
		return nil, nil
	}
	return json.Marshal(c)
}

// Scan реализует интерфейс sql.Scanner для десериализации JSONB в Content
func (c *Content) Scan(value any) error {
	if value == nil {
		*c = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("content: unsupported scan type %T", value)
	}

	if len(raw) == 0 {
		*c = nil
		return nil
	}

	return json.Unmarshal(raw, c)
}

// Page configures one static page of the site.
type Page struct {
	ID                uuid.UUID `json:"id" db:"id" swaggertype:"string" format:"uuid"`
	Slug              string    `json:"slug" db:"slug"`
	TitleEn           string    `json:"title_en" db:"title_en"`
	TitleAr           *string   `json:"title_ar,omitempty" db:"title_ar"`
	ContentEn         Content   `json:"content_en" db:"content_en"`
	ContentAr         Content   `json:"content_ar,omitempty" db:"content_ar"`
	MetaDescriptionEn *string   `json:"meta_description_en,omitempty" db:"meta_description_en"`
	MetaDescriptionAr *string   `json:"meta_description_ar,omitempty" db:"meta_description_ar"`
	IsPublished       bool      `json:"is_published" db:"is_published"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

func (p Page) Key() uuid.UUID { return p.ID }

func (p Page) TitlePair() Localized { return Pair(p.TitleEn, p.TitleAr) }

func (p Page) MetaDescriptionPair() Localized {
	return Pair(StringOrEmpty(p.MetaDescriptionEn), p.MetaDescriptionAr)
}

// ContentFor returns the document for the locale, falling back to English
// when the Arabic document is absent.
func (p Page) ContentFor(loc Locale) Content {
	if loc == LocaleAR && p.ContentAr != nil {
		return p.ContentAr
	}
	return p.ContentEn
}

type PageInsert struct {
	Slug              string  `json:"slug" validate:"required,slug"`
	TitleEn           string  `json:"title_en" validate:"required"`
	TitleAr           *string `json:"title_ar,omitempty"`
	ContentEn         Content `json:"content_en" validate:"required"`
	ContentAr         Content `json:"content_ar,omitempty"`
	MetaDescriptionEn *string `json:"meta_description_en,omitempty"`
	MetaDescriptionAr *string `json:"meta_description_ar,omitempty"`
	// IsPublished defaults to true in the store when nil.
	IsPublished *bool `json:"is_published,omitempty"`
}

func (in PageInsert) Fields() map[string]any {
	f := map[string]any{
		"slug":                in.Slug,
		"title_en":            in.TitleEn,
		"title_ar":            in.TitleAr,
		"content_en":          in.ContentEn,
		"content_ar":          in.ContentAr,
		"meta_description_en": in.MetaDescriptionEn,
		"meta_description_ar": in.MetaDescriptionAr,
	}
	if in.IsPublished != nil {
		f["is_published"] = *in.IsPublished
	}
	return f
}

type PageUpdate struct {
	Slug              *string `json:"slug,omitempty" validate:"omitnil,slug"`
	TitleEn           *string `json:"title_en,omitempty" validate:"omitnil,min=1"`
	TitleAr           *string `json:"title_ar,omitempty"`
	ContentEn         Content `json:"content_en,omitempty"`
	ContentAr         Content `json:"content_ar,omitempty"`
	MetaDescriptionEn *string `json:"meta_description_en,omitempty"`
	MetaDescriptionAr *string `json:"meta_description_ar,omitempty"`
	IsPublished       *bool   `json:"is_published,omitempty"`
}

func (u PageUpdate) Fields() map[string]any {
	f := make(map[string]any)
	setString(f, "slug", u.Slug)
	setString(f, "title_en", u.TitleEn)
	setString(f, "title_ar", u.TitleAr)
	if u.ContentEn != nil {
		f["content_en"] = u.ContentEn
	}
	if u.ContentAr != nil {
		f["content_ar"] = u.ContentAr
	}
	setString(f, "meta_description_en", u.MetaDescriptionEn)
	setString(f, "meta_description_ar", u.MetaDescriptionAr)
	if u.IsPublished != nil {
		f["is_published"] = *u.IsPublished
	}
	return f
}
