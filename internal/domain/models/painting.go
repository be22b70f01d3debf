package models

import (
	"time"

	"github.com/google/uuid"
)

// Themes offered by the admin form. The store does not enforce them.
var Themes = []string{"Urban", "Landscape", "Portrait", "Abstract"}

// Collections are the series offered by the admin form, with their Arabic names.
var Collections = []Localized{
	{EN: "Al-Faw'aliya", AR: ptr("الفواليا")},
	{EN: "Phenomenology", AR: ptr("الظاهرة")},
	{EN: "Philological Layers", AR: ptr("الطبقات الفيلولوجية")},
}

// KnownCollection looks a series up by its English name.
func KnownCollection(en string) (Localized, bool) {
	for _, c := range Collections {
		if c.EN == en {
			return c, true
		}
	}
	return Localized{}, false
}

func ptr(s string) *string { return &s }

// Painting is an artwork record from the paintings table.
type Painting struct {
	ID            uuid.UUID `json:"id" db:"id" swaggertype:"string" format:"uuid"`
	Title         string    `json:"title" db:"title"`
	TitleAr       *string   `json:"title_ar,omitempty" db:"title_ar"`
	Year          string    `json:"year" db:"year"` // free text, may be a range like "2019-2021"
	Medium        string    `json:"medium" db:"medium"`
	MediumAr      *string   `json:"medium_ar,omitempty" db:"medium_ar"`
	Dimensions    string    `json:"dimensions" db:"dimensions"`
	Collection    string    `json:"collection" db:"collection"`
	CollectionAr  *string   `json:"collection_ar,omitempty" db:"collection_ar"`
	Theme         string    `json:"theme" db:"theme"`
	ImageURL      string    `json:"image_url" db:"image_url"`
	Description   string    `json:"description" db:"description"`
	DescriptionAr *string   `json:"description_ar,omitempty" db:"description_ar"`
	IsFeatured    bool      `json:"is_featured" db:"is_featured"`
	DisplayOrder  int       `json:"display_order" db:"display_order"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

func (p Painting) Key() uuid.UUID { return p.ID }

func (p Painting) TitlePair() Localized       { return Pair(p.Title, p.TitleAr) }
func (p Painting) MediumPair() Localized      { return Pair(p.Medium, p.MediumAr) }
func (p Painting) CollectionPair() Localized  { return Pair(p.Collection, p.CollectionAr) }
func (p Painting) DescriptionPair() Localized { return Pair(p.Description, p.DescriptionAr) }

// PaintingInsert is the shape accepted by create. Identifier and timestamps
// are assigned by the store.
type PaintingInsert struct {
	Title         string  `json:"title" validate:"required"`
	TitleAr       *string `json:"title_ar,omitempty"`
	Year          string  `json:"year"`
	Medium        string  `json:"medium"`
	MediumAr      *string `json:"medium_ar,omitempty"`
	Dimensions    string  `json:"dimensions"`
	Collection    string  `json:"collection"`
	CollectionAr  *string `json:"collection_ar,omitempty"`
	Theme         string  `json:"theme"`
	ImageURL      string  `json:"image_url"`
	Description   string  `json:"description"`
	DescriptionAr *string `json:"description_ar,omitempty"`
	IsFeatured    bool    `json:"is_featured"`
	DisplayOrder  int     `json:"display_order"`
}

func (in PaintingInsert) Fields() map[string]any {
	return map[string]any{
		"title":          in.Title,
		"title_ar":       in.TitleAr,
		"year":           in.Year,
		"medium":         in.Medium,
		"medium_ar":      in.MediumAr,
		"dimensions":     in.Dimensions,
		"collection":     in.Collection,
		"collection_ar":  in.CollectionAr,
		"theme":          in.Theme,
		"image_url":      in.ImageURL,
		"description":    in.Description,
		"description_ar": in.DescriptionAr,
		"is_featured":    in.IsFeatured,
		"display_order":  in.DisplayOrder,
	}
}

// PaintingUpdate is a partial update: nil fields are left unchanged.
type PaintingUpdate struct {
	Title         *string `json:"title,omitempty" validate:"omitnil,min=1"`
	TitleAr       *string `json:"title_ar,omitempty"`
	Year          *string `json:"year,omitempty"`
	Medium        *string `json:"medium,omitempty"`
	MediumAr      *string `json:"medium_ar,omitempty"`
	Dimensions    *string `json:"dimensions,omitempty"`
	Collection    *string `json:"collection,omitempty"`
	CollectionAr  *string `json:"collection_ar,omitempty"`
	Theme         *string `json:"theme,omitempty"`
	ImageURL      *string `json:"image_url,omitempty"`
	Description   *string `json:"description,omitempty"`
	DescriptionAr *string `json:"description_ar,omitempty"`
	IsFeatured    *bool   `json:"is_featured,omitempty"`
	DisplayOrder  *int    `json:"display_order,omitempty"`
}

func (u PaintingUpdate) Fields() map[string]any {
	f := make(map[string]any)
	setString(f, "title", u.Title)
	setString(f, "title_ar", u.TitleAr)
	setString(f, "year", u.Year)
	setString(f, "medium", u.Medium)
	setString(f, "medium_ar", u.MediumAr)
	setString(f, "dimensions", u.Dimensions)
	setString(f, "collection", u.Collection)
	setString(f, "collection_ar", u.CollectionAr)
	setString(f, "theme", u.Theme)
	setString(f, "image_url", u.ImageURL)
	setString(f, "description", u.Description)
	setString(f, "description_ar", u.DescriptionAr)
	if u.IsFeatured != nil {
		f["is_featured"] = *u.IsFeatured
	}
	if u.DisplayOrder != nil {
		f["display_order"] = *u.DisplayOrder
	}
	return f
}

func setString(f map[string]any, column string, v *string) {
	if v != nil {
		f[column] = *v
	}
}
