package dto

import (
	"time"

	"atelier/internal/domain/models"

	"github.com/google/uuid"
)

// ListQuery is the query string of the public list endpoints.
type ListQuery struct {
	Lang       string `query:"lang"`
	Collection string `query:"collection"`
	Featured   string `query:"featured" validate:"omitempty,oneof=true false"`
}

// PaintingView is a painting resolved to one locale.
type PaintingView struct {
	ID           uuid.UUID `json:"id" swaggertype:"string" format:"uuid"`
	Title        string    `json:"title"`
	Year         string    `json:"year"`
	Medium       string    `json:"medium"`
	Dimensions   string    `json:"dimensions"`
	Collection   string    `json:"collection"`
	Theme        string    `json:"theme"`
	ImageURL     string    `json:"image_url"`
	Description  string    `json:"description"`
	IsFeatured   bool      `json:"is_featured"`
	DisplayOrder int       `json:"display_order"`
}

func NewPaintingView(p models.Painting, loc models.Locale) PaintingView {
	return PaintingView{
		ID:           p.ID,
		Title:        models.Resolve(p.TitlePair(), loc),
		Year:         p.Year,
		Medium:       models.Resolve(p.MediumPair(), loc),
		Dimensions:   p.Dimensions,
		Collection:   models.Resolve(p.CollectionPair(), loc),
		Theme:        p.Theme,
		ImageURL:     p.ImageURL,
		Description:  models.Resolve(p.DescriptionPair(), loc),
		IsFeatured:   p.IsFeatured,
		DisplayOrder: p.DisplayOrder,
	}
}

func NewPaintingViews(items []models.Painting, loc models.Locale) []PaintingView {
	out := make([]PaintingView, 0, len(items))
	for _, p := range items {
		out = append(out, NewPaintingView(p, loc))
	}
	return out
}

type CollectionView struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

func NewCollectionViews(items []models.Localized, loc models.Locale) []CollectionView {
	out := make([]CollectionView, 0, len(items))
	for _, c := range items {
		out = append(out, CollectionView{Key: c.EN, Name: models.Resolve(c, loc)})
	}
	return out
}

type PageView struct {
	Slug            string         `json:"slug"`
	Title           string         `json:"title"`
	Content         models.Content `json:"content"`
	MetaDescription string         `json:"meta_description,omitempty"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func NewPageView(p models.Page, loc models.Locale) PageView {
	return PageView{
		Slug:            p.Slug,
		Title:           models.Resolve(p.TitlePair(), loc),
		Content:         p.ContentFor(loc),
		MetaDescription: models.Resolve(p.MetaDescriptionPair(), loc),
		UpdatedAt:       p.UpdatedAt,
	}
}

type SettingView struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func NewSettingView(s models.Setting, loc models.Locale) SettingView {
	return SettingView{
		Name:  s.Name,
		Value: models.Resolve(s.ValuePair(), loc),
	}
}

type StatusView struct {
	Status    string `json:"status"`
	Available bool   `json:"available"`
	Hint      string `json:"hint"`
}

type ImageUploadResponse struct {
	URL string `json:"url"`
}
