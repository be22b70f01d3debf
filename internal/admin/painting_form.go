package admin

import (
	"atelier/internal/domain/models"
)

// PaintingForm mirrors the painting editor inputs. Optional Arabic inputs are
// plain strings; "" means not provided.
type PaintingForm struct {
	Title         string
	TitleAr       string
	Year          string
	Medium        string
	MediumAr      string
	Dimensions    string
	Collection    string
	CollectionAr  string
	Theme         string
	ImageURL      string
	Description   string
	DescriptionAr string
	IsFeatured    bool
	DisplayOrder  int
}

func (f *PaintingForm) Reset() {
	*f = PaintingForm{}
}

func (f *PaintingForm) Hydrate(p models.Painting) {
	*f = PaintingForm{
		Title:         p.Title,
		TitleAr:       models.StringOrEmpty(p.TitleAr),
		Year:          p.Year,
		Medium:        p.Medium,
		MediumAr:      models.StringOrEmpty(p.MediumAr),
		Dimensions:    p.Dimensions,
		Collection:    p.Collection,
		CollectionAr:  models.StringOrEmpty(p.CollectionAr),
		Theme:         p.Theme,
		ImageURL:      p.ImageURL,
		Description:   p.Description,
		DescriptionAr: models.StringOrEmpty(p.DescriptionAr),
		IsFeatured:    p.IsFeatured,
		DisplayOrder:  p.DisplayOrder,
	}
}

// SelectCollection sets the series; a known series also fills the Arabic
// name unless one was typed already.
func (f *PaintingForm) SelectCollection(en string) {
	f.Collection = en
	if c, ok := models.KnownCollection(en); ok && f.CollectionAr == "" {
		f.CollectionAr = models.StringOrEmpty(c.AR)
	}
}

func (f *PaintingForm) validate() error {
	var r required
	r.check("title", f.Title)
	r.check("year", f.Year)
	r.check("medium", f.Medium)
	r.check("dimensions", f.Dimensions)
	r.check("collection", f.Collection)
	r.check("theme", f.Theme)
	r.check("description", f.Description)
	return r.err()
}

func (f *PaintingForm) Insert() (models.PaintingInsert, error) {
	if err := f.validate(); err != nil {
		return models.PaintingInsert{}, err
	}

	return models.PaintingInsert{
		Title:         f.Title,
		TitleAr:       models.OptString(f.TitleAr),
		Year:          f.Year,
		Medium:        f.Medium,
		MediumAr:      models.OptString(f.MediumAr),
		Dimensions:    f.Dimensions,
		Collection:    f.Collection,
		CollectionAr:  models.OptString(f.CollectionAr),
		Theme:         f.Theme,
		ImageURL:      f.ImageURL,
		Description:   f.Description,
		DescriptionAr: models.OptString(f.DescriptionAr),
		IsFeatured:    f.IsFeatured,
		DisplayOrder:  f.DisplayOrder,
	}, nil
}

func (f *PaintingForm) Patch(orig models.Painting) (models.PaintingUpdate, error) {
	if err := f.validate(); err != nil {
		return models.PaintingUpdate{}, err
	}

	var u models.PaintingUpdate
	diffString(&u.Title, f.Title, orig.Title)
	diffOptional(&u.TitleAr, f.TitleAr, orig.TitleAr)
	diffString(&u.Year, f.Year, orig.Year)
	diffString(&u.Medium, f.Medium, orig.Medium)
	diffOptional(&u.MediumAr, f.MediumAr, orig.MediumAr)
	diffString(&u.Dimensions, f.Dimensions, orig.Dimensions)
	diffString(&u.Collection, f.Collection, orig.Collection)
	diffOptional(&u.CollectionAr, f.CollectionAr, orig.CollectionAr)
	diffString(&u.Theme, f.Theme, orig.Theme)
	diffString(&u.ImageURL, f.ImageURL, orig.ImageURL)
	diffString(&u.Description, f.Description, orig.Description)
	diffOptional(&u.DescriptionAr, f.DescriptionAr, orig.DescriptionAr)
	if f.IsFeatured != orig.IsFeatured {
		v := f.IsFeatured
		u.IsFeatured = &v
	}
	if f.DisplayOrder != orig.DisplayOrder {
		v := f.DisplayOrder
		u.DisplayOrder = &v
	}

	return u, nil
}
