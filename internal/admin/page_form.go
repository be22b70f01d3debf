package admin

import (
	"reflect"

	"atelier/internal/domain/models"
)

type PageForm struct {
	Slug              string
	TitleEn           string
	TitleAr           string
	ContentEn         JSONField
	ContentAr         JSONField
	MetaDescriptionEn string
	MetaDescriptionAr string
	IsPublished       bool
}

func (f *PageForm) Reset() {
	*f = PageForm{
		ContentEn:   NewJSONField(models.Content{}, false),
		ContentAr:   NewJSONField(nil, true),
		IsPublished: true,
	}
}

func (f *PageForm) Hydrate(p models.Page) {
	*f = PageForm{
		Slug:              p.Slug,
		TitleEn:           p.TitleEn,
		TitleAr:           models.StringOrEmpty(p.TitleAr),
		ContentEn:         NewJSONField(p.ContentEn, false),
		ContentAr:         NewJSONField(p.ContentAr, true),
		MetaDescriptionEn: models.StringOrEmpty(p.MetaDescriptionEn),
		MetaDescriptionAr: models.StringOrEmpty(p.MetaDescriptionAr),
		IsPublished:       p.IsPublished,
	}
}

func (f *PageForm) validate() error {
	var r required
	r.check("slug", f.Slug)
	r.check("title_en", f.TitleEn)
	if f.ContentEn.Value() == nil {
		r = append(r, "content_en")
	}
	return r.err()
}

// Insert submits the last valid JSON documents, whatever the text buffers
// currently hold.
func (f *PageForm) Insert() (models.PageInsert, error) {
	if err := f.validate(); err != nil {
		return models.PageInsert{}, err
	}

	published := f.IsPublished

	return models.PageInsert{
		Slug:              f.Slug,
		TitleEn:           f.TitleEn,
		TitleAr:           models.OptString(f.TitleAr),
		ContentEn:         f.ContentEn.Value(),
		ContentAr:         f.ContentAr.Value(),
		MetaDescriptionEn: models.OptString(f.MetaDescriptionEn),
		MetaDescriptionAr: models.OptString(f.MetaDescriptionAr),
		IsPublished:       &published,
	}, nil
}

func (f *PageForm) Patch(orig models.Page) (models.PageUpdate, error) {
	if err := f.validate(); err != nil {
		return models.PageUpdate{}, err
	}

	var u models.PageUpdate
	diffString(&u.Slug, f.Slug, orig.Slug)
	diffString(&u.TitleEn, f.TitleEn, orig.TitleEn)
	diffOptional(&u.TitleAr, f.TitleAr, orig.TitleAr)
	diffOptional(&u.MetaDescriptionEn, f.MetaDescriptionEn, orig.MetaDescriptionEn)
	diffOptional(&u.MetaDescriptionAr, f.MetaDescriptionAr, orig.MetaDescriptionAr)

	if v := f.ContentEn.Value(); !reflect.DeepEqual(v, orig.ContentEn) {
		u.ContentEn = v
	}
	// a cleared Arabic document cannot be sent as a patch; it stays stored
	if v := f.ContentAr.Value(); v != nil && !reflect.DeepEqual(v, orig.ContentAr) {
		u.ContentAr = v
	}

	if f.IsPublished != orig.IsPublished {
		v := f.IsPublished
		u.IsPublished = &v
	}

	return u, nil
}
