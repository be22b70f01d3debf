package admin

import (
	"atelier/internal/domain/models"
)

type SettingForm struct {
	Name        string
	ValueEn     string
	ValueAr     string
	Description string
}

func (f *SettingForm) Reset() {
	*f = SettingForm{}
}

func (f *SettingForm) Hydrate(s models.Setting) {
	*f = SettingForm{
		Name:        s.Name,
		ValueEn:     s.ValueEn,
		ValueAr:     models.StringOrEmpty(s.ValueAr),
		Description: models.StringOrEmpty(s.Description),
	}
}

func (f *SettingForm) validate() error {
	var r required
	r.check("name", f.Name)
	r.check("value_en", f.ValueEn)
	return r.err()
}

func (f *SettingForm) Insert() (models.SettingInsert, error) {
	if err := f.validate(); err != nil {
		return models.SettingInsert{}, err
	}

	return models.SettingInsert{
		Name:        f.Name,
		ValueEn:     f.ValueEn,
		ValueAr:     models.OptString(f.ValueAr),
		Description: models.OptString(f.Description),
	}, nil
}

func (f *SettingForm) Patch(orig models.Setting) (models.SettingUpdate, error) {
	if err := f.validate(); err != nil {
		return models.SettingUpdate{}, err
	}

	var u models.SettingUpdate
	diffString(&u.Name, f.Name, orig.Name)
	diffString(&u.ValueEn, f.ValueEn, orig.ValueEn)
	diffOptional(&u.ValueAr, f.ValueAr, orig.ValueAr)
	diffOptional(&u.Description, f.Description, orig.Description)

	return u, nil
}
