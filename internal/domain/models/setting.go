package models

import (
	"time"

	"github.com/google/uuid"
)

// Setting is a named bilingual value for small pieces of site copy.
type Setting struct {
	ID          uuid.UUID `json:"id" db:"id" swaggertype:"string" format:"uuid"`
	Name        string    `json:"name" db:"name"`
	ValueEn     string    `json:"value_en" db:"value_en"`
	ValueAr     *string   `json:"value_ar,omitempty" db:"value_ar"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

func (s Setting) Key() uuid.UUID { return s.ID }

func (s Setting) ValuePair() Localized { return Pair(s.ValueEn, s.ValueAr) }

type SettingInsert struct {
	Name        string  `json:"name" validate:"required,max=255"`
	ValueEn     string  `json:"value_en" validate:"required"`
	ValueAr     *string `json:"value_ar,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (in SettingInsert) Fields() map[string]any {
	return map[string]any{
		"name":        in.Name,
		"value_en":    in.ValueEn,
		"value_ar":    in.ValueAr,
		"description": in.Description,
	}
}

type SettingUpdate struct {
	Name        *string `json:"name,omitempty" validate:"omitnil,min=1,max=255"`
	ValueEn     *string `json:"value_en,omitempty" validate:"omitnil,min=1"`
	ValueAr     *string `json:"value_ar,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (u SettingUpdate) Fields() map[string]any {
	f := make(map[string]any)
	setString(f, "name", u.Name)
	setString(f, "value_en", u.ValueEn)
	setString(f, "value_ar", u.ValueAr)
	setString(f, "description", u.Description)
	return f
}
