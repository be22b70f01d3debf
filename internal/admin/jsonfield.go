package admin

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"atelier/internal/domain/models"
)

var ErrInvalidJSON = errors.New("content must be a JSON object")

// JSONField is a text input holding a JSON document. The buffer always shows
// what was typed; Value is the last text that parsed as an object. An
// optional field treats blank text as absent (nil).
type JSONField struct {
	text     string
	value    models.Content
	err      error
	optional bool
}

func NewJSONField(value models.Content, optional bool) JSONField {
	f := JSONField{optional: optional}
	f.Reset(value)
	return f
}

// Reset replaces both the buffer and the value.
func (f *JSONField) Reset(value models.Content) {
	f.value = value
	f.err = nil
	f.text = ""
	if value != nil {
		raw, _ := json.MarshalIndent(value, "", "  ")
		f.text = string(raw)
	}
}

// SetText updates the buffer and, when it parses, the value. A parse failure
// keeps the previous value and is reported by Err.
func (f *JSONField) SetText(text string) {
	f.text = text

	if strings.TrimSpace(text) == "" {
		if f.optional {
			f.value = nil
			f.err = nil
			return
		}
		f.err = fmt.Errorf("%w: empty", ErrInvalidJSON)
		return
	}

	var parsed models.Content
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		f.err = fmt.Errorf("%w: %w", ErrInvalidJSON, err)
		return
	}
	if parsed == nil {
		f.err = fmt.Errorf("%w: got null", ErrInvalidJSON)
		return
	}

	f.value = parsed
	f.err = nil
}

func (f *JSONField) Text() string { return f.text }

// Value is the last valid document; this is what gets submitted.
func (f *JSONField) Value() models.Content { return f.value }

func (f *JSONField) Valid() bool { return f.err == nil }

func (f *JSONField) Err() error { return f.err }
