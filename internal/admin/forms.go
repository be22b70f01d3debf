package admin

import (
	"fmt"
	"strings"

	"atelier/internal/domain/models"
)

// required collects the names of blank inputs.
type required []string

func (r *required) check(name, value string) {
	if strings.TrimSpace(value) == "" {
		*r = append(*r, name)
	}
}

func (r required) err() error {
	if len(r) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrIncomplete, strings.Join(r, ", "))
}

// diffString sets *dst when the input differs from the stored value.
func diffString(dst **string, input, stored string) {
	if input != stored {
		v := input
		*dst = &v
	}
}

// diffOptional compares against an optional column: an untouched absent value
// shows as "" in the form and stays absent.
func diffOptional(dst **string, input string, stored *string) {
	diffString(dst, input, models.StringOrEmpty(stored))
}
