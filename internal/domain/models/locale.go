package models

import (
	"strings"

	"golang.org/x/text/language"
)

type Locale string

const (
	LocaleEN Locale = "en"
	LocaleAR Locale = "ar"
)

var (
	supportedTags = []language.Tag{language.English, language.Arabic}
	localeMatcher = language.NewMatcher(supportedTags)
)

// Localized is a locale pair: a required English value and an optional Arabic one.
// AR == nil means the Arabic value is absent, which is not the same as "".
type Localized struct {
	EN string  `json:"en"`
	AR *string `json:"ar,omitempty"`
}

// Pair builds a Localized from storage columns.
func Pair(en string, ar *string) Localized {
	return Localized{EN: en, AR: ar}
}

// Resolve picks the value for the locale, falling back to English when the
// Arabic value is absent or blank.
func Resolve(l Localized, loc Locale) string {
	if loc == LocaleAR && l.AR != nil && strings.TrimSpace(*l.AR) != "" {
		return *l.AR
	}
	return l.EN
}

// ParseLocale matches an explicit lang parameter or an Accept-Language header
// against the supported locales. Unknown input yields English.
func ParseLocale(raw string) Locale {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return LocaleEN
	}

	tags, _, err := language.ParseAcceptLanguage(raw)
	if err != nil || len(tags) == 0 {
		return LocaleEN
	}

	_, idx, conf := localeMatcher.Match(tags...)
	if conf == language.No {
		return LocaleEN
	}
	if supportedTags[idx] == language.Arabic {
		return LocaleAR
	}

	return LocaleEN
}

// OptString returns a pointer to s, or nil when s is empty. Used where an
// empty form input means "not provided".
func OptString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringOrEmpty dereferences p, treating nil as "".
func StringOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
