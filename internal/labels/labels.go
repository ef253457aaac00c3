// Package labels stores per-locale display strings for catalog entities and
// resolves the best match for a requested locale.
//
// Keys are entity names (model, variant, or season). Lookup falls back from
// the exact locale tag to its primary language subtag, and finally to the key
// itself, so resolution never fails and never returns an empty string.
package labels

import (
	"strings"

	"golang.org/x/text/language"
)

// Table maps an entity key to its locale-tagged display strings.
type Table map[string]map[string]string

// Normalize converts a locale identifier to the language[-REGION] form used
// as table keys. Underscore separators are accepted and rewritten; tags that
// parse as BCP 47 are canonicalized.
func Normalize(locale string) string {
	normalized := strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
	if normalized == "" {
		return normalized
	}
	if tag, err := language.Parse(normalized); err == nil {
		return tag.String()
	}
	return normalized
}

// Primary returns the language subtag of a normalized locale: the portion
// before the first hyphen, or the whole string when there is none.
func Primary(locale string) string {
	if idx := strings.IndexByte(locale, '-'); idx >= 0 {
		return locale[:idx]
	}
	return locale
}

// Resolve returns the display string for key in the requested locale. It
// tries the exact normalized locale, then the primary language subtag, and
// returns the key itself when no entry matches.
func (t Table) Resolve(key, locale string) string {
	entries, ok := t[key]
	if !ok {
		return key
	}
	normalized := Normalize(locale)
	if text, ok := entries[normalized]; ok {
		return text
	}
	if text, ok := entries[Primary(normalized)]; ok {
		return text
	}
	return key
}

// Merge folds other into t as a shallow per-key union: locales missing from
// t are added and existing (key, locale) pairs are overwritten.
func (t Table) Merge(other Table) {
	for key, entries := range other {
		existing, ok := t[key]
		if !ok {
			existing = make(map[string]string, len(entries))
			t[key] = existing
		}
		for locale, text := range entries {
			existing[locale] = text
		}
	}
}

// Resolver binds a Table to a default locale for read-side lookups.
type Resolver struct {
	table  Table
	locale string
}

// NewResolver normalizes locale once and returns a resolver over table.
func NewResolver(table Table, locale string) *Resolver {
	return &Resolver{table: table, locale: Normalize(locale)}
}

// Locale returns the resolver's normalized default locale.
func (r *Resolver) Locale() string {
	return r.locale
}

// Resolve looks up key in the resolver's default locale.
func (r *Resolver) Resolve(key string) string {
	return r.table.Resolve(key, r.locale)
}

// ResolveIn looks up key in an explicit locale instead of the default.
func (r *Resolver) ResolveIn(key, locale string) string {
	return r.table.Resolve(key, locale)
}
