package labels_test

import (
	"testing"

	"sapling/internal/labels"
)

func sampleTable() labels.Table {
	return labels.Table{
		"Acer campestre": {
			"en-US": "Field Maple US",
			"en":    "Field Maple",
			"de":    "Feldahorn",
		},
		"Winter": {
			"en": "Winter",
			"de": "Winter",
		},
	}
}

func TestResolveExactLocale(t *testing.T) {
	table := sampleTable()
	if got := table.Resolve("Acer campestre", "en-US"); got != "Field Maple US" {
		t.Fatalf("unexpected label: %q", got)
	}
}

func TestResolveFallsBackToPrimarySubtag(t *testing.T) {
	table := sampleTable()
	if got := table.Resolve("Acer campestre", "en-GB"); got != "Field Maple" {
		t.Fatalf("expected primary-subtag fallback, got %q", got)
	}
}

func TestResolveUnderscoreLocale(t *testing.T) {
	table := sampleTable()
	if got := table.Resolve("Acer campestre", "en_US"); got != "Field Maple US" {
		t.Fatalf("expected underscore normalization, got %q", got)
	}
}

func TestResolveUnknownLocaleReturnsKey(t *testing.T) {
	table := sampleTable()
	if got := table.Resolve("Acer campestre", "fr"); got != "Acer campestre" {
		t.Fatalf("expected key fallback, got %q", got)
	}
}

func TestResolveUnknownKeyReturnsKey(t *testing.T) {
	table := sampleTable()
	if got := table.Resolve("Quercus robur", "en"); got != "Quercus robur" {
		t.Fatalf("expected key fallback, got %q", got)
	}
}

func TestResolveNeverEmpty(t *testing.T) {
	table := sampleTable()
	cases := []struct{ key, locale string }{
		{"Acer campestre", ""},
		{"", "en"},
		{"Winter", "zz-XX"},
		{"missing", "missing"},
	}
	for _, tc := range cases {
		if got := table.Resolve(tc.key, tc.locale); got != tc.key && got == "" {
			t.Fatalf("Resolve(%q, %q) returned empty string", tc.key, tc.locale)
		}
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"en_US", "en-US"},
		{"en-us", "en-US"},
		{"de", "de"},
		{"", ""},
		{"not a locale", "not a locale"},
	}
	for _, tc := range cases {
		if got := labels.Normalize(tc.in); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPrimary(t *testing.T) {
	if got := labels.Primary("en-US"); got != "en" {
		t.Fatalf("Primary(en-US) = %q", got)
	}
	if got := labels.Primary("de"); got != "de" {
		t.Fatalf("Primary(de) = %q", got)
	}
}

func TestMergeAddsAndOverwrites(t *testing.T) {
	table := labels.Table{
		"Winter": {"en": "Winter"},
	}
	table.Merge(labels.Table{
		"Winter": {"en": "Wintertime", "de": "Winter"},
		"Summer": {"en": "Summer"},
	})

	if got := table.Resolve("Winter", "en"); got != "Wintertime" {
		t.Fatalf("expected merge to overwrite, got %q", got)
	}
	if got := table.Resolve("Winter", "de"); got != "Winter" {
		t.Fatalf("expected merge to add locale, got %q", got)
	}
	if got := table.Resolve("Summer", "en"); got != "Summer" {
		t.Fatalf("expected merge to add key, got %q", got)
	}
}

func TestResolverDefaultLocale(t *testing.T) {
	resolver := labels.NewResolver(sampleTable(), "de_DE")
	if got := resolver.Locale(); got != "de-DE" {
		t.Fatalf("unexpected resolver locale: %q", got)
	}
	if got := resolver.Resolve("Acer campestre"); got != "Feldahorn" {
		t.Fatalf("unexpected default-locale label: %q", got)
	}
	if got := resolver.ResolveIn("Acer campestre", "en"); got != "Field Maple" {
		t.Fatalf("unexpected explicit-locale label: %q", got)
	}
}
