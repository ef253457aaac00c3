package testsupport

import (
	"fmt"
	"testing"

	"sapling/internal/catalog"
	"sapling/internal/config"
	"sapling/internal/labels"
	"sapling/internal/logging"
)

// MustOpenStore opens (and creates) a catalog store for tests.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	store, err := catalog.Open(cfg.Paths.DatabasePath, cfg.Locale, true, logging.NewNop())
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	return store
}

// SampleModel returns a two-variant model record named name, rooted under
// assetsDir, together with its label table.
func SampleModel(name, assetsDir string) (catalog.ModelRecord, labels.Table) {
	rec := catalog.ModelRecord{
		Name:           name,
		Filepath:       fmt.Sprintf("%s/%s/%s.lbw.gz", assetsDir, name, name),
		MD5:            "0123456789abcdef0123456789abcdef",
		DefaultVariant: "Mature",
		Preview:        fmt.Sprintf("%s/%s/%s.png", assetsDir, name, name),
		Variants: map[string]catalog.VariantRecord{
			"Young": {
				Index:         0,
				Seasons:       []string{"Spring", "Summer", "Fall", "Winter"},
				DefaultSeason: "Summer",
				Preview:       "",
			},
			"Mature": {
				Index:         1,
				Seasons:       []string{"Spring", "Summer", "Fall", "Winter"},
				DefaultSeason: "Summer",
				Preview:       fmt.Sprintf("%s/%s/models/%s_Mature.png", assetsDir, name, name),
			},
		},
	}

	table := labels.Table{
		name:     {"en": name + " (common)", "de": name + " (deutsch)"},
		"Young":  {"en": "Young", "de": "Jung"},
		"Mature": {"en": "Mature", "de": "Ausgewachsen"},
		"Spring": {"en": "Spring", "de": "Frühling"},
		"Summer": {"en": "Summer", "de": "Sommer"},
		"Fall":   {"en": "Fall", "de": "Herbst"},
		"Winter": {"en": "Winter", "de": "Winter"},
	}
	return rec, table
}

// SeedModels adds count generated models to store and returns their names.
func SeedModels(t testing.TB, store *catalog.Store, assetsDir string, count int) []string {
	t.Helper()

	names := make([]string, 0, count)
	for i := 0; i < count; i++ {
		name := fmt.Sprintf("Plant %03d", i)
		rec, table := SampleModel(name, assetsDir)
		if err := store.AddModel(rec, table); err != nil {
			t.Fatalf("AddModel: %v", err)
		}
		names = append(names, name)
	}
	return names
}
