package catalog_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"sapling/internal/catalog"
	"sapling/internal/labels"
	"sapling/internal/logging"
	"sapling/internal/testsupport"
)

func TestOpenMissingWithoutCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	_, err := catalog.Open(path, "en-US", false, logging.NewNop())
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOpenMissingWithCreateInitializes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	store, err := catalog.Open(path, "en-US", true, logging.NewNop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if store.ModelCount() != 0 {
		t.Fatalf("expected empty store, got %d models", store.ModelCount())
	}
	if store.Info().SchemaVersion != catalog.SchemaVersion {
		t.Fatalf("expected current schema version, got %d", store.Info().SchemaVersion)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected database file to be persisted: %v", err)
	}
}

func TestOpenRejectsStaleSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	stale := `{"info": {"schema_version": 1}, "labels": {}, "models": {}}`
	if err := os.WriteFile(path, []byte(stale), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := catalog.Open(path, "en-US", false, logging.NewNop())
	if !errors.Is(err, catalog.ErrStaleSchema) {
		t.Fatalf("expected ErrStaleSchema, got %v", err)
	}
}

func TestOpenRejectsCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := catalog.Open(path, "en-US", false, logging.NewNop())
	if !errors.Is(err, catalog.ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	store.Initialize(catalog.Info{SDKVersion: "1.0.28", SDKMajor: 1, SDKMinor: 0, SDKMicro: 28})
	rec, table := testsupport.SampleModel("Acer campestre", cfg.Paths.AssetsDir)
	if err := store.AddModel(rec, table); err != nil {
		t.Fatalf("AddModel: %v", err)
	}
	if err := store.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reopened, err := catalog.Open(cfg.Paths.DatabasePath, cfg.Locale, false, logging.NewNop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if !reflect.DeepEqual(reopened.Info(), store.Info()) {
		t.Fatalf("info mismatch: %#v vs %#v", reopened.Info(), store.Info())
	}
	if reopened.ModelCount() != 1 {
		t.Fatalf("expected 1 model after reload, got %d", reopened.ModelCount())
	}
	model := reopened.GetModel("", "Acer campestre")
	if model == nil {
		t.Fatal("expected model after reload")
	}
	if model.MD5 != rec.MD5 || model.Filepath != rec.Filepath {
		t.Fatalf("record fields did not round-trip: %#v", model)
	}
}

func TestSavePreservesNonASCII(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Locale = "de"
	store := testsupport.MustOpenStore(t, cfg)

	rec, table := testsupport.SampleModel("Acer campestre", cfg.Paths.AssetsDir)
	if err := store.AddModel(rec, table); err != nil {
		t.Fatalf("AddModel: %v", err)
	}
	if err := store.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(cfg.Paths.DatabasePath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Frühling") {
		t.Fatal("expected non-ASCII label to be stored unescaped")
	}
	if !json.Valid(data) {
		t.Fatal("expected persisted document to be valid JSON")
	}

	reopened, err := catalog.Open(cfg.Paths.DatabasePath, "de", false, logging.NewNop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	model := reopened.GetModel("", "Acer campestre")
	if model == nil {
		t.Fatal("expected model after reload")
	}
	if got := model.Variant("").Season("Spring").Label; got != "Frühling" {
		t.Fatalf("unexpected label after reload: %q", got)
	}
}

func TestGetModelByNameAndFilepath(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	rec, table := testsupport.SampleModel("Acer campestre", cfg.Paths.AssetsDir)
	if err := store.AddModel(rec, table); err != nil {
		t.Fatalf("AddModel: %v", err)
	}

	if model := store.GetModel("", "Acer campestre"); model == nil {
		t.Fatal("expected lookup by name to succeed")
	}
	if model := store.GetModel(rec.Filepath, ""); model == nil || model.Name != "Acer campestre" {
		t.Fatalf("expected lookup by filepath to succeed, got %#v", model)
	}
	// Unknown name falls through to filepath scan.
	if model := store.GetModel(rec.Filepath, "Quercus robur"); model == nil || model.Name != "Acer campestre" {
		t.Fatalf("expected filepath fallback, got %#v", model)
	}
	if model := store.GetModel("/no/such/file", "Quercus robur"); model != nil {
		t.Fatalf("expected nil for unknown model, got %#v", model)
	}
}

func TestAddModelOverwritesAndMergesLabels(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	rec, table := testsupport.SampleModel("Acer campestre", cfg.Paths.AssetsDir)
	if err := store.AddModel(rec, table); err != nil {
		t.Fatalf("AddModel: %v", err)
	}

	updated := rec
	updated.MD5 = "ffffffffffffffffffffffffffffffff"
	if err := store.AddModel(updated, labels.Table{
		"Acer campestre": {"en": "Field Maple", "fr": "Érable champêtre"},
	}); err != nil {
		t.Fatalf("AddModel: %v", err)
	}

	if store.ModelCount() != 1 {
		t.Fatalf("expected overwrite to keep one entry, got %d", store.ModelCount())
	}
	model := store.GetModel("", "Acer campestre")
	if model.MD5 != updated.MD5 {
		t.Fatalf("expected overwritten digest, got %q", model.MD5)
	}
	if got := model.Label; got != "Field Maple" {
		t.Fatalf("expected merged label to win, got %q", got)
	}
}

func TestAddModelRejectsUnnamedRecord(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	if err := store.AddModel(catalog.ModelRecord{}, nil); err == nil {
		t.Fatal("expected error for unnamed record")
	}
}

func TestModelsEnumerationSortedAndRestartable(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	// Insert out of order.
	for _, name := range []string{"Quercus robur", "Acer campestre", "Pinus sylvestris"} {
		rec, table := testsupport.SampleModel(name, cfg.Paths.AssetsDir)
		if err := store.AddModel(rec, table); err != nil {
			t.Fatalf("AddModel: %v", err)
		}
	}

	want := []string{"Acer campestre", "Pinus sylvestris", "Quercus robur"}
	for pass := 0; pass < 2; pass++ {
		var got []string
		for model := range store.Models() {
			got = append(got, model.Name)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("pass %d: unexpected order %v", pass, got)
		}
	}
}

func TestModelsEnumerationEarlyStop(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.SeedModels(t, store, cfg.Paths.AssetsDir, 5)

	count := 0
	for range store.Models() {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Fatalf("expected early termination after 2 models, got %d", count)
	}
}
