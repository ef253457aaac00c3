package extractor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"sapling/internal/catalog"
	"sapling/internal/fileutil"
	"sapling/internal/labels"
	"sapling/internal/logging"
)

// Record is the unit a worker hands back to the coordinator: one model
// record plus the label table extracted alongside it.
type Record struct {
	Model  catalog.ModelRecord `json:"model"`
	Labels labels.Table        `json:"labels"`
}

// BuildRecord assembles a catalog record from the extractor's raw output:
// the content digest of the asset file, preview images discovered next to
// it, and the label table for the model, its variants, and seasons. Missing
// previews are logged and stored as empty paths.
func BuildRecord(raw *RawPlant, assetPath string, logger *slog.Logger) (*Record, error) {
	logger = logging.NewComponentLogger(logger, "extractor")

	if raw == nil || strings.TrimSpace(raw.Name) == "" {
		return nil, errors.New("asset has no model name")
	}
	if len(raw.Variants) == 0 {
		return nil, fmt.Errorf("asset %s has no variants", raw.Name)
	}
	if len(raw.Seasons) == 0 {
		return nil, fmt.Errorf("asset %s has no seasons", raw.Name)
	}
	if raw.DefaultVariant < 0 || raw.DefaultVariant >= len(raw.Variants) {
		return nil, fmt.Errorf("asset %s: default variant index %d out of range", raw.Name, raw.DefaultVariant)
	}
	if raw.DefaultSeason < 0 || raw.DefaultSeason >= len(raw.Seasons) {
		return nil, fmt.Errorf("asset %s: default season index %d out of range", raw.Name, raw.DefaultSeason)
	}

	md5, err := fileutil.MD5Sum(assetPath)
	if err != nil {
		return nil, fmt.Errorf("digest asset: %w", err)
	}

	preview, stem := findModelPreview(assetPath, logger)

	table := labels.Table{}
	modelLabels := map[string]string{}
	// Only the first label per locale is kept.
	for _, label := range raw.Labels {
		if _, ok := modelLabels[label.Lang]; !ok {
			modelLabels[label.Lang] = label.Text
		}
	}
	table[raw.Name] = modelLabels

	seasons := make([]string, 0, len(raw.Seasons))
	for _, season := range raw.Seasons {
		seasons = append(seasons, season.Name)
		entry := map[string]string{}
		for _, label := range season.Labels {
			entry[label.Lang] = label.Text
		}
		table[season.Name] = entry
	}
	defaultSeason := seasons[raw.DefaultSeason]

	variants := make(map[string]catalog.VariantRecord, len(raw.Variants))
	for i, option := range raw.Variants {
		variants[option.Name] = catalog.VariantRecord{
			Index:         i,
			Seasons:       append([]string(nil), seasons...),
			DefaultSeason: defaultSeason,
			Preview:       findVariantPreview(assetPath, stem, option.Name, logger),
		}
		entry := map[string]string{}
		for _, label := range option.Labels {
			entry[label.Lang] = label.Text
		}
		table[option.Name] = entry
	}

	rec := &Record{
		Model: catalog.ModelRecord{
			Name:           raw.Name,
			Filepath:       assetPath,
			MD5:            md5,
			DefaultVariant: raw.Variants[raw.DefaultVariant].Name,
			Preview:        preview,
			Variants:       variants,
		},
		Labels: table,
	}
	return rec, nil
}

// findModelPreview looks for <stem>.png beside the asset. Compound
// extensions get a second chance with the inner extension stripped as well
// (asset.lbw.gz tries asset.lbw.png, then asset.png). The stem that ends
// the search is reused for variant previews.
func findModelPreview(assetPath string, logger *slog.Logger) (string, string) {
	dir := filepath.Dir(assetPath)
	stem := strings.TrimSuffix(filepath.Base(assetPath), filepath.Ext(assetPath))

	candidate := filepath.Join(dir, stem+".png")
	if fileutil.PathExists(candidate) {
		return candidate, stem
	}

	stem = strings.TrimSuffix(stem, filepath.Ext(stem))
	candidate = filepath.Join(dir, stem+".png")
	if fileutil.PathExists(candidate) {
		return candidate, stem
	}

	logger.Warn("preview not found", logging.String("path", candidate))
	return "", stem
}

func findVariantPreview(assetPath, stem, variant string, logger *slog.Logger) string {
	candidate := filepath.Join(filepath.Dir(assetPath), "models", stem+"_"+variant+".png")
	if fileutil.PathExists(candidate) {
		return candidate
	}
	logger.Warn("preview not found", logging.String("path", candidate))
	return ""
}

// WriteRecord emits rec to w as the single JSON object workers print on
// stdout. Non-ASCII text is preserved as-is.
func WriteRecord(w io.Writer, rec *Record) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	return nil
}
