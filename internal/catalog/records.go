package catalog

import "sapling/internal/labels"

// SchemaVersion is the current persisted document revision. Documents with
// an older version are rejected on load; there is no automatic migration.
const SchemaVersion = 2

// Info describes the extractor that produced the database and the schema
// revision of the document itself.
type Info struct {
	SDKVersion    string `json:"sdk_version"`
	SDKMajor      int    `json:"sdk_major"`
	SDKMinor      int    `json:"sdk_minor"`
	SDKMicro      int    `json:"sdk_micro"`
	SchemaVersion int    `json:"schema_version"`
}

// VariantRecord is the persisted form of one model variant.
type VariantRecord struct {
	// Index is the variant's origin order within the source asset, 0-based.
	Index int `json:"index"`
	// Seasons lists season names in origin order. Never empty.
	Seasons []string `json:"seasons"`
	// DefaultSeason names a member of Seasons.
	DefaultSeason string `json:"default_season"`
	// Preview is a path to the variant preview image, or empty when none
	// was found (readers substitute the model preview).
	Preview string `json:"preview"`
}

// ModelRecord is the persisted form of one catalog model.
type ModelRecord struct {
	Name     string `json:"name"`
	Filepath string `json:"filepath"`
	// MD5 is the hex content digest of the source asset file.
	MD5 string `json:"md5"`
	// DefaultVariant names a key of Variants.
	DefaultVariant string                   `json:"default_variant"`
	Preview        string                   `json:"preview"`
	Variants       map[string]VariantRecord `json:"variants"`
}

// document is the persisted JSON shape: a single object with info, labels,
// and models tables.
type document struct {
	Info   Info                   `json:"info"`
	Labels labels.Table           `json:"labels"`
	Models map[string]ModelRecord `json:"models"`
}

func emptyDocument(info Info) document {
	info.SchemaVersion = SchemaVersion
	return document{
		Info:   info,
		Labels: labels.Table{},
		Models: map[string]ModelRecord{},
	}
}
