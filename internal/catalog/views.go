package catalog

import (
	"sort"

	"sapling/internal/labels"
)

// Season is a read-side view of one seasonal state.
type Season struct {
	Name  string
	Label string
}

// Variant is a read-side view of one model variant. Views are derived fresh
// from the store on each read and never alias the persisted document.
type Variant struct {
	Name    string
	Label   string
	Index   int
	Seasons []Season
	Preview string

	defaultSeason Season
}

// Season returns the named season, or the variant's default season when
// name is empty or not present.
func (v *Variant) Season(name string) Season {
	if name != "" {
		for _, s := range v.Seasons {
			if s.Name == name {
				return s
			}
		}
	}
	return v.defaultSeason
}

// Model is a read-side view of one catalog model with labels resolved for
// the store's locale.
type Model struct {
	Name     string
	Label    string
	MD5      string
	Filepath string
	Preview  string
	// Variants is ordered by variant name ascending.
	Variants []*Variant

	defaultVariant *Variant
}

// Variant returns the named variant, or the model's default variant when
// name is empty or not present.
func (m *Model) Variant(name string) *Variant {
	if name != "" {
		for _, v := range m.Variants {
			if v.Name == name {
				return v
			}
		}
	}
	return m.defaultVariant
}

func newModel(rec ModelRecord, resolver *labels.Resolver) *Model {
	model := &Model{
		Name:     rec.Name,
		Label:    resolver.Resolve(rec.Name),
		MD5:      rec.MD5,
		Filepath: rec.Filepath,
		Preview:  rec.Preview,
		Variants: make([]*Variant, 0, len(rec.Variants)),
	}

	names := make([]string, 0, len(rec.Variants))
	for name := range rec.Variants {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		variant := newVariant(name, rec.Variants[name], rec.Preview, resolver)
		model.Variants = append(model.Variants, variant)
		if name == rec.DefaultVariant {
			model.defaultVariant = variant
		}
	}
	if model.defaultVariant == nil && len(model.Variants) > 0 {
		model.defaultVariant = model.Variants[0]
	}
	return model
}

func newVariant(name string, rec VariantRecord, modelPreview string, resolver *labels.Resolver) *Variant {
	variant := &Variant{
		Name:    name,
		Label:   resolver.Resolve(name),
		Index:   rec.Index,
		Seasons: make([]Season, 0, len(rec.Seasons)),
		Preview: rec.Preview,
	}
	if variant.Preview == "" {
		variant.Preview = modelPreview
	}

	for _, season := range rec.Seasons {
		variant.Seasons = append(variant.Seasons, Season{Name: season, Label: resolver.Resolve(season)})
	}
	variant.defaultSeason = Season{Name: rec.DefaultSeason, Label: resolver.Resolve(rec.DefaultSeason)}
	return variant
}
