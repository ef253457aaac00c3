// Package catalog persists the plant model database and serves read-side
// views of it.
//
// The database is a single human-readable JSON document with three tables:
// an info block (extractor version and schema revision), a label table
// (entity key to per-locale display strings), and a model table keyed by
// model name. The Store owns the document; views (Model, Variant, Season)
// are derived fresh on every read with labels resolved for the store's
// locale, so callers can never mutate persisted state through a view.
//
// Documents with a schema_version older than SchemaVersion are rejected on
// load. Users rebuild the database to adopt a new schema.
package catalog
