package catalog

import "errors"

var (
	// ErrNotFound reports that the database file does not exist and
	// creation was not requested.
	ErrNotFound = errors.New("catalog database not found")

	// ErrStaleSchema reports a persisted schema_version older than the
	// current SchemaVersion. There is no migration; callers decide whether
	// to rebuild.
	ErrStaleSchema = errors.New("catalog schema out of date")

	// ErrCorrupt reports that the persisted bytes are not a well-formed
	// document.
	ErrCorrupt = errors.New("catalog database corrupt")
)
