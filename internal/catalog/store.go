package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"sort"

	"github.com/gofrs/flock"

	"sapling/internal/fileutil"
	"sapling/internal/labels"
	"sapling/internal/logging"
)

// Store owns the persisted catalog document and is the only mutation point
// for it. It is not safe for concurrent use; builds mutate it from a single
// coordinating goroutine.
type Store struct {
	path   string
	locale string
	logger *slog.Logger
	lock   *flock.Flock
	doc    document
}

// Open loads the catalog database at path. When the file is missing and
// create is true, an empty document is initialized and persisted; when
// create is false the call fails with ErrNotFound. A document with an older
// schema_version fails with ErrStaleSchema, and unparseable bytes fail with
// ErrCorrupt.
func Open(path, locale string, create bool, logger *slog.Logger) (*Store, error) {
	logger = logging.NewComponentLogger(logger, "catalog")

	store := &Store{
		path:   path,
		locale: labels.Normalize(locale),
		logger: logger,
		lock:   flock.New(path + ".lock"),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if !create {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
			}
			store.Initialize(Info{})
			if err := store.Save(); err != nil {
				return nil, err
			}
			return store, nil
		}
		return nil, fmt.Errorf("read database: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		logger.Error("failed to decode database", logging.String("path", path), logging.Error(err))
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}
	if doc.Info.SchemaVersion < SchemaVersion {
		logger.Warn("database schema out of date",
			logging.String("path", path),
			logging.Int("schema_version", doc.Info.SchemaVersion),
			logging.Int("current_version", SchemaVersion))
		return nil, fmt.Errorf("%w: version %d, current %d", ErrStaleSchema, doc.Info.SchemaVersion, SchemaVersion)
	}
	if doc.Labels == nil {
		doc.Labels = labels.Table{}
	}
	if doc.Models == nil {
		doc.Models = map[string]ModelRecord{}
	}
	store.doc = doc
	return store, nil
}

// Initialize resets the store to an empty document carrying info. The
// schema version is always stamped with the current constant.
func (s *Store) Initialize(info Info) {
	s.doc = emptyDocument(info)
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Locale returns the normalized read locale.
func (s *Store) Locale() string {
	return s.locale
}

// Info returns the document info block.
func (s *Store) Info() Info {
	return s.doc.Info
}

// Save serializes the document to its path as indented UTF-8 JSON. The
// write is atomic and guarded by a file lock so two processes cannot
// interleave writes to the same database.
func (s *Store) Save() error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(s.doc); err != nil {
		return fmt.Errorf("encode database: %w", err)
	}

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock database: %w", err)
	}
	defer func() {
		_ = s.lock.Unlock()
	}()

	if err := fileutil.WriteFileAtomic(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write database: %w", err)
	}
	return nil
}

// AddModel inserts or overwrites the model keyed by its name and merges the
// associated labels into the label table.
func (s *Store) AddModel(rec ModelRecord, lbls labels.Table) error {
	if rec.Name == "" {
		return errors.New("model record has no name")
	}
	s.doc.Models[rec.Name] = rec
	s.doc.Labels.Merge(lbls)
	return nil
}

// ModelCount returns the number of models in the document.
func (s *Store) ModelCount() int {
	return len(s.doc.Models)
}

// GetModel resolves a model by name when name is given and present,
// otherwise by scanning for a matching filepath. It returns nil when
// neither matches.
func (s *Store) GetModel(filepath, name string) *Model {
	if name != "" {
		if _, ok := s.doc.Models[name]; !ok {
			name = ""
		}
	}

	if name == "" && filepath != "" {
		for candidate, rec := range s.doc.Models {
			if rec.Filepath == filepath {
				name = candidate
				break
			}
		}
	}

	if name == "" {
		return nil
	}
	rec := s.doc.Models[name]
	return newModel(rec, s.resolver())
}

// Models returns a lazy sequence of model views sorted by name ascending.
// Each range starts an independent pass over the current document.
func (s *Store) Models() iter.Seq[*Model] {
	return func(yield func(*Model) bool) {
		names := make([]string, 0, len(s.doc.Models))
		for name := range s.doc.Models {
			names = append(names, name)
		}
		sort.Strings(names)

		resolver := s.resolver()
		for _, name := range names {
			if !yield(newModel(s.doc.Models[name], resolver)) {
				return
			}
		}
	}
}

func (s *Store) resolver() *labels.Resolver {
	return labels.NewResolver(s.doc.Labels, s.locale)
}
