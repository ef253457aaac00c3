package builder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/google/uuid"

	"sapling/internal/catalog"
	"sapling/internal/extractor"
	"sapling/internal/logging"
)

// assetPattern is the expected layout of an asset tree: one directory per
// plant family, one compressed asset per model.
const assetPattern = "*/*.lbw.gz"

// minWorkers applies when the CPU count cannot be determined.
const minWorkers = 4

// VersionSource reports the extractor release recorded in the rebuilt
// database's info block.
type VersionSource interface {
	Version(ctx context.Context) (extractor.Version, error)
}

// Builder rebuilds the catalog database from a directory tree of assets.
type Builder struct {
	store   *catalog.Store
	parser  extractor.Parser
	sdk     VersionSource
	logger  *slog.Logger
	workers int
}

// Option configures a Builder.
type Option func(*Builder)

// WithWorkers caps the number of simultaneous worker processes. Zero keeps
// the CPU-count default.
func WithWorkers(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.workers = n
		}
	}
}

// New constructs a Builder over the given store and parser.
func New(store *catalog.Store, parser extractor.Parser, sdk VersionSource, logger *slog.Logger, opts ...Option) (*Builder, error) {
	if store == nil || parser == nil || sdk == nil {
		return nil, errors.New("builder requires store, parser, and version source")
	}
	b := &Builder{
		store:  store,
		parser: parser,
		sdk:    sdk,
		logger: logging.NewComponentLogger(logger, "builder"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// job is one in-flight worker invocation. Its result arrives on done when
// the worker process has fully finished.
type job struct {
	id   string
	path string
	done chan jobResult
}

type jobResult struct {
	rec *extractor.Record
	err error
}

// Build replaces the entire database with records extracted from assetsDir
// and reports how many assets succeeded out of how many were found.
//
// Up to N workers run at once; completions are collected strictly in launch
// order, so the merge into the store is serialized on this goroutine and
// in-flight results occupy bounded memory. A failed asset is logged and
// skipped; it never aborts the build.
func (b *Builder) Build(ctx context.Context, assetsDir string) (succeeded, total int, err error) {
	version, err := b.sdk.Version(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("query extractor version: %w", err)
	}
	b.store.Initialize(catalog.Info{
		SDKVersion: version.String(),
		SDKMajor:   version.Major,
		SDKMinor:   version.Minor,
		SDKMicro:   version.Micro,
	})

	pending, err := enumerateAssets(assetsDir)
	if err != nil {
		return 0, 0, err
	}
	total = len(pending)

	workers := b.workerCount()
	b.logger.Info("parsing models",
		logging.Int("models", total),
		logging.Int("jobs", workers))

	var inflight []*job
	for len(pending) > 0 || len(inflight) > 0 {
		// Keep up to workers jobs running.
		for len(inflight) < workers && len(pending) > 0 {
			path := pending[0]
			pending = pending[1:]
			inflight = append(inflight, b.launch(ctx, path))
		}

		// Wait for the oldest job, never a race among all of them.
		oldest := inflight[0]
		inflight = inflight[1:]
		result := <-oldest.done

		if result.err != nil {
			b.logger.Error("failed to parse asset",
				logging.String(logging.FieldAsset, oldest.path),
				logging.String(logging.FieldJobID, oldest.id),
				logging.Error(result.err))
			continue
		}
		if err := b.store.AddModel(result.rec.Model, result.rec.Labels); err != nil {
			b.logger.Error("failed to merge record",
				logging.String(logging.FieldAsset, oldest.path),
				logging.String(logging.FieldJobID, oldest.id),
				logging.Error(err))
			continue
		}
		succeeded++
		b.logger.Info("added model",
			logging.String(logging.FieldModel, result.rec.Model.Name),
			logging.String(logging.FieldJobID, oldest.id))
	}

	if len(pending) > 0 {
		b.logger.Error("worker loop exited with assets remaining", logging.Int("remaining", len(pending)))
	}
	if len(inflight) > 0 {
		b.logger.Error("worker loop exited with jobs still running", logging.Int("remaining", len(inflight)))
	}

	if err := b.store.Save(); err != nil {
		return succeeded, total, err
	}
	b.logger.Info("build complete",
		logging.Int("succeeded", succeeded),
		logging.Int("total", total))
	return succeeded, total, nil
}

func (b *Builder) launch(ctx context.Context, path string) *job {
	j := &job{
		id:   uuid.NewString(),
		path: path,
		done: make(chan jobResult, 1),
	}
	b.logger.Debug("parsing asset",
		logging.String(logging.FieldAsset, path),
		logging.String(logging.FieldJobID, j.id))

	go func() {
		rec, err := b.parser.ParseAsset(ctx, j.path)
		j.done <- jobResult{rec: rec, err: err}
	}()
	return j
}

func (b *Builder) workerCount() int {
	if b.workers > 0 {
		return b.workers
	}
	n := runtime.NumCPU()
	if n <= 0 {
		n = minWorkers
	}
	return n
}

func enumerateAssets(assetsDir string) ([]string, error) {
	if assetsDir == "" {
		return nil, errors.New("assets directory required")
	}
	matches, err := filepath.Glob(filepath.Join(assetsDir, assetPattern))
	if err != nil {
		return nil, fmt.Errorf("scan assets: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}
