// Package builder rebuilds the catalog database from a tree of source
// assets.
//
// A rebuild is a full replace: the store is reset to an empty document
// stamped with the extractor version, every asset under the tree is parsed
// by an isolated worker process, and results are merged one at a time as
// workers complete. Concurrency is bounded by the worker count; the
// coordinator always waits on the oldest in-flight job, which keeps merge
// order deterministic and in-flight results bounded. One bad asset costs
// only itself; the build finishes and reports succeeded/total.
package builder
