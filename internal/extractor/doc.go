// Package extractor is the boundary to the vendor's closed asset toolkit.
//
// The toolkit cannot be invoked twice within one process, so every asset is
// parsed by an isolated worker process. The coordinator side holds a Parser
// (the CLI type) that spawns a worker and decodes the single JSON record the
// worker prints to stdout. The worker side uses the SDK client to run the
// vendor executable against one asset and BuildRecord to assemble the
// catalog record from its raw output, the file digest, and any preview
// images found next to the asset.
//
// Anything other than one well-formed record on a worker's stdout is a
// per-asset failure; the build scheduler logs it and moves on.
package extractor
