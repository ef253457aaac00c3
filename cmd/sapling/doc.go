// Package main hosts the sapling CLI entrypoint and command graph.
//
// The Cobra-based command tree covers reading the catalog database, running
// full rebuilds against an asset tree, the parse-asset worker entry point
// spawned by the build scheduler, and configuration scaffolding. It
// centralizes configuration resolution and structured logging setup so
// subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
