// Package logging assembles the structured slog loggers used across sapling.
//
// It owns the console and JSON handlers, level and output plumbing, shared
// attribute keys, and a no-op logger for tests and wiring code that cannot
// fail. Log output goes to stderr (and the configured log file) so stdout
// stays free for command output and the worker wire protocol.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits records with the same shape.
package logging
