// Package logging assembles structured slog loggers and formatting helpers
// used across textp2srt commands.
//
// It owns the configurable console/JSON handlers, centralizes level and
// output plumbing, and tags every record with the invocation id of the
// command that produced it. The package also provides a no-op logger for
// tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits records with the same shape.
package logging
