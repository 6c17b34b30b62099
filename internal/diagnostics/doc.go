// Package diagnostics builds the preview, diagnose, and stats reports. It
// reuses the filter partition and never feeds the subtitle emitter.
package diagnostics
