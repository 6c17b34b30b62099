// Package timeline describes the host timeline query surface and the
// per-invocation Session that reads elements from it.
//
// The host (an editing application bridge, a SQLite store, or an in-memory
// Snapshot) exposes tracks, items, timing in frames, an optional item name,
// and an optional styled-text sub-object. Session converts frames to seconds
// and wraps every optional lookup so a failing host call degrades to an
// empty value instead of aborting the command.
package timeline
