// Package timelinedb persists timelines in SQLite and serves them as the
// timeline host for every track command.
//
// Timelines arrive through Import (usually from a JSON or YAML snapshot
// exported by the editor) and exactly one of them is marked current. Current
// returns that timeline through the timeline.Timeline interfaces so the
// session, filter, and pairing layers never see SQL. Styled-text write-back
// from the apply command updates the stored items in place.
package timelinedb
