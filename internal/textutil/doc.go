// Package textutil provides the small text helpers shared by the reporting
// commands, the watcher, and the effect filter: single-line display of
// multi-line blocks, rune-safe truncation, and distinct rune counting.
package textutil
