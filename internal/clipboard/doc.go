// Package clipboard watches an external clipboard and appends each new
// snapshot to a manual block file.
//
// A Source returns the raw clipboard bytes: CommandSource runs a paste
// command such as pbpaste, SystemSource uses the native clipboard. The
// Decoder turns those bytes into text, trying a preferred encoding and then
// an ordered fallback list before decoding lossily. The Watcher polls the
// source, primes itself on the first non-empty snapshot so whatever was on
// the clipboard at start is never captured, and appends every later change
// as one delimited block.
package clipboard
