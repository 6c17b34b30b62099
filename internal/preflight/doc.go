// Package preflight provides readiness checks for the filesystem paths and
// external commands textp2srt depends on.
//
// These checks run in two contexts:
//   - Commands that write files (srt, watch, timeline export) call
//     CheckOutputPath before doing any work so a bad destination fails fast.
//   - "textp2srt config validate" calls RunAll to report every check.
package preflight
