// Package fileutil holds the file writing primitives shared by the watcher
// and the subtitle emitter: lock-guarded whole-block appends and
// replace-on-success overwrites.
package fileutil
