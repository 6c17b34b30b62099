// Package srt writes paired entries as SubRip subtitle files.
package srt
