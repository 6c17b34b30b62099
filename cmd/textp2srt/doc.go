// Command textp2srt turns manually transcribed subtitle text into timed
// SRT files using the clip layout of an editing timeline.
//
// Text is collected into a manual file of ">"-delimited blocks, either by
// hand or with the clipboard watcher. The blocks are then paired in order
// with the subtitle clips of a named video track. Reporting commands
// (preview, diagnose, stats) show how blocks and clips line up before the
// SRT is written, and apply writes blocks back into styled-text clips.
//
// The active timeline is read from a local SQLite store populated with
// "timeline import".
package main
