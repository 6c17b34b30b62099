package timecode

import (
	"fmt"
	"math"
)

const (
	msPerSecond = 1000
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
)

// Format renders seconds as HH:MM:SS,mmm. Input must be finite and
// non-negative.
func Format(seconds float64) string {
	total := int64(math.Floor(seconds * msPerSecond))
	hours := total / msPerHour
	minutes := (total / msPerMinute) % 60
	secs := (total / msPerSecond) % 60
	millis := total % msPerSecond
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// Range renders the "start --> end" line of an SRT cue.
func Range(start, end float64) string {
	return Format(start) + " --> " + Format(end)
}
