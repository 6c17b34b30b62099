// Package timecode converts between fractional seconds and SRT timecodes.
//
// Formatting truncates to the millisecond instead of rounding so a cue never
// starts later than the element it was derived from. The hours field grows
// past two digits rather than wrapping.
package timecode
