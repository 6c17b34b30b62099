package timeline

import (
	"context"
	"errors"
)

// ErrNoTimeline reports that the host has no active timeline.
var ErrNoTimeline = errors.New("no active timeline")

// TrackKind selects a track family on the host.
type TrackKind string

const (
	TrackVideo TrackKind = "video"
	TrackAudio TrackKind = "audio"
)

// Host provides access to the currently active timeline.
type Host interface {
	Current(ctx context.Context) (Timeline, error)
}

// Timeline is the host query surface for a single timeline. Track indexes
// are 1-based.
type Timeline interface {
	Name() string
	FrameRate() (float64, error)
	TrackCount(kind TrackKind) int
	TrackName(kind TrackKind, index int) (string, error)
	Items(kind TrackKind, index int) ([]Item, error)
}

// Item is a single element on a track. Start and End are frame positions.
type Item interface {
	Start() int64
	End() int64
	Name() (string, error)
	// StyledText returns nil, nil when the item carries no rich-text
	// sub-object.
	StyledText() (StyledText, error)
}

// StyledText is the settable rich-text property attached to an item.
type StyledText interface {
	Text() (string, error)
	SetText(value string) error
}
