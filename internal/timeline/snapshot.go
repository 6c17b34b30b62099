package timeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Snapshot is a serializable, in-memory timeline. It backs fixtures and the
// import/export path of the SQLite store.
type Snapshot struct {
	Name      string          `json:"name" yaml:"name"`
	FrameRate float64         `json:"frame_rate" yaml:"frame_rate"`
	Tracks    []SnapshotTrack `json:"tracks" yaml:"tracks"`
}

// SnapshotTrack is one named track in a Snapshot. An empty kind means video.
type SnapshotTrack struct {
	Name  string         `json:"name" yaml:"name"`
	Kind  TrackKind      `json:"kind,omitempty" yaml:"kind,omitempty"`
	Items []SnapshotItem `json:"items" yaml:"items"`
}

// SnapshotItem is one element, timed in frames.
type SnapshotItem struct {
	Start  int64           `json:"start" yaml:"start"`
	End    int64           `json:"end" yaml:"end"`
	Name   string          `json:"name,omitempty" yaml:"name,omitempty"`
	Styled *SnapshotStyled `json:"styled,omitempty" yaml:"styled,omitempty"`
}

// SnapshotStyled is the rich-text sub-object of a SnapshotItem.
type SnapshotStyled struct {
	Text string `json:"text" yaml:"text"`
}

// SnapshotHost serves a fixed timeline. A nil Timeline means no timeline is
// active.
type SnapshotHost struct {
	Timeline Timeline
}

// Current implements Host.
func (h SnapshotHost) Current(context.Context) (Timeline, error) {
	if h.Timeline == nil {
		return nil, ErrNoTimeline
	}
	return h.Timeline, nil
}

func (t SnapshotTrack) kind() TrackKind {
	if t.Kind == "" {
		return TrackVideo
	}
	return t.Kind
}

// Timeline exposes the snapshot through the host query surface. Styled
// text writes land in the snapshot itself.
func (s *Snapshot) Timeline() Timeline {
	return snapshotTimeline{snap: s}
}

type snapshotTimeline struct {
	snap *Snapshot
}

func (t snapshotTimeline) Name() string { return t.snap.Name }

func (t snapshotTimeline) FrameRate() (float64, error) {
	if t.snap.FrameRate <= 0 {
		return 0, fmt.Errorf("snapshot %q has no frame rate", t.snap.Name)
	}
	return t.snap.FrameRate, nil
}

func (t snapshotTimeline) TrackCount(kind TrackKind) int {
	return len(t.snap.tracksOf(kind))
}

func (t snapshotTimeline) TrackName(kind TrackKind, index int) (string, error) {
	track, err := t.snap.track(kind, index)
	if err != nil {
		return "", err
	}
	return track.Name, nil
}

func (t snapshotTimeline) Items(kind TrackKind, index int) ([]Item, error) {
	track, err := t.snap.track(kind, index)
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(track.Items))
	for i := range track.Items {
		items = append(items, &snapshotItem{item: &track.Items[i]})
	}
	return items, nil
}

func (s *Snapshot) tracksOf(kind TrackKind) []*SnapshotTrack {
	var out []*SnapshotTrack
	for i := range s.Tracks {
		if s.Tracks[i].kind() == kind {
			out = append(out, &s.Tracks[i])
		}
	}
	return out
}

func (s *Snapshot) track(kind TrackKind, index int) (*SnapshotTrack, error) {
	tracks := s.tracksOf(kind)
	if index < 1 || index > len(tracks) {
		return nil, fmt.Errorf("%s track %d out of range (%d tracks)", kind, index, len(tracks))
	}
	return tracks[index-1], nil
}

type snapshotItem struct {
	item *SnapshotItem
}

func (i *snapshotItem) Start() int64 { return i.item.Start }

func (i *snapshotItem) End() int64 { return i.item.End }

func (i *snapshotItem) Name() (string, error) { return i.item.Name, nil }

func (i *snapshotItem) StyledText() (StyledText, error) {
	if i.item.Styled == nil {
		return nil, nil
	}
	return snapshotStyled{styled: i.item.Styled}, nil
}

type snapshotStyled struct {
	styled *SnapshotStyled
}

func (s snapshotStyled) Text() (string, error) { return s.styled.Text, nil }

func (s snapshotStyled) SetText(value string) error {
	s.styled.Text = value
	return nil
}

// Capture copies any Timeline into a Snapshot. Items whose optional fields
// cannot be read are captured with empty values.
func Capture(tl Timeline) (*Snapshot, error) {
	fps, err := tl.FrameRate()
	if err != nil {
		return nil, fmt.Errorf("read frame rate: %w", err)
	}
	snap := &Snapshot{Name: tl.Name(), FrameRate: fps}
	for _, kind := range []TrackKind{TrackVideo, TrackAudio} {
		for i := 1; i <= tl.TrackCount(kind); i++ {
			name, err := tl.TrackName(kind, i)
			if err != nil {
				name = ""
			}
			track := SnapshotTrack{Name: name, Kind: kind}
			items, err := tl.Items(kind, i)
			if err != nil {
				items = nil
			}
			for _, item := range items {
				captured := SnapshotItem{Start: item.Start(), End: item.End()}
				if n, err := item.Name(); err == nil {
					captured.Name = n
				}
				if styled, err := item.StyledText(); err == nil && styled != nil {
					text, _ := styled.Text()
					captured.Styled = &SnapshotStyled{Text: text}
				}
				track.Items = append(track.Items, captured)
			}
			snap.Tracks = append(snap.Tracks, track)
		}
	}
	return snap, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// LoadSnapshot reads a snapshot from a JSON or YAML file, chosen by
// extension.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snap Snapshot
	if isYAML(path) {
		err = yaml.Unmarshal(data, &snap)
	} else {
		err = json.Unmarshal(data, &snap)
	}
	if err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	return &snap, nil
}

// SaveSnapshot writes snap as JSON or YAML, chosen by extension.
func SaveSnapshot(path string, snap *Snapshot) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(snap)
	} else {
		data, err = json.MarshalIndent(snap, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Validate checks frame rate, track kinds, and item timing.
func (s *Snapshot) Validate() error {
	if s.FrameRate <= 0 {
		return fmt.Errorf("frame_rate must be positive")
	}
	for ti, track := range s.Tracks {
		switch track.kind() {
		case TrackVideo, TrackAudio:
		default:
			return fmt.Errorf("track %d: unknown kind %q", ti+1, track.Kind)
		}
		for ii, item := range track.Items {
			if item.End <= item.Start {
				return fmt.Errorf("track %q item %d: end %d must be after start %d", track.Name, ii+1, item.End, item.Start)
			}
		}
	}
	return nil
}
