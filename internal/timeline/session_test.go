package timeline

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"textp2srt/internal/logging"
)

func sampleSnapshot() *Snapshot {
	return &Snapshot{
		Name:      "Main",
		FrameRate: 25,
		Tracks: []SnapshotTrack{
			{Name: "Subs", Items: []SnapshotItem{
				{Start: 0, End: 50, Name: "Text"},
				{Start: 50, End: 125, Name: "Title", Styled: &SnapshotStyled{Text: "Hello"}},
			}},
			{Name: "B-Roll", Items: []SnapshotItem{{Start: 0, End: 500, Name: "clip.mov"}}},
			{Name: "Subs", Items: []SnapshotItem{{Start: 200, End: 250, Name: "Text"}}},
			{Name: "Music", Kind: TrackAudio, Items: []SnapshotItem{{Start: 0, End: 1000}}},
		},
	}
}

func openSession(t *testing.T, tl Timeline) *Session {
	t.Helper()
	s, err := Open(context.Background(), SnapshotHost{Timeline: tl}, logging.NewNop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func TestOpenWithoutTimeline(t *testing.T) {
	_, err := Open(context.Background(), SnapshotHost{}, logging.NewNop())
	if !errors.Is(err, ErrNoTimeline) {
		t.Fatalf("expected ErrNoTimeline, got %v", err)
	}
}

func TestOpenRejectsZeroFrameRate(t *testing.T) {
	snap := sampleSnapshot()
	snap.FrameRate = 0
	if _, err := Open(context.Background(), SnapshotHost{Timeline: snap.Timeline()}, logging.NewNop()); err == nil {
		t.Fatal("expected frame rate error")
	}
}

func TestSessionTrackNames(t *testing.T) {
	s := openSession(t, sampleSnapshot().Timeline())
	names := s.TrackNames(TrackVideo)
	want := []string{"Subs", "B-Roll", "Subs"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}

func TestSessionElementsSpansSameNamedTracks(t *testing.T) {
	s := openSession(t, sampleSnapshot().Timeline())
	elems := s.Elements("Subs", true)
	if len(elems) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(elems))
	}
	if elems[0].Start != 0 || elems[0].End != 2 {
		t.Fatalf("expected first element 0-2s, got %v-%v", elems[0].Start, elems[0].End)
	}
	if elems[1].Kind != KindStyledText || elems[1].SourceText != "Hello" {
		t.Fatalf("expected styled element with text, got %+v", elems[1])
	}
	if elems[2].Track != 3 || elems[2].Index != 2 {
		t.Fatalf("expected third element from track 3 index 2, got track %d index %d", elems[2].Track, elems[2].Index)
	}
	if elems[1].Duration() != 3 {
		t.Fatalf("expected duration 3, got %v", elems[1].Duration())
	}
}

func TestSessionElementsWithoutText(t *testing.T) {
	s := openSession(t, sampleSnapshot().Timeline())
	elems := s.Elements("Subs", false)
	if elems[1].Kind != KindStyledText {
		t.Fatalf("expected styled kind without text retrieval")
	}
	if elems[1].SourceText != "" {
		t.Fatalf("expected no source text, got %q", elems[1].SourceText)
	}
}

func TestSessionUnknownTrackYieldsNothing(t *testing.T) {
	s := openSession(t, sampleSnapshot().Timeline())
	if elems := s.Elements("Nope", true); len(elems) != 0 {
		t.Fatalf("expected no elements, got %d", len(elems))
	}
}

func TestSessionSetStyledText(t *testing.T) {
	snap := sampleSnapshot()
	s := openSession(t, snap.Timeline())
	elems := s.Elements("Subs", false)
	if err := s.SetStyledText(elems[1], "Updated"); err != nil {
		t.Fatalf("SetStyledText: %v", err)
	}
	if got := snap.Tracks[0].Items[1].Styled.Text; got != "Updated" {
		t.Fatalf("expected snapshot updated, got %q", got)
	}
	if err := s.SetStyledText(elems[0], "x"); err == nil {
		t.Fatal("expected error for plain element")
	}
}

type flakyTimeline struct{}

func (flakyTimeline) Name() string                { return "flaky" }
func (flakyTimeline) FrameRate() (float64, error) { return 10, nil }
func (flakyTimeline) TrackCount(TrackKind) int    { return 1 }
func (flakyTimeline) TrackName(TrackKind, int) (string, error) {
	return "Subs", nil
}
func (flakyTimeline) Items(TrackKind, int) ([]Item, error) {
	return []Item{flakyItem{styled: true}, flakyItem{}}, nil
}

type flakyItem struct{ styled bool }

func (flakyItem) Start() int64 { return 0 }
func (flakyItem) End() int64   { return 10 }
func (flakyItem) Name() (string, error) {
	return "", errors.New("name unavailable")
}
func (i flakyItem) StyledText() (StyledText, error) {
	if i.styled {
		return flakyStyled{}, nil
	}
	return nil, errors.New("comp lookup failed")
}

type flakyStyled struct{}

func (flakyStyled) Text() (string, error) { return "", errors.New("tool missing") }
func (flakyStyled) SetText(string) error  { return errors.New("tool missing") }

func TestSessionDegradesFailingLookups(t *testing.T) {
	s := openSession(t, flakyTimeline{})
	elems := s.Elements("Subs", true)
	if len(elems) != 2 {
		t.Fatalf("expected both elements kept despite failures, got %d", len(elems))
	}
	if elems[0].Name != "" || elems[0].Kind != KindStyledText || elems[0].SourceText != "" {
		t.Fatalf("unexpected first element %+v", elems[0])
	}
	if elems[1].Kind != KindPlainText {
		t.Fatalf("expected failed comp lookup to read as plain, got %v", elems[1].Kind)
	}
	if s.Failures() != 4 {
		t.Fatalf("expected 4 degraded lookups, got %d", s.Failures())
	}
}

func TestSnapshotFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"timeline.json", "timeline.yaml"} {
		path := filepath.Join(dir, name)
		if err := SaveSnapshot(path, sampleSnapshot()); err != nil {
			t.Fatalf("SaveSnapshot %s: %v", name, err)
		}
		loaded, err := LoadSnapshot(path)
		if err != nil {
			t.Fatalf("LoadSnapshot %s: %v", name, err)
		}
		if len(loaded.Tracks) != 4 || loaded.Tracks[0].Items[1].Styled == nil {
			t.Fatalf("%s: unexpected snapshot %+v", name, loaded)
		}
	}
}

func TestSnapshotValidate(t *testing.T) {
	snap := sampleSnapshot()
	snap.Tracks[0].Items[0].End = 0
	if err := snap.Validate(); err == nil {
		t.Fatal("expected timing error")
	}
}
