package testsupport

import "textp2srt/internal/timeline"

// SampleFrameRate is the frame rate of SampleSnapshot.
const SampleFrameRate = 50

// SampleSnapshot returns a timeline with a "Subs" track mixing plain clips,
// a transition, and Text+ clips, plus a second track and an audio track.
//
// Plain clips on "Subs" sit at (0,2), (2,5) and (5,5.5) seconds. The Text+
// clips sit at (1.6,1.92) carrying "Opening" and (8,10) with empty text.
func SampleSnapshot() *timeline.Snapshot {
	return &timeline.Snapshot{
		Name:      "Episode 1",
		FrameRate: SampleFrameRate,
		Tracks: []timeline.SnapshotTrack{
			{Name: "Subs", Items: []timeline.SnapshotItem{
				{Start: 0, End: 100, Name: "Text one"},
				{Start: 100, End: 250, Name: "Text two"},
				{Start: 250, End: 270, Name: "Cross Dissolve"},
				{Start: 250, End: 275, Name: "Text three"},
			}},
			{Name: "B-Roll", Items: []timeline.SnapshotItem{{Start: 0, End: 1000, Name: "broll.mov"}}},
			{Name: "Subs", Items: []timeline.SnapshotItem{
				{Start: 80, End: 96, Name: "Title Card", Styled: &timeline.SnapshotStyled{Text: "Opening"}},
				{Start: 400, End: 500, Name: "Title Card", Styled: &timeline.SnapshotStyled{}},
			}},
			{Name: "Music", Kind: timeline.TrackAudio, Items: []timeline.SnapshotItem{{Start: 0, End: 2000, Name: "score.wav"}}},
		},
	}
}
