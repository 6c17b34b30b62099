package filter

import (
	"testing"

	"textp2srt/internal/timeline"
)

func elem(index int, start, end float64, name string, kind timeline.Kind) timeline.Element {
	return timeline.Element{Index: index, Start: start, End: end, Name: name, Kind: kind}
}

func TestShouldIgnore(t *testing.T) {
	opts := DefaultOptions()
	tests := []struct {
		name     string
		clip     string
		duration float64
		want     bool
	}{
		{name: "transition name long duration", clip: "Cross Dissolve", duration: 12, want: true},
		{name: "case insensitive", clip: "cross dissolve", duration: 5, want: true},
		{name: "localized name", clip: "クロスディゾルブ", duration: 3, want: true},
		{name: "substring match", clip: "Dip to Black", duration: 3, want: true},
		{name: "short with six distinct runes", clip: "ABCDEF", duration: 0.5, want: false},
		{name: "short with five distinct runes", clip: "ABCDE", duration: 0.5, want: true},
		{name: "short repeated rune", clip: "AAAAAA", duration: 0.5, want: true},
		{name: "short empty name", clip: "", duration: 0.2, want: true},
		{name: "boundary duration", clip: "Text", duration: 0.6, want: true},
		{name: "just over boundary", clip: "Text", duration: 0.61, want: false},
		{name: "ordinary text clip", clip: "Text", duration: 2, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldIgnore(tt.clip, tt.duration, opts); got != tt.want {
				t.Fatalf("ShouldIgnore(%q, %v) = %v, want %v", tt.clip, tt.duration, got, tt.want)
			}
		})
	}
}

func TestShouldIgnoreDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.IgnoreEffects = false
	for _, name := range []string{"Cross Dissolve", "ABCDE", "ABCDEF"} {
		if ShouldIgnore(name, 0.5, opts) {
			t.Fatalf("expected %q kept with heuristic disabled", name)
		}
	}
}

func TestShouldIgnoreExtraPatterns(t *testing.T) {
	opts := DefaultOptions()
	opts.ExtraPatterns = []string{"Flash"}
	if !ShouldIgnore("white FLASH 02", 3, opts) {
		t.Fatal("expected extra pattern match")
	}
}

func TestApplyPartitionsInOrder(t *testing.T) {
	elements := []timeline.Element{
		elem(0, 0, 2, "Text", timeline.KindPlainText),
		elem(1, 2, 2.4, "Cross Dissolve", timeline.KindPlainText),
		elem(2, 2.4, 5, "Title", timeline.KindStyledText),
		elem(3, 5, 5.3, "x", timeline.KindPlainText),
		elem(4, 5.3, 8, "Text", timeline.KindPlainText),
	}
	res := Apply(elements, DefaultOptions())
	if len(res.Kept) != 2 || res.Kept[0].Index != 0 || res.Kept[1].Index != 4 {
		t.Fatalf("unexpected kept list %+v", res.Kept)
	}
	if len(res.Ignored) != 3 {
		t.Fatalf("expected 3 ignored, got %d", len(res.Ignored))
	}
	if res.Ignored[0].Reason != ReasonEffect || res.Ignored[1].Reason != ReasonStyledText || res.Ignored[2].Reason != ReasonEffect {
		t.Fatalf("unexpected reasons %+v", res.Ignored)
	}
	if got := len(res.IgnoredBy(ReasonEffect)); got != 2 {
		t.Fatalf("expected 2 effect ignores, got %d", got)
	}
}

func TestApplyStyledExclusionWinsOverHeuristic(t *testing.T) {
	elements := []timeline.Element{elem(0, 0, 0.3, "Dissolve", timeline.KindStyledText)}
	res := Apply(elements, DefaultOptions())
	if len(res.Ignored) != 1 || res.Ignored[0].Reason != ReasonStyledText {
		t.Fatalf("expected styled reason, got %+v", res.Ignored)
	}
}

func TestApplyIncludeStyledStillFiltersEffects(t *testing.T) {
	opts := DefaultOptions()
	opts.ExcludeStyled = false
	elements := []timeline.Element{
		elem(0, 0, 3, "Title", timeline.KindStyledText),
		elem(1, 3, 3.2, "Dip", timeline.KindStyledText),
	}
	res := Apply(elements, opts)
	if len(res.Kept) != 1 || res.Kept[0].Index != 0 {
		t.Fatalf("unexpected kept %+v", res.Kept)
	}
	if res.Ignored[0].Reason != ReasonEffect {
		t.Fatalf("expected effect reason, got %v", res.Ignored[0].Reason)
	}
}

func TestApplyHeuristicDisabledKeepsShortElements(t *testing.T) {
	opts := DefaultOptions()
	opts.IgnoreEffects = false
	elements := []timeline.Element{
		elem(0, 0, 0.5, "AAAAAA", timeline.KindPlainText),
		elem(1, 0.5, 1, "AAAAA", timeline.KindPlainText),
	}
	if res := Apply(elements, opts); len(res.Kept) != 2 {
		t.Fatalf("expected both kept, got %d", len(res.Kept))
	}
}

func TestMatchesDefaultPattern(t *testing.T) {
	if !MatchesDefaultPattern("Smooth TRANSITION") {
		t.Fatal("expected default match")
	}
	if MatchesDefaultPattern("Flash") {
		t.Fatal("expected no default match")
	}
}
