package pairing

import (
	"strings"
	"testing"

	"textp2srt/internal/timeline"
)

func plain(start, end float64) timeline.Element {
	return timeline.Element{Start: start, End: end, Kind: timeline.KindPlainText}
}

func styled(start, end float64, text string) timeline.Element {
	return timeline.Element{Start: start, End: end, Kind: timeline.KindStyledText, SourceText: text}
}

func blocks(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = string(rune('A' + i))
	}
	return out
}

func TestPlainMoreBlocksThanClips(t *testing.T) {
	kept := []timeline.Element{plain(0, 1), plain(1, 2), plain(2, 3)}
	res := Plain(blocks(5), kept)
	if len(res.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(res.Entries))
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(res.Warnings))
	}
	if !strings.Contains(res.Warnings[0].Message, "blocks=5 clips=3") {
		t.Fatalf("unexpected warning %q", res.Warnings[0].Message)
	}
	if res.Entries[2].Text != "C" || res.Entries[2].Start != 2 {
		t.Fatalf("unexpected third entry %+v", res.Entries[2])
	}
}

func TestPlainMoreClipsThanBlocks(t *testing.T) {
	kept := []timeline.Element{plain(0, 1), plain(1, 2), plain(2, 3), plain(3, 4), plain(4, 5)}
	res := Plain(blocks(3), kept)
	if len(res.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(res.Entries))
	}
	if res.Warnings[0].Kind != WarnCountMismatch || res.Warnings[0].Count != -2 {
		t.Fatalf("unexpected warning %+v", res.Warnings[0])
	}
}

func TestPlainBalancedHasNoWarnings(t *testing.T) {
	res := Plain(blocks(2), []timeline.Element{plain(0, 1), plain(1, 2)})
	if len(res.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", res.Warnings)
	}
}

func TestMixedStyledTextDoesNotConsumeBlocks(t *testing.T) {
	kept := []timeline.Element{
		styled(0, 1, "Own text"),
		plain(1, 2),
		styled(2, 3, ""),
	}
	res := Mixed(blocks(3), kept)
	if res.ManualUsed != 2 {
		t.Fatalf("expected cursor at 2, got %d", res.ManualUsed)
	}
	want := []string{"Own text", "A", "B"}
	for i, w := range want {
		if res.Entries[i].Text != w {
			t.Fatalf("entry %d: expected %q, got %q", i, w, res.Entries[i].Text)
		}
	}
	if res.UnusedBlocks != 1 || len(res.Warnings) != 1 || res.Warnings[0].Kind != WarnUnusedBlocks {
		t.Fatalf("expected one unused block warning, got %+v", res.Warnings)
	}
	if res.StyledCount != 2 {
		t.Fatalf("expected 2 styled, got %d", res.StyledCount)
	}
}

func TestMixedSortsByStart(t *testing.T) {
	kept := []timeline.Element{
		plain(5, 6),
		styled(0, 1, "Title"),
		plain(2, 3),
	}
	res := Mixed([]string{"first", "second"}, kept)
	if res.Entries[0].Text != "Title" || res.Entries[1].Text != "first" || res.Entries[2].Text != "second" {
		t.Fatalf("unexpected order %+v", res.Entries)
	}
	if res.Entries[2].Start != 5 {
		t.Fatalf("expected last entry at 5s, got %v", res.Entries[2].Start)
	}
}

func TestMixedRunsOutOfBlocks(t *testing.T) {
	kept := []timeline.Element{plain(0, 1), styled(1, 2, "  "), plain(2, 3)}
	res := Mixed([]string{"only"}, kept)
	if len(res.Entries) != 3 {
		t.Fatalf("expected one entry per element, got %d", len(res.Entries))
	}
	if res.EmptyEntries != 2 {
		t.Fatalf("expected 2 empty entries, got %d", res.EmptyEntries)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Message != "empty subtitle entries: 2" {
		t.Fatalf("unexpected warnings %+v", res.Warnings)
	}
}

func TestMixedTrimsText(t *testing.T) {
	res := Mixed([]string{"  manual  "}, []timeline.Element{styled(0, 1, "\n styled \n"), plain(1, 2)})
	if res.Entries[0].Text != "styled" || res.Entries[1].Text != "manual" {
		t.Fatalf("expected trimmed text, got %+v", res.Entries)
	}
}

func TestApplyPlan(t *testing.T) {
	elements := []timeline.Element{styled(0, 1, "old"), plain(1, 2), styled(2, 3, "")}
	plan, warnings := ApplyPlan([]string{"x", "y", "z"}, elements)
	if len(plan) != 2 || plan[0].Text != "x" || plan[1].Text != "y" || plan[1].Element.Start != 2 {
		t.Fatalf("unexpected plan %+v", plan)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "blocks=3 text_plus=2") {
		t.Fatalf("unexpected warnings %+v", warnings)
	}
}

func TestApplyPlanNoStyled(t *testing.T) {
	plan, warnings := ApplyPlan([]string{"x"}, []timeline.Element{plain(0, 1)})
	if len(plan) != 0 || len(warnings) != 0 {
		t.Fatalf("expected empty plan without warnings, got %+v %+v", plan, warnings)
	}
}
