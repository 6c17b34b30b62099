package pairing

import (
	"fmt"
	"sort"
	"strings"

	"textp2srt/internal/timeline"
)

// Entry is one timed subtitle. Text may be empty.
type Entry struct {
	Start float64
	End   float64
	Text  string
}

// WarningKind identifies a non-fatal pairing condition.
type WarningKind string

const (
	WarnCountMismatch WarningKind = "count_mismatch"
	WarnUnusedBlocks  WarningKind = "unused_blocks"
	WarnEmptyEntries  WarningKind = "empty_entries"
)

// Warning is a data-quality problem surfaced to the user.
type Warning struct {
	Kind    WarningKind
	Message string
	Count   int
}

func (w Warning) String() string {
	return w.Message
}

// PlainResult is the outcome of Plain.
type PlainResult struct {
	Entries  []Entry
	Blocks   int
	Clips    int
	Warnings []Warning
}

// Plain zips blocks with kept elements by index. The shorter side decides
// the entry count.
func Plain(blocks []string, kept []timeline.Element) PlainResult {
	count := min(len(blocks), len(kept))
	res := PlainResult{
		Entries: make([]Entry, 0, count),
		Blocks:  len(blocks),
		Clips:   len(kept),
	}
	if len(blocks) != len(kept) {
		res.Warnings = append(res.Warnings, Warning{
			Kind:    WarnCountMismatch,
			Message: fmt.Sprintf("blocks=%d clips=%d -> truncating to %d", len(blocks), len(kept), count),
			Count:   len(blocks) - len(kept),
		})
	}
	for i := 0; i < count; i++ {
		res.Entries = append(res.Entries, Entry{Start: kept[i].Start, End: kept[i].End, Text: blocks[i]})
	}
	return res
}

// MixedResult is the outcome of Mixed.
type MixedResult struct {
	Entries []Entry
	// ManualUsed is the final position of the manual block cursor.
	ManualUsed   int
	Blocks       int
	StyledCount  int
	UnusedBlocks int
	EmptyEntries int
	Warnings     []Warning
}

// Mixed pairs kept elements of both kinds in start order. Styled elements
// with retrieved text use it and leave the cursor alone; every other element
// takes the next manual block, or empty text once blocks run out.
func Mixed(blocks []string, kept []timeline.Element) MixedResult {
	ordered := make([]timeline.Element, len(kept))
	copy(ordered, kept)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Start < ordered[j].Start
	})

	res := MixedResult{
		Entries: make([]Entry, 0, len(ordered)),
		Blocks:  len(blocks),
	}
	cursor := 0
	next := func() string {
		if cursor >= len(blocks) {
			return ""
		}
		text := strings.TrimSpace(blocks[cursor])
		cursor++
		return text
	}

	for _, elem := range ordered {
		var text string
		if elem.Styled() {
			res.StyledCount++
			if own := strings.TrimSpace(elem.SourceText); own != "" {
				text = own
			} else {
				text = next()
			}
		} else {
			text = next()
		}
		if text == "" {
			res.EmptyEntries++
		}
		res.Entries = append(res.Entries, Entry{Start: elem.Start, End: elem.End, Text: text})
	}

	res.ManualUsed = cursor
	res.UnusedBlocks = len(blocks) - cursor
	if res.UnusedBlocks > 0 {
		res.Warnings = append(res.Warnings, Warning{
			Kind:    WarnUnusedBlocks,
			Message: fmt.Sprintf("unused manual blocks: %d", res.UnusedBlocks),
			Count:   res.UnusedBlocks,
		})
	}
	if res.EmptyEntries > 0 {
		res.Warnings = append(res.Warnings, Warning{
			Kind:    WarnEmptyEntries,
			Message: fmt.Sprintf("empty subtitle entries: %d", res.EmptyEntries),
			Count:   res.EmptyEntries,
		})
	}
	return res
}
