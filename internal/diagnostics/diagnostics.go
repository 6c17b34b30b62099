package diagnostics

import (
	"textp2srt/internal/filter"
	"textp2srt/internal/timeline"
)

// Hints printed when block and element counts differ.
const (
	HintMoreBlocks = "More blocks than clips: check stray > lines or try --no-ignore-effects"
	HintMoreClips  = "More clips than blocks: add --extra-ignore patterns or merge blocks"
)

// PreviewRow pairs one block with the element it would be timed against.
type PreviewRow struct {
	Index   int
	Element timeline.Element
	Block   string
}

// Preview is the positional pairing shown before writing subtitles.
type Preview struct {
	Blocks int
	Clips  int
	Rows   []PreviewRow
}

// Mismatch reports whether the final subtitle file will be truncated.
func (p Preview) Mismatch() bool { return p.Blocks != p.Clips }

// BuildPreview pairs blocks with kept elements positionally, showing at
// most limit rows. A non-positive limit shows every pair.
func BuildPreview(blocks []string, kept []timeline.Element, limit int) Preview {
	n := min(len(blocks), len(kept))
	if limit > 0 {
		n = min(n, limit)
	}
	p := Preview{Blocks: len(blocks), Clips: len(kept), Rows: make([]PreviewRow, 0, n)}
	for i := 0; i < n; i++ {
		p.Rows = append(p.Rows, PreviewRow{Index: i + 1, Element: kept[i], Block: blocks[i]})
	}
	return p
}

// Diagnosis summarizes the kept/ignored partition against the block count.
type Diagnosis struct {
	Blocks       int
	KeptTotal    int
	IgnoredTotal int
	Kept         []timeline.Element
	Ignored      []filter.Ignored
	Hint         string
}

// Mismatch reports whether blocks and kept elements differ in number.
func (d Diagnosis) Mismatch() bool { return d.Blocks != d.KeptTotal }

// Diagnose reports the partition, keeping at most limit kept and limit
// ignored rows. A non-positive limit keeps every row.
func Diagnose(blocks []string, result filter.Result, limit int) Diagnosis {
	d := Diagnosis{
		Blocks:       len(blocks),
		KeptTotal:    len(result.Kept),
		IgnoredTotal: len(result.Ignored),
		Kept:         Head(result.Kept, limit),
		Ignored:      Head(result.Ignored, limit),
	}
	switch {
	case d.Blocks > d.KeptTotal:
		d.Hint = HintMoreBlocks
	case d.Blocks < d.KeptTotal:
		d.Hint = HintMoreClips
	}
	return d
}

// Stats counts raw, kept, and ignored elements of one track.
type Stats struct {
	Track          string
	RawItems       int
	Kept           int
	IgnoredEffect  int
	IgnoredStyled  int
	StyledRaw      int
	EffectNameHits int
	KeptTail       []timeline.Element
	EffectTail     []filter.Ignored
	StyledTail     []filter.Ignored
}

// ComputeStats derives the counters from the unfiltered elements and their
// partition. EffectNameHits only counts the built-in name patterns.
func ComputeStats(track string, raw []timeline.Element, result filter.Result, tail int) Stats {
	effect := result.IgnoredBy(filter.ReasonEffect)
	styled := result.IgnoredBy(filter.ReasonStyledText)
	s := Stats{
		Track:         track,
		RawItems:      len(raw),
		Kept:          len(result.Kept),
		IgnoredEffect: len(effect),
		IgnoredStyled: len(styled),
		KeptTail:      Tail(result.Kept, tail),
		EffectTail:    Tail(effect, tail),
		StyledTail:    Tail(styled, tail),
	}
	for _, elem := range raw {
		if elem.Styled() {
			s.StyledRaw++
		}
		if filter.MatchesDefaultPattern(elem.Name) {
			s.EffectNameHits++
		}
	}
	return s
}

// Head returns the first n values. A non-positive n returns all of them.
func Head[T any](values []T, n int) []T {
	if n <= 0 || len(values) <= n {
		return values
	}
	return values[:n]
}

// Tail returns the last n values. A non-positive n returns none.
func Tail[T any](values []T, n int) []T {
	if n <= 0 {
		return nil
	}
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}
