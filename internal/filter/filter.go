package filter

import (
	"strings"

	"textp2srt/internal/textutil"
	"textp2srt/internal/timeline"
)

// Reason explains why an element was ignored.
type Reason string

const (
	ReasonStyledText Reason = "text_plus"
	ReasonEffect     Reason = "effect"
)

const (
	// DefaultMaxEffectSeconds is the longest duration the short-name rule
	// treats as a transition tail.
	DefaultMaxEffectSeconds = 0.6
	// DefaultMinDistinctRunes is the number of distinct name characters at
	// which a short element stops looking auto-generated.
	DefaultMinDistinctRunes = 6
)

// DefaultIgnoreNames are the built-in transition name fragments.
var DefaultIgnoreNames = []string{
	"カラーディップ", "クロスディゾルブ", "ディゾルブ", "ディップ",
	"Transition", "Dip", "Dissolve", "Cross Dissolve",
}

// Options controls classification and filtering.
type Options struct {
	// ExcludeStyled drops every styled element with ReasonStyledText.
	ExcludeStyled bool
	// IgnoreEffects enables the effect heuristic. When false neither rule
	// is evaluated.
	IgnoreEffects bool
	// ExtraPatterns are matched like DefaultIgnoreNames.
	ExtraPatterns    []string
	MaxEffectSeconds float64
	MinDistinctRunes int
}

// DefaultOptions matches plain subtitle generation: styled elements
// excluded and the effect heuristic on.
func DefaultOptions() Options {
	return Options{
		ExcludeStyled:    true,
		IgnoreEffects:    true,
		MaxEffectSeconds: DefaultMaxEffectSeconds,
		MinDistinctRunes: DefaultMinDistinctRunes,
	}
}

func (o Options) withDefaults() Options {
	if o.MaxEffectSeconds <= 0 {
		o.MaxEffectSeconds = DefaultMaxEffectSeconds
	}
	if o.MinDistinctRunes <= 0 {
		o.MinDistinctRunes = DefaultMinDistinctRunes
	}
	return o
}

// Ignored is an element removed by filtering.
type Ignored struct {
	timeline.Element
	Reason Reason
}

// Result is the kept/ignored partition of an element list.
type Result struct {
	Kept    []timeline.Element
	Ignored []Ignored
}

// IgnoredBy returns the ignored elements carrying reason, in order.
func (r Result) IgnoredBy(reason Reason) []Ignored {
	var out []Ignored
	for _, ig := range r.Ignored {
		if ig.Reason == reason {
			out = append(out, ig)
		}
	}
	return out
}

// Apply partitions elements. Styled exclusion is checked before the effect
// heuristic, so an excluded styled element always reports
// ReasonStyledText.
func Apply(elements []timeline.Element, opts Options) Result {
	opts = opts.withDefaults()
	patterns := opts.patterns()
	res := Result{Kept: make([]timeline.Element, 0, len(elements))}
	for _, elem := range elements {
		switch {
		case opts.ExcludeStyled && elem.Styled():
			res.Ignored = append(res.Ignored, Ignored{Element: elem, Reason: ReasonStyledText})
		case opts.IgnoreEffects && isEffect(elem.Name, elem.Duration(), patterns, opts):
			res.Ignored = append(res.Ignored, Ignored{Element: elem, Reason: ReasonEffect})
		default:
			res.Kept = append(res.Kept, elem)
		}
	}
	return res
}

// ShouldIgnore reports whether the effect heuristic drops an element with
// the given name and duration.
func ShouldIgnore(name string, duration float64, opts Options) bool {
	if !opts.IgnoreEffects {
		return false
	}
	opts = opts.withDefaults()
	return isEffect(name, duration, opts.patterns(), opts)
}

// MatchesDefaultPattern reports whether name contains one of the built-in
// transition fragments, ignoring case.
func MatchesDefaultPattern(name string) bool {
	return matchesAny(strings.ToLower(name), lowerAll(DefaultIgnoreNames))
}

func (o Options) patterns() []string {
	all := make([]string, 0, len(DefaultIgnoreNames)+len(o.ExtraPatterns))
	all = append(all, DefaultIgnoreNames...)
	all = append(all, o.ExtraPatterns...)
	return lowerAll(all)
}

func isEffect(name string, duration float64, patterns []string, opts Options) bool {
	lname := strings.ToLower(name)
	if matchesAny(lname, patterns) {
		return true
	}
	return duration <= opts.MaxEffectSeconds && textutil.DistinctRunes(lname) < opts.MinDistinctRunes
}

func matchesAny(lname string, patterns []string) bool {
	for _, p := range patterns {
		if p != "" && strings.Contains(lname, p) {
			return true
		}
	}
	return false
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.ToLower(v))
	}
	return out
}
