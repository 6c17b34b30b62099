package timeline

// Kind classifies an element by where its subtitle text comes from.
type Kind int

const (
	// KindPlainText elements have no rich-text sub-object; their text
	// comes from manual blocks.
	KindPlainText Kind = iota
	// KindStyledText elements carry a rich-text sub-object that may hold
	// their own text.
	KindStyledText
)

func (k Kind) String() string {
	switch k {
	case KindStyledText:
		return "styled"
	default:
		return "text"
	}
}

// Element is a read-only snapshot of one track item, timed in seconds.
type Element struct {
	Index int
	Track int
	Start float64
	End   float64
	Name  string
	Kind  Kind
	// SourceText holds the retrieved styled text. It is only populated for
	// styled elements when retrieval was requested and succeeded.
	SourceText string

	styled StyledText
}

// Duration returns End - Start in seconds.
func (e Element) Duration() float64 {
	return e.End - e.Start
}

// Styled reports whether the element carries a rich-text sub-object.
func (e Element) Styled() bool {
	return e.Kind == KindStyledText
}
