package pairing

import (
	"fmt"

	"textp2srt/internal/timeline"
)

// Assignment is a manual block destined for a styled element.
type Assignment struct {
	Element timeline.Element
	Text    string
}

// ApplyPlan pairs blocks with styled elements in order for write-back.
// Plain elements in the input are skipped.
func ApplyPlan(blocks []string, elements []timeline.Element) ([]Assignment, []Warning) {
	styled := make([]timeline.Element, 0, len(elements))
	for _, elem := range elements {
		if elem.Styled() {
			styled = append(styled, elem)
		}
	}
	count := min(len(blocks), len(styled))
	plan := make([]Assignment, 0, count)
	for i := 0; i < count; i++ {
		plan = append(plan, Assignment{Element: styled[i], Text: blocks[i]})
	}
	var warnings []Warning
	if len(styled) > 0 && len(blocks) != len(styled) {
		warnings = append(warnings, Warning{
			Kind:    WarnCountMismatch,
			Message: fmt.Sprintf("blocks=%d text_plus=%d -> applying %d", len(blocks), len(styled), count),
			Count:   len(blocks) - len(styled),
		})
	}
	return plan, warnings
}
