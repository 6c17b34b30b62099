package pairing

import (
	"log/slog"

	"textp2srt/internal/logging"
)

var warningImpact = map[WarningKind]string{
	WarnCountMismatch: "surplus blocks or elements are left out of the output",
	WarnUnusedBlocks:  "trailing manual blocks were not written",
	WarnEmptyEntries:  "some subtitles have no text",
}

var warningHint = map[WarningKind]string{
	WarnCountMismatch: "run diagnose to compare blocks with kept elements",
	WarnUnusedBlocks:  "check for stray '>' lines or missing elements",
	WarnEmptyEntries:  "add manual blocks or fill styled text on the timeline",
}

// LogWarnings records each warning with its impact and a next step.
func LogWarnings(logger *slog.Logger, warnings []Warning) {
	for _, w := range warnings {
		logging.WarnWithContext(logger, w.Message, string(w.Kind),
			logging.Int("count", w.Count),
			logging.String(logging.FieldErrorHint, warningHint[w.Kind]),
			logging.String(logging.FieldImpact, warningImpact[w.Kind]),
		)
	}
}
