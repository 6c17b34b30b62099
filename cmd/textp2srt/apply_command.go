package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"textp2srt/internal/logging"
	"textp2srt/internal/pairing"
	"textp2srt/internal/timeline"
)

func newApplyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "apply <input> [track]",
		Short: "Write manual blocks into Text+ clips in order",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			track, err := ctx.resolveTrack(args, 1)
			if err != nil {
				return err
			}
			return ctx.withSession(cmd, func(session *timeline.Session, logger *slog.Logger) error {
				blocks, err := readBlocks(args[0])
				if err != nil {
					return err
				}
				p := newPrinter(cmd)

				elements := session.Elements(track, false)
				if !hasStyled(elements) {
					p.tagged(tagWarn, "no Text+ clips found")
					return nil
				}
				plan, warnings := pairing.ApplyPlan(blocks, elements)
				reportWarnings(p, logger, warnings)

				updated := 0
				for _, a := range plan {
					if err := session.SetStyledText(a.Element, a.Text); err != nil {
						logger.Debug("styled text not updated",
							logging.Int("element_index", a.Element.Index),
							logging.Error(err))
						continue
					}
					updated++
				}
				p.tagged(tagOK, "applied %d/%d blocks to Text+ clips", updated, len(plan))
				return nil
			})
		},
	}
}

func hasStyled(elements []timeline.Element) bool {
	for _, elem := range elements {
		if elem.Styled() {
			return true
		}
	}
	return false
}
