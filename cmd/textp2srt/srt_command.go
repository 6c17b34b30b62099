package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"textp2srt/internal/filter"
	"textp2srt/internal/pairing"
	"textp2srt/internal/preflight"
	"textp2srt/internal/srt"
	"textp2srt/internal/timeline"
)

func newSRTCommand(ctx *commandContext) *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "srt <input> <output> [track]",
		Short: "Generate an SRT file from manual blocks and clip timings",
		Long: "Generate an SRT file. Plain text clips take manual blocks in order.\n" +
			"With --include-text-plus, Text+ clips use their own text and only fall\n" +
			"back to manual blocks when it is empty.",
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			track, err := ctx.resolveTrack(args, 2)
			if err != nil {
				return err
			}
			output := args[1]
			return ctx.withSession(cmd, func(session *timeline.Session, logger *slog.Logger) error {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				blocks, err := readBlocks(args[0])
				if err != nil {
					return err
				}
				if err := preflight.CheckOutputPath("SRT output", output).Err(); err != nil {
					return err
				}

				opts := flags.options(cfg)
				result := filter.Apply(session.Elements(track, !opts.ExcludeStyled), opts)
				p := newPrinter(cmd)

				if opts.ExcludeStyled {
					plain := pairing.Plain(blocks, result.Kept)
					reportWarnings(p, logger, plain.Warnings)
					written, err := srt.Write(output, plain.Entries)
					if err != nil {
						return err
					}
					p.tagged(tagOK, "wrote %d entries -> %s", written, output)
					return nil
				}

				mixed := pairing.Mixed(blocks, result.Kept)
				reportWarnings(p, logger, mixed.Warnings)
				written, err := srt.Write(output, mixed.Entries)
				if err != nil {
					return err
				}
				p.tagged(tagOK, "wrote %d entries -> %s (manual_used=%d/%d text_plus=%d)",
					written, output, mixed.ManualUsed, mixed.Blocks, mixed.StyledCount)
				return nil
			})
		},
	}
	flags.register(cmd, true)
	return cmd
}

// reportWarnings echoes pairing warnings to stdout and logs them.
func reportWarnings(p printer, logger *slog.Logger, warnings []pairing.Warning) {
	for _, w := range warnings {
		p.tagged(tagWarn, "%s", w)
	}
	pairing.LogWarnings(logger, warnings)
}
