package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"textp2srt/internal/diagnostics"
	"textp2srt/internal/filter"
	"textp2srt/internal/textutil"
	"textp2srt/internal/timeline"
)

const previewBlockWidth = 80

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	var flags filterFlags
	var showAll bool
	var asTable bool

	cmd := &cobra.Command{
		Use:   "preview <input> [track]",
		Short: "List the pairing of manual blocks and clip timings",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			track, err := ctx.resolveTrack(args, 1)
			if err != nil {
				return err
			}
			return ctx.withSession(cmd, func(session *timeline.Session, _ *slog.Logger) error {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				blocks, err := readBlocks(args[0])
				if err != nil {
					return err
				}
				result := filter.Apply(session.Elements(track, false), flags.options(cfg))

				limit := cfg.Output.PreviewLimit
				if showAll {
					limit = 0
				}
				preview := diagnostics.BuildPreview(blocks, result.Kept, limit)

				p := newPrinter(cmd)
				p.line("blocks=%d clips=%d", preview.Blocks, preview.Clips)
				if asTable {
					p.table(previewTable(preview))
				} else {
					for _, row := range preview.Rows {
						start, end := clipTimes(row.Element)
						p.line("%3d %s -> %s (%.2fs) | %s || %s",
							row.Index, start, end, row.Element.Duration(),
							textutil.Truncate(textutil.Flatten(row.Block), previewBlockWidth),
							row.Element.Name)
					}
				}
				if preview.Mismatch() {
					p.tagged(tagWarn, "mismatch counts (final SRT will truncate)")
				}
				return nil
			})
		},
	}
	flags.register(cmd, true)
	cmd.Flags().BoolVar(&showAll, "all", false, "Show every pair instead of the configured preview limit")
	cmd.Flags().BoolVar(&asTable, "table", false, "Render the pairs as a table")
	return cmd
}

func previewTable(preview diagnostics.Preview) ([]string, [][]string, []columnAlignment) {
	headers := []string{"#", "Start", "End", "Dur", "Block", "Clip"}
	rows := make([][]string, 0, len(preview.Rows))
	for _, row := range preview.Rows {
		start, end := clipTimes(row.Element)
		rows = append(rows, []string{
			strconv.Itoa(row.Index),
			start,
			end,
			fmt.Sprintf("%.2fs", row.Element.Duration()),
			textutil.Truncate(textutil.Flatten(row.Block), previewBlockWidth),
			row.Element.Name,
		})
	}
	return headers, rows, []columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignLeft}
}
