package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"textp2srt/internal/diagnostics"
	"textp2srt/internal/filter"
	"textp2srt/internal/textutil"
	"textp2srt/internal/timeline"
)

func newDiagnoseCommand(ctx *commandContext) *cobra.Command {
	var flags filterFlags
	var showAll bool
	var asTable bool

	cmd := &cobra.Command{
		Use:   "diagnose <input> [track]",
		Short: "Show mismatch status and ignored clips",
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

				limit := cfg.Output.DiagnoseLimit
				if showAll {
					limit = 0
				}
				diag := diagnostics.Diagnose(blocks, result, limit)

				p := newPrinter(cmd)
				p.line("blocks=%d kept_clips=%d ignored=%d", diag.Blocks, diag.KeptTotal, diag.IgnoredTotal)
				switch {
				case asTable:
					p.table(diagnosisTable(diag))
				case showAll:
					printDiagnosisFull(p, diag)
				default:
					printDiagnosisSample(p, diag, limit)
				}
				if diag.Hint != "" {
					p.tagged(tagHint, "%s", diag.Hint)
				}
				return nil
			})
		},
	}
	flags.register(cmd, true)
	cmd.Flags().BoolVar(&showAll, "all", false, "Show the full kept/ignored lists")
	cmd.Flags().BoolVar(&asTable, "table", false, "Render kept and ignored clips as a table")
	return cmd
}

func printDiagnosisFull(p printer, diag diagnostics.Diagnosis) {
	for i, elem := range diag.Kept {
		start, end := clipTimes(elem)
		p.line("K %03d %s -> %s %.2fs | %s", i+1, start, end, elem.Duration(), elem.Name)
	}
	for _, ig := range diag.Ignored {
		start, end := clipTimes(ig.Element)
		p.line("I %-8s %s -> %s %.2fs | %s", ig.Reason, start, end, ig.Duration(), ig.Name)
	}
}

func printDiagnosisSample(p printer, diag diagnostics.Diagnosis, limit int) {
	if diag.Mismatch() {
		p.tagged(tagInfo, "counts differ; first %d kept:", limit)
	}
	for i, elem := range diag.Kept {
		start, end := clipTimes(elem)
		p.line("K %03d %s -> %s %.2fs | %s", i+1, start, end, elem.Duration(), textutil.Truncate(elem.Name, 60))
	}
	if diag.IgnoredTotal > 0 {
		p.tagged(tagInfo, "ignored sample (up to %d):", limit)
		for _, ig := range diag.Ignored {
			start, _ := clipTimes(ig.Element)
			p.line("I %-8s %s %s %.2fs", ig.Reason, textutil.Truncate(ig.Name, 40), start, ig.Duration())
		}
	}
}

func diagnosisTable(diag diagnostics.Diagnosis) ([]string, [][]string, []columnAlignment) {
	headers := []string{"Set", "#", "Reason", "Start", "End", "Dur", "Clip"}
	rows := make([][]string, 0, len(diag.Kept)+len(diag.Ignored))
	for i, elem := range diag.Kept {
		start, end := clipTimes(elem)
		rows = append(rows, []string{"K", fmt.Sprintf("%03d", i+1), "", start, end, fmt.Sprintf("%.2fs", elem.Duration()), elem.Name})
	}
	for i, ig := range diag.Ignored {
		start, end := clipTimes(ig.Element)
		rows = append(rows, []string{"I", fmt.Sprintf("%03d", i+1), string(ig.Reason), start, end, fmt.Sprintf("%.2fs", ig.Duration()), ig.Name})
	}
	return headers, rows, []columnAlignment{alignLeft, alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignLeft}
}
