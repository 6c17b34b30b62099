package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"textp2srt/internal/diagnostics"
	"textp2srt/internal/filter"
	"textp2srt/internal/textutil"
	"textp2srt/internal/timeline"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "stats [track]",
		Short: "Show kept, effect and Text+ counts with tail samples",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			track, err := ctx.resolveTrack(args, 0)
			if err != nil {
				return err
			}
			return ctx.withSession(cmd, func(session *timeline.Session, _ *slog.Logger) error {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				opts := flags.options(cfg)
				opts.ExcludeStyled = true

				raw := session.Elements(track, false)
				stats := diagnostics.ComputeStats(track, raw, filter.Apply(raw, opts), cfg.Output.TailSize)

				p := newPrinter(cmd)
				p.line("[stats] track='%s' raw_items=%d", stats.Track, stats.RawItems)
				p.line("[stats] kept_text_clips=%d  ignored_effect=%d  ignored_text_plus=%d",
					stats.Kept, stats.IgnoredEffect, stats.IgnoredStyled)
				p.line("[stats] total_text_plus_raw=%d  effect_name_hits_raw=%d", stats.StyledRaw, stats.EffectNameHits)

				if len(stats.KeptTail) > 0 {
					p.line("[tail kept] last %d:", len(stats.KeptTail))
					for _, elem := range stats.KeptTail {
						start, end := clipTimes(elem)
						p.line("  K %s -> %s | %s", start, end, textutil.Truncate(elem.Name, 60))
					}
				}
				printIgnoredTail(p, stats.EffectTail)
				printIgnoredTail(p, stats.StyledTail)
				return nil
			})
		},
	}
	flags.register(cmd, false)
	return cmd
}

func printIgnoredTail(p printer, tail []filter.Ignored) {
	if len(tail) == 0 {
		return
	}
	p.line("[tail ignored] last %d:", len(tail))
	for _, ig := range tail {
		start, end := clipTimes(ig.Element)
		p.line("  I %-8s %s -> %s %.2fs | %s", ig.Reason, start, end, ig.Duration(), textutil.Truncate(ig.Name, 60))
	}
}
