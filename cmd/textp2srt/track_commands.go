package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"textp2srt/internal/filter"
	"textp2srt/internal/timeline"
)

func newCountCommand(ctx *commandContext) *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "count [track]",
		Short: "Print the number of subtitle candidate clips",
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
				result := filter.Apply(session.Elements(track, false), opts)
				newPrinter(cmd).line("%d", len(result.Kept))
				return nil
			})
		},
	}
	flags.register(cmd, true)
	return cmd
}

func newTracksCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tracks",
		Short: "List video track names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(session *timeline.Session, _ *slog.Logger) error {
				names := session.TrackNames(timeline.TrackVideo)
				if asJSON {
					return writeJSON(cmd, names)
				}
				p := newPrinter(cmd)
				for _, name := range names {
					p.line("%s", name)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
