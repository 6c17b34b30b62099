package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"textp2srt/internal/logging"
	"textp2srt/internal/textutil"
	"textp2srt/internal/timeline"
	"textp2srt/internal/timelinedb"
)

func newTimelineCommand(ctx *commandContext) *cobra.Command {
	timelineCmd := &cobra.Command{
		Use:   "timeline",
		Short: "Manage stored timelines",
	}

	timelineCmd.AddCommand(newTimelineImportCommand(ctx))
	timelineCmd.AddCommand(newTimelineExportCommand(ctx))
	timelineCmd.AddCommand(newTimelineShowCommand(ctx))
	timelineCmd.AddCommand(newTimelineUseCommand(ctx))

	return timelineCmd
}

func (c *commandContext) withStore(fn func(*timelinedb.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := timelinedb.Open(cfg)
	if err != nil {
		return fmt.Errorf("open timeline store: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func newTimelineImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a timeline snapshot (JSON or YAML) and make it current",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.commandLogger(cmd)
			if err != nil {
				return err
			}
			snap, err := timeline.LoadSnapshot(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *timelinedb.Store) error {
				id, err := store.Import(cmd.Context(), snap)
				if err != nil {
					return err
				}
				logger.Info("timeline imported",
					logging.String("timeline", snap.Name),
					logging.Any("id", id),
					logging.Int("tracks", len(snap.Tracks)))
				newPrinter(cmd).tagged(tagOK, "imported timeline %q (%d tracks) as current", snap.Name, len(snap.Tracks))
				return nil
			})
		},
	}
}

func newTimelineExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Export the current timeline as a JSON or YAML snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *timelinedb.Store) error {
				snap, err := store.Export(cmd.Context())
				if err != nil {
					return err
				}
				if err := timeline.SaveSnapshot(args[0], snap); err != nil {
					return err
				}
				newPrinter(cmd).tagged(tagOK, "exported timeline %q -> %s", snap.Name, args[0])
				return nil
			})
		},
	}
}

func newTimelineShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "List stored timelines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *timelinedb.Store) error {
				summaries, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					if summaries == nil {
						summaries = []timelinedb.Summary{}
					}
					return writeJSON(cmd, summaries)
				}
				p := newPrinter(cmd)
				if len(summaries) == 0 {
					p.line("No timelines imported")
					return nil
				}
				rows := make([][]string, 0, len(summaries))
				for _, s := range summaries {
					rows = append(rows, []string{
						s.Name,
						textutil.Ternary(s.Current, "yes", "no"),
						strconv.FormatFloat(s.FrameRate, 'f', -1, 64),
						strconv.Itoa(s.Tracks),
						strconv.Itoa(s.Items),
						s.ImportedAt.Local().Format("2006-01-02 15:04"),
					})
				}
				p.table(
					[]string{"Name", "Current", "FPS", "Tracks", "Items", "Imported"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
				)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newTimelineUseCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Make a stored timeline current",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *timelinedb.Store) error {
				if err := store.Use(cmd.Context(), args[0]); err != nil {
					return err
				}
				newPrinter(cmd).tagged(tagOK, "current timeline: %s", args[0])
				return nil
			})
		},
	}
}
