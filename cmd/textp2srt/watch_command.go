package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"textp2srt/internal/clipboard"
	"textp2srt/internal/config"
	"textp2srt/internal/fileutil"
	"textp2srt/internal/logging"
	"textp2srt/internal/preflight"
	"textp2srt/internal/textutil"
)

const watchHeadWidth = 60

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var intervalSeconds float64
	var encodingFlag string

	cmd := &cobra.Command{
		Use:   "watch <output>",
		Short: "Append new clipboard text to a manual file as '>' blocks",
		Long: "Poll the clipboard and append every new snapshot to the output file as a\n" +
			"'>' block. The first non-empty snapshot is only recorded, never added.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.commandLogger(cmd)
			if err != nil {
				return err
			}

			interval := cfg.Clipboard.Interval()
			if cmd.Flags().Changed("interval") {
				if intervalSeconds <= 0 {
					return fmt.Errorf("interval must be positive, got %v", intervalSeconds)
				}
				interval = time.Duration(intervalSeconds * float64(time.Second))
			}
			encoding := cfg.Clipboard.Encoding
			if cmd.Flags().Changed("encoding") {
				encoding = config.NormalizeEncoding(encodingFlag)
				if !config.SupportedEncoding(encoding) {
					return fmt.Errorf("unsupported clipboard encoding %q", encodingFlag)
				}
			}

			path, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve output path: %w", err)
			}
			if err := preflight.CheckOutputPath("Watch output", path).Err(); err != nil {
				return err
			}
			source, err := clipboard.NewSource(cfg.Clipboard.Backend, cfg.Clipboard.Command)
			if err != nil {
				return err
			}
			out, err := fileutil.OpenAppender(path)
			if err != nil {
				if errors.Is(err, fileutil.ErrLocked) {
					return fmt.Errorf("watch %s: %w", path, err)
				}
				return err
			}
			defer out.Close()

			p := newPrinter(cmd)
			p.tagged("watch", "clipboard -> %s (Ctrl+C to stop, encoding=%s, skip first snapshot)", path, encoding)

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			watcher := clipboard.NewWatcher(source,
				clipboard.Decoder{Preferred: encoding, Fallbacks: cfg.Clipboard.FallbackEncodings},
				out,
				clipboard.WithInterval(interval),
				clipboard.WithLogger(logger),
				clipboard.WithNotify(func(event clipboard.Event) { printWatchEvent(p, event) }),
			)
			logger.Info("watching clipboard",
				logging.String("output", path),
				logging.Duration("interval", interval),
				logging.String("encoding", encoding))

			err = watcher.Run(runCtx)
			p.tagged("watch", "stopped")
			logger.Info("watch stopped", logging.Int("blocks_added", watcher.Added()))
			return err
		},
	}

	cmd.Flags().Float64VarP(&intervalSeconds, "interval", "i", 0, "Polling interval seconds (default clipboard.interval_seconds)")
	cmd.Flags().StringVar(&encodingFlag, "encoding", "", "Preferred clipboard decoding encoding (default clipboard.encoding)")
	return cmd
}

func printWatchEvent(p printer, event clipboard.Event) {
	if event.ReadErr != nil {
		p.tagged(tagWarn, "clipboard read failed: %v", event.ReadErr)
		return
	}
	if event.Fallback != "" {
		p.tagged("watch", "fallback decoding used: %s", event.Fallback)
	}
	head := textutil.Truncate(textutil.FirstLine(event.Text), watchHeadWidth)
	switch event.Kind {
	case clipboard.EventPrimed:
		p.tagged("prime", "initial clipboard (not added): %s", head)
	case clipboard.EventAdded:
		p.tagged("add", "%s", head)
	}
}
