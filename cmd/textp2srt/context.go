package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"textp2srt/internal/config"
	"textp2srt/internal/logging"
	"textp2srt/internal/timeline"
	"textp2srt/internal/timelinedb"
)

type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevelFlag, logFormatFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(flagValue(c.configFlag))
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds the invocation logger. Flag overrides apply to a copy
// so the loaded config stays as written.
func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		effective := *cfg
		if level := flagValue(c.logLevelFlag); level != "" {
			effective.Logging.Level = strings.ToLower(level)
		}
		if format := flagValue(c.logFormatFlag); format != "" {
			effective.Logging.Format = strings.ToLower(format)
		}
		logger, err := logging.NewFromConfig(&effective, uuid.NewString())
		if err != nil {
			c.loggerErr = fmt.Errorf("init logging: %w", err)
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// commandLogger tags the invocation logger with the command name.
func (c *commandContext) commandLogger(cmd *cobra.Command) (*slog.Logger, error) {
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return logger.With(logging.String(logging.FieldCommand, cmd.Name())), nil
}

// withSession opens the timeline store and the active timeline for one
// command. Without an active timeline the command reports it and fails.
func (c *commandContext) withSession(cmd *cobra.Command, fn func(*timeline.Session, *slog.Logger) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.commandLogger(cmd)
	if err != nil {
		return err
	}

	store, err := timelinedb.Open(cfg)
	if err != nil {
		logging.ErrorWithContext(logger, "timeline store unavailable", "store_open",
			logging.String("database", cfg.Timeline.Database),
			logging.String(logging.FieldErrorHint, "check timeline.database or run timeline import"),
			logging.Error(err),
		)
		return fmt.Errorf("open timeline store: %w", err)
	}
	defer store.Close()

	session, err := timeline.Open(cmd.Context(), store, logger)
	if err != nil {
		if errors.Is(err, timeline.ErrNoTimeline) {
			newPrinter(cmd).tagged(tagError, "No active timeline")
			return &reportedError{err: err}
		}
		logging.ErrorWithContext(logger, "timeline unusable", "timeline_open",
			logging.String(logging.FieldErrorHint, "re-import the timeline snapshot with a valid frame rate"),
			logging.Error(err),
		)
		return err
	}
	logger.Debug("timeline opened", logging.Float64("fps", session.FrameRate()))
	defer func() {
		if failures := session.Failures(); failures > 0 {
			logger.Debug("timeline lookups degraded", logging.Int("failures", failures))
		}
	}()
	return fn(session, logger)
}

// resolveTrack returns the track argument at index, falling back to the
// configured default track.
func (c *commandContext) resolveTrack(args []string, index int) (string, error) {
	if index < len(args) && args[index] != "" {
		return args[index], nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	if cfg.Timeline.Track != "" {
		return cfg.Timeline.Track, nil
	}
	return "", errors.New("track name required: pass it as an argument or set timeline.track")
}

// reportedError marks a failure whose message was already printed to stdout.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

func flagValue(flag *string) string {
	if flag == nil {
		return ""
	}
	return strings.TrimSpace(*flag)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
