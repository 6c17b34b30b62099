package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeTimeline(); err != nil {
		return err
	}
	c.normalizeFilter()
	c.normalizeClipboard()
	c.normalizeOutput()
	return c.normalizeLogging()
}

func (c *Config) normalizeTimeline() error {
	if value, ok := os.LookupEnv(EnvTimelineDatabase); ok && strings.TrimSpace(value) != "" {
		c.Timeline.Database = value
	}
	if strings.TrimSpace(c.Timeline.Database) == "" {
		c.Timeline.Database = defaultTimelineDatabase
	}
	var err error
	if c.Timeline.Database, err = expandPath(strings.TrimSpace(c.Timeline.Database)); err != nil {
		return fmt.Errorf("timeline.database: %w", err)
	}
	c.Timeline.Track = strings.TrimSpace(c.Timeline.Track)
	if c.Timeline.Track == "" {
		if value, ok := os.LookupEnv(EnvTrack); ok {
			c.Timeline.Track = strings.TrimSpace(value)
		}
	}
	return nil
}

func (c *Config) normalizeFilter() {
	c.Filter.ExtraIgnore = dedupeStrings(c.Filter.ExtraIgnore, strings.TrimSpace)
	if c.Filter.MaxEffectSeconds == 0 {
		c.Filter.MaxEffectSeconds = defaultMaxEffectSeconds
	}
	if c.Filter.MinDistinctRunes == 0 {
		c.Filter.MinDistinctRunes = defaultMinDistinctRunes
	}
}

func (c *Config) normalizeClipboard() {
	c.Clipboard.Backend = strings.ToLower(strings.TrimSpace(c.Clipboard.Backend))
	if c.Clipboard.Backend == "" {
		c.Clipboard.Backend = defaultClipboardBackend
	}
	command := make([]string, 0, len(c.Clipboard.Command))
	for _, arg := range c.Clipboard.Command {
		if trimmed := strings.TrimSpace(arg); trimmed != "" {
			command = append(command, trimmed)
		}
	}
	if len(command) == 0 {
		command = append(command, defaultClipboardCommand...)
	}
	c.Clipboard.Command = command
	c.Clipboard.Encoding = NormalizeEncoding(c.Clipboard.Encoding)
	if c.Clipboard.Encoding == "" {
		c.Clipboard.Encoding = defaultClipboardEncoding
	}
	c.Clipboard.FallbackEncodings = dedupeStrings(c.Clipboard.FallbackEncodings, NormalizeEncoding)
	if len(c.Clipboard.FallbackEncodings) == 0 {
		c.Clipboard.FallbackEncodings = append([]string(nil), defaultFallbackEncodings...)
	}
}

func (c *Config) normalizeOutput() {
	if c.Output.PreviewLimit == 0 {
		c.Output.PreviewLimit = defaultPreviewLimit
	}
	if c.Output.DiagnoseLimit == 0 {
		c.Output.DiagnoseLimit = defaultDiagnoseLimit
	}
	if c.Output.TailSize == 0 {
		c.Output.TailSize = defaultTailSize
	}
}

func (c *Config) normalizeLogging() error {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch format {
	case "", "console":
		c.Logging.Format = defaultLogFormat
	case "json":
		c.Logging.Format = format
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.File) != "" {
		file, err := expandPath(strings.TrimSpace(c.Logging.File))
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = file
	}
	return nil
}

// NormalizeEncoding maps common spellings onto the canonical encoding names
// (utf-8, utf-16-le, shift_jis, mac_roman).
func NormalizeEncoding(name string) string {
	value := strings.ToLower(strings.TrimSpace(name))
	value = strings.ReplaceAll(value, " ", "-")
	switch value {
	case "utf8":
		return "utf-8"
	case "utf-16le", "utf16le", "utf16-le", "utf_16_le":
		return "utf-16-le"
	case "shift-jis", "sjis", "shiftjis", "cp932":
		return "shift_jis"
	case "mac-roman", "macroman", "macintosh":
		return "mac_roman"
	}
	return value
}

func dedupeStrings(values []string, canon func(string) string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		value = canon(value)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
