package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateFilter(); err != nil {
		return err
	}
	if err := c.validateClipboard(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateFilter() error {
	if c.Filter.MaxEffectSeconds < 0 {
		return errors.New("filter.max_effect_seconds must be zero or positive")
	}
	if c.Filter.MinDistinctRunes < 0 {
		return errors.New("filter.min_distinct_runes must be zero or positive")
	}
	return nil
}

func (c *Config) validateClipboard() error {
	switch c.Clipboard.Backend {
	case BackendCommand:
		if len(c.Clipboard.Command) == 0 {
			return errors.New("clipboard.command must name an executable when clipboard.backend is \"command\"")
		}
	case BackendSystem:
	default:
		return fmt.Errorf("clipboard.backend: unsupported value %q (use %q or %q)", c.Clipboard.Backend, BackendCommand, BackendSystem)
	}
	if c.Clipboard.IntervalSeconds <= 0 {
		return errors.New("clipboard.interval_seconds must be positive")
	}
	if !SupportedEncoding(c.Clipboard.Encoding) {
		return fmt.Errorf("clipboard.encoding: unsupported value %q", c.Clipboard.Encoding)
	}
	for _, enc := range c.Clipboard.FallbackEncodings {
		if !SupportedEncoding(enc) {
			return fmt.Errorf("clipboard.fallback_encodings: unsupported value %q", enc)
		}
	}
	return nil
}

func (c *Config) validateOutput() error {
	if c.Output.PreviewLimit < 0 {
		return errors.New("output.preview_limit must be zero or positive")
	}
	if c.Output.DiagnoseLimit < 0 {
		return errors.New("output.diagnose_limit must be zero or positive")
	}
	if c.Output.TailSize < 0 {
		return errors.New("output.tail_size must be zero or positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}

// SupportedEncoding reports whether name (after normalization) is a clipboard
// encoding the watcher can decode.
func SupportedEncoding(name string) bool {
	_, ok := supportedClipboardEncodings[NormalizeEncoding(name)]
	return ok
}
