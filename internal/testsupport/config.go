package testsupport

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"textp2srt/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose timeline database lives in a unique temp
// directory. It applies any provided options after the defaults.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Timeline.Database = filepath.Join(base, "data", "timeline.db")
	cfgVal.Clipboard.IntervalSeconds = 0.01

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithTrack sets the default target track.
func WithTrack(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Timeline.Track = name
	}
}

// WithExtraIgnore appends ignore patterns to the filter section.
func WithExtraIgnore(patterns ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Filter.ExtraIgnore = append(b.cfg.Filter.ExtraIgnore, patterns...)
	}
}

// WithClipboardScript writes an executable shell script that prints each
// payload on successive invocations (repeating the last one) and points the
// command backend at it.
func WithClipboardScript(payloads ...string) ConfigOption {
	return func(b *configBuilder) {
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		counter := filepath.Join(binDir, "count")
		script := "#!/bin/sh\nn=$(cat " + counter + " 2>/dev/null || echo 0)\necho $((n+1)) > " + counter + "\ncase $n in\n"
		for i, payload := range payloads {
			if i == len(payloads)-1 {
				script += "*) printf '%s' '" + payload + "' ;;\n"
				break
			}
			script += strconv.Itoa(i) + ") printf '%s' '" + payload + "' ;;\n"
		}
		script += "esac\n"
		target := filepath.Join(binDir, "fakepaste")
		if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
			b.t.Fatalf("write clipboard stub: %v", err)
		}
		b.cfg.Clipboard.Backend = config.BackendCommand
		b.cfg.Clipboard.Command = []string{target}
	}
}
