package preflight

import (
	"fmt"
	"path/filepath"
	"strings"

	"textp2srt/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Err converts a failed result into an error.
func (r Result) Err() error {
	if r.Passed {
		return nil
	}
	return fmt.Errorf("%s: %s", strings.ToLower(r.Name), r.Detail)
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	results = append(results, CheckDirectoryAccess("Timeline database directory", filepath.Dir(cfg.Timeline.Database)))

	if cfg.Logging.File != "" {
		results = append(results, CheckDirectoryAccess("Log directory", filepath.Dir(cfg.Logging.File)))
	}

	if cfg.Clipboard.Backend == config.BackendCommand && len(cfg.Clipboard.Command) > 0 {
		results = append(results, CheckCommand("Clipboard command", cfg.Clipboard.Command[0]))
	}

	return results
}
