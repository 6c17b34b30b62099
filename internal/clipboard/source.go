package clipboard

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
)

var commandContext = exec.CommandContext

// Source returns the current clipboard content as raw bytes.
type Source interface {
	Read(ctx context.Context) ([]byte, error)
}

// CommandSource runs an external command and captures its stdout.
type CommandSource struct {
	Args []string
}

// Read runs the command once.
func (s CommandSource) Read(ctx context.Context) ([]byte, error) {
	if len(s.Args) == 0 {
		return nil, errors.New("clipboard command is empty")
	}
	cmd := commandContext(ctx, s.Args[0], s.Args[1:]...) //nolint:gosec
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return out, fmt.Errorf("%s: %w: %s", s.Args[0], err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return out, fmt.Errorf("%s: %w", s.Args[0], err)
	}
	return out, nil
}

// SystemSource reads the native clipboard. The platform layer already
// returns text, so decoding always succeeds as UTF-8.
type SystemSource struct{}

// Read returns the clipboard text as UTF-8 bytes.
func (SystemSource) Read(context.Context) ([]byte, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return nil, err
	}
	return []byte(text), nil
}

// NewSource builds the source for a configured backend.
func NewSource(backend string, command []string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", "command":
		if len(command) == 0 {
			return nil, errors.New("clipboard command is empty")
		}
		return CommandSource{Args: append([]string(nil), command...)}, nil
	case "system":
		if clipboard.Unsupported {
			return nil, errors.New("system clipboard is not supported on this platform")
		}
		return SystemSource{}, nil
	default:
		return nil, fmt.Errorf("unknown clipboard backend %q", backend)
	}
}
