package logging

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// consoleHandler writes one line per record followed by indented hint and
// impact lines, so warnings stay readable next to command output.
type consoleHandler struct {
	mu        *sync.Mutex
	writer    io.Writer
	level     *slog.LevelVar
	attrs     []field
	groups    []string
	addSource bool
}

type field struct {
	key   string
	value slog.Value
}

func newConsoleHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	return &consoleHandler{mu: &sync.Mutex{}, writer: w, level: lvl, addSource: addSource}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	if record.Level < h.level.Level() {
		return nil
	}
	timestamp := record.Time
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	fields := make([]field, 0, len(h.attrs)+record.NumAttrs())
	fields = append(fields, h.attrs...)
	record.Attrs(func(attr slog.Attr) bool {
		fields = appendField(fields, h.groups, attr)
		return true
	})
	fields = lastWins(fields)

	var component, track, hint, impact string
	var buf bytes.Buffer
	buf.WriteString(formatTimestamp(timestamp))
	buf.WriteByte(' ')
	buf.WriteString(levelLabel(record.Level))

	var tail bytes.Buffer
	for _, f := range fields {
		switch f.key {
		case FieldComponent:
			component = plainValue(f.value)
			continue
		case FieldTrack:
			track = plainValue(f.value)
			continue
		case FieldErrorHint:
			hint = plainValue(f.value)
			continue
		case FieldImpact:
			impact = plainValue(f.value)
			continue
		case FieldInvocationID:
			if record.Level >= slog.LevelInfo {
				continue
			}
		}
		tail.WriteByte(' ')
		tail.WriteString(f.key)
		tail.WriteByte('=')
		tail.WriteString(fieldValue(f.value))
	}

	if component != "" {
		buf.WriteString(" [" + component + "]")
	}
	if track != "" {
		buf.WriteString(" track " + strconv.Quote(track))
	}
	message := strings.TrimSpace(record.Message)
	if message == "" {
		message = "(no message)"
	}
	buf.WriteString(" – ")
	buf.WriteString(message)
	buf.Write(tail.Bytes())
	if h.addSource {
		if src := record.Source(); src != nil {
			buf.WriteString(" (" + filepath.Base(src.File) + ":" + strconv.Itoa(src.Line) + ")")
		}
	}
	buf.WriteByte('\n')
	if impact != "" {
		buf.WriteString("    impact: " + impact + "\n")
	}
	if hint != "" {
		buf.WriteString("    hint: " + hint + "\n")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.writer.Write(buf.Bytes())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append([]field(nil), h.attrs...)
	for _, attr := range attrs {
		clone.attrs = appendField(clone.attrs, h.groups, attr)
	}
	return &clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string(nil), h.groups...), name)
	return &clone
}

// appendField flattens attr into dotted keys under groups.
func appendField(dst []field, groups []string, attr slog.Attr) []field {
	if attr.Equal(slog.Attr{}) {
		return dst
	}
	value := attr.Value.Resolve()
	path := groups
	if attr.Key != "" {
		path = append(append([]string(nil), groups...), attr.Key)
	}
	if value.Kind() == slog.KindGroup {
		for _, member := range value.Group() {
			dst = appendField(dst, path, member)
		}
		return dst
	}
	return append(dst, field{key: strings.Join(path, "."), value: value})
}

// lastWins keeps the first position of each key with its latest value.
func lastWins(fields []field) []field {
	if len(fields) < 2 {
		return fields
	}
	index := make(map[string]int, len(fields))
	out := fields[:0:0]
	for _, f := range fields {
		if f.key == "" {
			continue
		}
		if pos, ok := index[f.key]; ok {
			out[pos].value = f.value
			continue
		}
		index[f.key] = len(out)
		out = append(out, f)
	}
	return out
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
