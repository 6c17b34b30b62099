package logging

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

const timestampLayout = "2006-01-02 15:04:05.000"

func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.In(time.Local).Format(timestampLayout)
}

// plainValue renders v without quoting, for header fields.
func plainValue(v slog.Value) string {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return formatTimestamp(v.Time())
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		if strs, ok := v.Any().([]string); ok {
			return strings.Join(strs, ",")
		}
		return fmt.Sprint(v.Any())
	default:
		return v.String()
	}
}

// fieldValue renders v for a key=value pair, quoting when the value would
// not survive splitting on spaces.
func fieldValue(v slog.Value) string {
	s := plainValue(v)
	if needsQuotes(s) {
		return strconv.Quote(s)
	}
	return s
}

func needsQuotes(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if r <= ' ' || r == '"' || r == '=' {
			return true
		}
	}
	return false
}
