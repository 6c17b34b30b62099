package srt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"textp2srt/internal/fileutil"
	"textp2srt/internal/pairing"
	"textp2srt/internal/timecode"
)

// Encode writes one cue per entry: 1-based index, timecode range, text
// verbatim, blank separator.
func Encode(w io.Writer, entries []pairing.Entry) error {
	bw := bufio.NewWriter(w)
	for i, entry := range entries {
		bw.WriteString(strconv.Itoa(i + 1))
		bw.WriteByte('\n')
		bw.WriteString(timecode.Range(entry.Start, entry.End))
		bw.WriteByte('\n')
		bw.WriteString(entry.Text)
		bw.WriteString("\n\n")
	}
	return bw.Flush()
}

// Write replaces path with the encoded entries and returns how many cues
// were written. The previous file survives a failed write.
func Write(path string, entries []pairing.Entry) (int, error) {
	err := fileutil.ReplaceFile(path, 0o644, func(w io.Writer) error {
		return Encode(w, entries)
	})
	if err != nil {
		return 0, fmt.Errorf("write srt: %w", err)
	}
	return len(entries), nil
}
