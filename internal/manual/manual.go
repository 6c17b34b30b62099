package manual

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

// Delimiter marks the first line of a block.
const Delimiter = ">"

// Parse splits r into trimmed, non-empty blocks.
func Parse(r io.Reader) ([]string, error) {
	reader := bufio.NewReader(r)
	var (
		blocks []string
		cur    []string
		open   bool
	)
	flush := func() {
		if !open {
			return
		}
		if block := strings.TrimSpace(strings.Join(cur, "\n")); block != "" {
			blocks = append(blocks, block)
		}
		cur = cur[:0]
	}
	for {
		raw, err := reader.ReadString('\n')
		if raw != "" || err == nil {
			line := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")
			if strings.HasPrefix(line, Delimiter) {
				flush()
				open = true
				cur = append(cur, strings.TrimLeftFunc(line[len(Delimiter):], unicode.IsSpace))
			} else if open {
				cur = append(cur, line)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read manual blocks: %w", err)
		}
	}
	flush()
	return blocks, nil
}

// ParseFile parses the block file at path. An empty path yields no blocks;
// open failures are returned unchanged.
func ParseFile(path string) ([]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Parse(file)
}

// FormatBlock trims text and prefixes the delimiter unless the text already
// starts with one. The result carries no trailing newline.
func FormatBlock(text string) string {
	block := strings.TrimSpace(text)
	if strings.HasPrefix(block, Delimiter) {
		return block
	}
	return Delimiter + block
}

// Write encodes blocks in the file format Parse reads.
func Write(w io.Writer, blocks []string) error {
	bw := bufio.NewWriter(w)
	for _, block := range blocks {
		if _, err := bw.WriteString(Delimiter + block + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
