package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteManual writes blocks as a manual input file and returns its path.
func WriteManual(t testing.TB, dir string, blocks ...string) string {
	t.Helper()

	var b strings.Builder
	for _, block := range blocks {
		b.WriteString(">")
		b.WriteString(block)
		b.WriteString("\n")
	}
	return WriteText(t, filepath.Join(dir, "manual.txt"), b.String())
}

// WriteText writes content to path, creating parent directories.
func WriteText(t testing.TB, path, content string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// ReadText returns the content of path or fails the test.
func ReadText(t testing.TB, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
