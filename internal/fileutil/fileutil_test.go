package fileutil

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestAppenderAppendsWholeRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "manual.txt")

	app, err := OpenAppender(path)
	if err != nil {
		t.Fatal(err)
	}
	defer app.Close()

	for _, rec := range []string{">one\n", ">two\nlines\n"} {
		if err := app.Append([]byte(rec)); err != nil {
			t.Fatal(err)
		}
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != ">one\n>two\nlines\n" {
		t.Fatalf("content mismatch: got %q", got)
	}
}

func TestAppenderRejectsSecondOwner(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manual.txt")

	first, err := OpenAppender(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := OpenAppender(path); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatal(err)
	}

	second, err := OpenAppender(path)
	if err != nil {
		t.Fatalf("expected lock to be free after close, got %v", err)
	}
	if err := second.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestAppenderCloseKeepsLockFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manual.txt")

	first, err := OpenAppender(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := first.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path + ".lock"); err != nil {
		t.Fatalf("expected lock file to remain after close, got %v", err)
	}

	second, err := OpenAppender(path)
	if err != nil {
		t.Fatalf("expected existing lock file to be reacquired, got %v", err)
	}
	defer second.Close()
	if _, err := OpenAppender(path); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked while reacquired lock is held, got %v", err)
	}
}

func TestReplaceFileOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.srt")
	if err := os.WriteFile(path, []byte("old content that is longer"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := ReplaceFile(path, 0o644, func(w io.Writer) error {
		_, err := io.WriteString(w, "new")
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new" {
		t.Fatalf("content mismatch: got %q", got)
	}
}

func TestReplaceFileKeepsOriginalOnFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.srt")
	if err := os.WriteFile(path, []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("boom")
	err := ReplaceFile(path, 0o644, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "keep" {
		t.Fatalf("expected original content, got %q", got)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("expected temp file cleaned up, got %d entries", len(entries))
	}
}

func TestReplaceFileMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.srt")
	if err := ReplaceFile(path, 0o644, func(io.Writer) error { return nil }); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
