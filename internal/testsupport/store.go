package testsupport

import (
	"context"
	"testing"

	"textp2srt/internal/config"
	"textp2srt/internal/timeline"
	"textp2srt/internal/timelinedb"
)

// MustOpenStore opens a timelinedb.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *timelinedb.Store {
	t.Helper()

	store, err := timelinedb.Open(cfg)
	if err != nil {
		t.Fatalf("timelinedb.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SeedTimeline imports snap into the configured store and marks it current.
func SeedTimeline(t testing.TB, cfg *config.Config, snap *timeline.Snapshot) {
	t.Helper()

	store := MustOpenStore(t, cfg)
	if _, err := store.Import(context.Background(), snap); err != nil {
		t.Fatalf("import timeline: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}
}
