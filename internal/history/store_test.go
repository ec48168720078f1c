package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openStore(t *testing.T, path string) *Store {
	t.Helper()
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "history.db"))
	ctx := context.Background()

	posts := []Entry{
		{Channel: "myChannel", Kind: KindText, Preview: "first", MessageID: 1},
		{Channel: "myChannel", Kind: KindPhoto, Preview: "second", MessageID: 2},
		{Channel: "other", Kind: KindText, Preview: "third", MessageID: 3},
	}
	for _, e := range posts {
		if err := store.Record(ctx, e); err != nil {
			t.Fatalf("Record() error: %v", err)
		}
	}

	entries, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}

	// Newest first.
	if entries[0].Preview != "third" || entries[1].Preview != "second" {
		t.Errorf("entries = [%s, %s], want [third, second]", entries[0].Preview, entries[1].Preview)
	}
	if entries[0].Channel != "other" || entries[0].Kind != KindText || entries[0].MessageID != 3 {
		t.Errorf("entry = %+v, want recorded fields", entries[0])
	}
	if entries[0].PostedAt.IsZero() {
		t.Error("PostedAt not filled on record")
	}
}

func TestRecentZeroLimit(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "history.db"))

	entries, err := store.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if entries != nil {
		t.Errorf("Recent(0) = %v, want nil", entries)
	}
}

func TestRecordPreservesTimestamp(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "history.db"))
	ctx := context.Background()

	postedAt := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	if err := store.Record(ctx, Entry{
		Channel:   "c",
		Kind:      KindText,
		MessageID: 1,
		PostedAt:  postedAt,
	}); err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	entries, err := store.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if !entries[0].PostedAt.Equal(postedAt) {
		t.Errorf("PostedAt = %v, want %v", entries[0].PostedAt, postedAt)
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if err := store.Record(ctx, Entry{Channel: "c", Kind: KindText, Preview: "kept", MessageID: 5}); err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	reopened := openStore(t, path)
	entries, err := reopened.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(entries) != 1 || entries[0].Preview != "kept" {
		t.Errorf("entries = %v, want the recorded entry to survive reopen", entries)
	}
}
