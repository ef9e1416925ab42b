package background

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchFile_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "records.yaml")
	if err := os.WriteFile(path, []byte("records: []\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 1)
	if err := WatchFile(ctx, path, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}); err != nil {
		t.Fatalf("WatchFile() error = %v", err)
	}

	// unrelated files in the same directory are ignored
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-changed:
		t.Fatal("change reported for an unrelated file")
	case <-time.After(2 * reloadDebounce):
	}

	if err := os.WriteFile(path, []byte("records: [{a: 1}]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported after writing the watched file")
	}
}

func TestWatchFile_MissingDirectory(t *testing.T) {
	err := WatchFile(context.Background(), filepath.Join(t.TempDir(), "missing", "records.yaml"), func() {})
	if err == nil {
		t.Fatal("WatchFile() on a missing directory should fail")
	}
}
