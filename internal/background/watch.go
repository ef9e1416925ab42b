package background

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce collapses the burst of events editors emit for one save
const reloadDebounce = 200 * time.Millisecond

// WatchFile calls onChange after the file at path is written, created or renamed into place.
// The parent directory is watched so atomic saves (write temp, rename) are seen.
// The watcher stops when ctx is cancelled.
func WatchFile(ctx context.Context, path string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		_ = watcher.Close()
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	go func() {
		defer func() { _ = watcher.Close() }()

		var pending <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				slog.Debug("watched file changed", "path", abs, "op", event.Op.String())
				pending = time.After(reloadDebounce)

			case <-pending:
				pending = nil
				onChange()

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("file watcher error", "path", abs, "error", err)
			}
		}
	}()

	slog.Info("watching file for changes", "path", abs)
	return nil
}
