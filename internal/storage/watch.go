package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch calls onChange with the freshly loaded high score every time the
// file is written or recreated, until ctx is cancelled. The parent directory
// is watched rather than the file, so editors that replace the file on save
// and a file that does not exist yet are both picked up.
func (f *FileStore) Watch(ctx context.Context, onChange func(score int, err error)) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("storage: cannot create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("storage: cannot watch %s: %w", dir, err)
	}

	target := filepath.Clean(f.path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			onChange(f.Load())
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			onChange(0, fmt.Errorf("storage: watch %s: %w", target, err))
		}
	}
}
