package static

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/Pesokrava/storefront/internal/pkg/logger"
)

// Watch calls onChange whenever the feed file at path is written, created or
// replaced. It blocks until ctx is cancelled. The parent directory is watched
// because editors and deploy tools usually replace the file via rename.
func Watch(ctx context.Context, path string, onChange func(), log *logger.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create feed watcher: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	log.WithFields(map[string]interface{}{
		"path": target,
	}).Info("Watching catalog feed for changes")

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
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				log.Debugf("Catalog feed changed: %s", event)
				onChange()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnf("Catalog feed watcher error: %v", err)
		}
	}
}
