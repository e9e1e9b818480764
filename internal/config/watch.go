package config

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// Watch monitors the YAML config file at path and calls onChange with the
// freshly loaded Config each time the file is written. It runs until ctx is
// cancelled.
//
// A failed reload (e.g. invalid YAML) keeps the previous config active;
// onChange is not called for it.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Editors often save via rename, which surfaces as Create.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			cfg, err := Load(ctx)
			if err != nil {
				continue
			}
			onChange(cfg)

			// Re-add the file in case an atomic save replaced the inode.
			_ = watcher.Add(path)

		case _, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
		}
	}
}
