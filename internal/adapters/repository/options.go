package repository

import (
	"os"
	"time"
)

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithPath sets the backing file path.
func WithPath(path string) Option {
	return func(s *FileStore) {
		if path != "" {
			s.path = path
		}
	}
}

// WithFileMode sets the mode used when creating the backing file.
func WithFileMode(mode os.FileMode) Option {
	return func(s *FileStore) {
		if mode != 0 {
			s.mode = mode
		}
	}
}

// WithClock overrides the time source used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *FileStore) {
		if now != nil {
			s.now = now
		}
	}
}
