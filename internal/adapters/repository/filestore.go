package repository

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/okian/podium/internal/domain/rank"
	"github.com/okian/podium/internal/domain/record"
	"github.com/okian/podium/pkg/metrics"
)

// Default backing file settings.
const (
	defaultPath = "leaderboard.json"
	defaultMode = os.FileMode(0o644)
)

// FileStore is the JSON-file-backed Store. Every operation reads, mutates
// and rewrites the file; the mutex serializes the read-modify-write cycle
// so concurrent submissions cannot lose updates. The external contract is
// identical with or without the lock.
type FileStore struct {
	mu   sync.Mutex
	path string
	mode os.FileMode
	now  func() time.Time
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a FileStore with the given options.
func NewFileStore(_ context.Context, opts ...Option) *FileStore {
	s := &FileStore{
		path: defaultPath,
		mode: defaultMode,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Initialize ensures the backing file holds a JSON array. Missing,
// unreadable or non-array content is overwritten with a compact empty
// array; only that write can fail.
func (s *FileStore) Initialize(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fileHoldsArray(s.path) {
		return nil
	}
	if err := os.WriteFile(s.path, []byte("[]"), s.mode); err != nil {
		return wrapPersist("initialize", s.path, err)
	}
	return nil
}

// Read returns the stored records as-is. A missing file degrades to an
// empty result; any other failure wraps ErrRead.
func (s *FileStore) Read(_ context.Context) ([]record.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	records, err := loadRecords(s.path)
	if err != nil {
		metrics.RecordStoreReadError()
		return nil, err
	}
	metrics.RecordStoreRead(float64(time.Since(start).Milliseconds()))
	return records, nil
}

// Submit merges a single submission into the persisted state.
//
// Validation happens before any file access; normalization (truncate then
// trim, clamp) is always applied. A corrupt or unreadable prior file does
// not block the submission: it degrades to an empty starting state.
func (s *FileStore) Submit(_ context.Context, name string, score float64) ([]record.Record, error) {
	if err := record.ValidateName(name); err != nil {
		return nil, err
	}
	if err := record.ValidateScore(score); err != nil {
		return nil, err
	}
	normName := record.NormalizeName(name)
	normScore := record.ClampScore(score)

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := loadRecords(s.path)
	if err != nil {
		current = []record.Record{}
	}

	date := s.now().UTC().Format(time.RFC3339)
	next, changed := rank.Merge(current, normName, normScore, date)
	if changed {
		rank.Sort(next)
		next = rank.Truncate(next, record.TopSize)
	} else {
		// The loaded state is persisted verbatim, even if it was stored
		// unsorted or longer than TopSize.
		metrics.RecordSubmissionNoop()
	}

	start := time.Now()
	if err := persistRecords(s.path, next, s.mode); err != nil {
		metrics.RecordStorePersistError()
		return nil, err
	}
	metrics.RecordStorePersist(float64(time.Since(start).Milliseconds()))
	return next, nil
}
