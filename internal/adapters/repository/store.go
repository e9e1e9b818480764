// Package repository defines the leaderboard store interface and its
// file-backed implementation.
package repository

import (
	"context"

	"github.com/okian/podium/internal/domain/record"
)

// Store provides access to the persisted leaderboard state. The backing
// file is the single source of truth; implementations hold no state across
// calls beyond the file itself.
type Store interface {
	// Initialize ensures the backing file exists and holds a valid JSON
	// array, self-healing by writing an empty one where possible. A write
	// failure here is fatal for the process.
	Initialize(ctx context.Context) error

	// Read returns the stored records exactly as persisted: no re-sort, no
	// truncation. A missing file yields an empty slice, not an error.
	Read(ctx context.Context) ([]record.Record, error)

	// Submit validates and normalizes a submission, merges it into the
	// stored state keeping the highest score per name, persists the result
	// bounded to the top entries, and returns the persisted state.
	Submit(ctx context.Context, name string, score float64) ([]record.Record, error)
}
