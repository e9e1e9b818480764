// Package rank implements the merge and ordering rules for leaderboard
// records: one record per name, highest score wins, earlier submission
// breaks ties.
package rank

import (
	"sort"

	"github.com/okian/podium/internal/domain/record"
)

// Merge reconciles a normalized submission against the current records.
// An existing record for name is updated only when score is strictly
// greater; an unknown name is appended with the given date. The returned
// bool reports whether anything changed. records is modified in place.
func Merge(records []record.Record, name string, score int, date string) ([]record.Record, bool) {
	for i := range records {
		if records[i].Name != name {
			continue
		}
		if score > records[i].Score {
			records[i].Score = score
			records[i].Date = date
			return records, true
		}
		return records, false
	}
	return append(records, record.Record{Name: name, Score: score, Date: date}), true
}

// Sort orders records by score descending, ties by date ascending. Dates
// written by this service are RFC3339 UTC, so string comparison matches
// chronological order.
func Sort(records []record.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Score != records[j].Score {
			return records[i].Score > records[j].Score
		}
		return records[i].Date < records[j].Date
	})
}

// Truncate bounds records to at most n entries.
func Truncate(records []record.Record, n int) []record.Record {
	if len(records) > n {
		return records[:n]
	}
	return records
}
