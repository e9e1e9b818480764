// Package record defines the leaderboard record and the rules applied to
// client-supplied names and scores before they reach the store.
package record

import (
	"fmt"
	"math"
	"strings"
)

// Limits on stored records.
const (
	// MaxNameLength is the maximum number of characters kept from a name.
	MaxNameLength = 15

	// MaxScore is the highest score the board will store.
	MaxScore = 999999

	// TopSize bounds the persisted leaderboard.
	TopSize = 10
)

// Record is a single player's best known score entry. JSON tags match the
// on-disk and wire format.
type Record struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Date  string `json:"date"`
}

// ValidateName rejects names that are empty after trimming. Validation runs
// on the raw input, before normalization.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name must be a non-empty string", ErrValidation)
	}
	return nil
}

// ValidateScore rejects non-finite scores. JSON cannot encode NaN or the
// infinities, but the store is callable outside the HTTP path.
func ValidateScore(score float64) error {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return fmt.Errorf("%w: score must be a finite number", ErrValidation)
	}
	return nil
}

// NormalizeName truncates to MaxNameLength runes, then trims. The order
// matters: whitespace exposed by truncation is removed too.
func NormalizeName(name string) string {
	runes := []rune(name)
	if len(runes) > MaxNameLength {
		runes = runes[:MaxNameLength]
	}
	return strings.TrimSpace(string(runes))
}

// ClampScore coerces a score into [0, MaxScore]. Out-of-range values are
// clamped silently, never rejected; fractions are truncated toward zero.
func ClampScore(score float64) int {
	if score < 0 {
		return 0
	}
	if score > MaxScore {
		return MaxScore
	}
	return int(score)
}
