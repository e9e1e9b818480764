package repository

import "errors"

// Sentinel kinds for store failures. Both are server-side conditions; the
// HTTP layer maps them to 500 with a generic message.
var (
	ErrRead    = errors.New("leaderboard read failed")
	ErrPersist = errors.New("leaderboard persist failed")
)
