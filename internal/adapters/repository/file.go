package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/okian/podium/internal/domain/record"
)

// fileHoldsArray reports whether path exists, is readable and parses as a
// JSON array of any shape.
func fileHoldsArray(path string) bool {
	b, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	var probe []json.RawMessage
	return json.Unmarshal(b, &probe) == nil
}

// loadRecords reads path into a record slice. A missing file is not an
// error and yields an empty slice; everything else wraps ErrRead.
func loadRecords(path string) ([]record.Record, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return []record.Record{}, nil
	}
	if err != nil {
		return nil, wrapRead("read", path, err)
	}
	var records []record.Record
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, wrapRead("decode", path, err)
	}
	if records == nil {
		records = []record.Record{}
	}
	return records, nil
}

// persistRecords overwrites path with the pretty-printed records, writing
// a temp file first and renaming over the target for best-effort atomicity.
func persistRecords(path string, records []record.Record, mode os.FileMode) error {
	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return wrapPersist("encode", path, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, mode); err != nil {
		return wrapPersist("write", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return wrapPersist("rename", path, err)
	}
	return nil
}

func wrapRead(op, path string, err error) error {
	return fmt.Errorf("%s %s: %w: %w", op, path, ErrRead, err)
}

func wrapPersist(op, path string, err error) error {
	return fmt.Errorf("%s %s: %w: %w", op, path, ErrPersist, err)
}
