package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tlforge/scbtext/pkg/scb"
)

// loadRecords reads an ordered translation list. The order is
// load-bearing: replacement pairs records with frames by position, so
// the list is never sorted or deduplicated.
func loadRecords(path string) ([]scb.Record, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []scb.Record
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}

// saveRecords writes the translation list as indented JSON, atomically.
func saveRecords(path string, records []scb.Record) error {
	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(path, b, 0o644)
}

// writeFileAtomic writes via a temp file and rename so a reader never
// sees a half-written file.
func writeFileAtomic(path string, data []byte, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, mode); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
