package history

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// JSONStore keeps records in memory and mirrors every write to a single
// JSON file. The file is rewritten whole on each Put; a mutex keeps
// concurrent workers from interleaving writes.
type JSONStore struct {
	path string

	mu      sync.Mutex
	records map[string]Record
}

// NewJSONStore loads the history file at path. A missing or corrupt
// file starts an empty history rather than failing.
func NewJSONStore(path string) *JSONStore {
	s := &JSONStore{
		path:    path,
		records: make(map[string]Record),
	}
	if data, err := os.ReadFile(path); err == nil {
		_ = json.Unmarshal(data, &s.records)
	}
	return s
}

// Lookup returns the record for a signature, or ok=false when absent.
func (s *JSONStore) Lookup(signature string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[signature]
	return rec, ok
}

// Put overwrites the record and rewrites the history file.
func (s *JSONStore) Put(signature string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[signature] = rec
	return s.flushLocked()
}

// InvalidateAll clears all records and truncates the history file.
func (s *JSONStore) InvalidateAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]Record)
	return s.flushLocked()
}

// Close is a no-op; every Put already reached disk.
func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) flushLocked() error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	return nil
}
