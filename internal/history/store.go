package history

import (
	"fmt"
	"strings"
	"time"
)

// Record is one cached resolution, keyed by the owning file signature.
// The JSON field names keep history files readable by earlier versions
// of the organizer.
type Record struct {
	Path       string `json:"ai_path"`
	SourcePath string `json:"fullpath"`
	Timestamp  int64  `json:"timestamp"`
	Context    string `json:"context,omitempty"`
}

// NewRecord stamps a record with the current time.
func NewRecord(path, sourcePath, context string) Record {
	return Record{
		Path:       path,
		SourcePath: sourcePath,
		Timestamp:  time.Now().Unix(),
		Context:    context,
	}
}

// Store is the durable suggestion cache shared by all workers. A changed
// file produces a new signature, so it never reuses a stale path.
type Store interface {
	// Lookup returns the record for a signature, or ok=false when absent.
	Lookup(signature string) (rec Record, ok bool)

	// Put overwrites the record for a signature and writes it to durable
	// storage before returning, so progress survives interruption.
	Put(signature string, rec Record) error

	// InvalidateAll clears in-memory and durable state.
	InvalidateAll() error

	// Close releases the underlying storage.
	Close() error
}

// Open creates the store for the configured backend, "json" or "sqlite".
func Open(backend, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", "json":
		return NewJSONStore(path), nil
	case "sqlite":
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unsupported history backend: %s", backend)
	}
}
