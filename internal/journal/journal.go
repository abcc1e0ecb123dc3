// Package journal writes a per-run JSONL trace of every resolution
// step. The file is diagnostic only: append failures are swallowed so a
// full disk can never take a scan down with it.
package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry is one journal line. RefinedPath is null after the first pass
// and for runs with refinement disabled.
type Entry struct {
	TS          int64   `json:"ts"`
	Source      string  `json:"source"`
	Hint        string  `json:"hint"`
	FirstPath   string  `json:"first_path"`
	RefinedPath *string `json:"refined_path"`
	Status      string  `json:"status"`
}

// Writer appends entries to a run-scoped JSONL file. It satisfies the
// orchestrator's journal contract and is safe for concurrent use.
type Writer struct {
	path string

	mu sync.Mutex
	f  *os.File
}

// NewWriter creates a writer for a fresh run ID under dir. An empty dir
// falls back to the system temp directory. Nothing is created on disk
// until the first entry arrives.
func NewWriter(dir string) *Writer {
	if dir == "" {
		dir = os.TempDir()
	}
	name := fmt.Sprintf("sortd_scan_%s.jsonl", uuid.New().String())
	return &Writer{path: filepath.Join(dir, name)}
}

// Path returns the journal file location for display.
func (w *Writer) Path() string {
	return w.path
}

// Record appends one entry, stamped with the current time.
func (w *Writer) Record(source, hint, firstPath string, refinedPath *string, status string) {
	entry := Entry{
		TS:          time.Now().Unix(),
		Source:      source,
		Hint:        hint,
		FirstPath:   firstPath,
		RefinedPath: refinedPath,
		Status:      status,
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.f == nil {
		f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return
		}
		w.f = f
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return
	}
	_, _ = w.f.Write(append(line, '\n'))
}

// Close releases the underlying file. Safe to call when nothing was
// ever recorded.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.f == nil {
		return nil
	}
	err := w.f.Close()
	w.f = nil
	return err
}
