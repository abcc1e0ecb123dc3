package history

import (
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore persists records in a local SQLite database. Reads go
// through the connection pool; writes are serialized by a mutex so
// concurrent workers do not trip over the single-writer file lock.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS suggestions (
		signature TEXT PRIMARY KEY,
		ai_path   TEXT NOT NULL,
		fullpath  TEXT NOT NULL,
		timestamp INTEGER NOT NULL,
		context   TEXT NOT NULL DEFAULT ''
	);`
	_, err := s.db.Exec(schema)
	return err
}

// Lookup returns the record for a signature, or ok=false when absent.
func (s *SQLiteStore) Lookup(signature string) (Record, bool) {
	var rec Record
	row := s.db.QueryRow(
		`SELECT ai_path, fullpath, timestamp, context FROM suggestions WHERE signature = ?`,
		signature,
	)
	if err := row.Scan(&rec.Path, &rec.SourcePath, &rec.Timestamp, &rec.Context); err != nil {
		return Record{}, false
	}
	return rec, true
}

// Put upserts the record for a signature.
func (s *SQLiteStore) Put(signature string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO suggestions (signature, ai_path, fullpath, timestamp, context)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(signature) DO UPDATE SET
			ai_path   = excluded.ai_path,
			fullpath  = excluded.fullpath,
			timestamp = excluded.timestamp,
			context   = excluded.context`,
		signature, rec.Path, rec.SourcePath, rec.Timestamp, rec.Context,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert suggestion: %w", err)
	}
	return nil
}

// InvalidateAll removes every stored suggestion.
func (s *SQLiteStore) InvalidateAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM suggestions`); err != nil {
		return fmt.Errorf("failed to clear suggestions: %w", err)
	}
	return nil
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
