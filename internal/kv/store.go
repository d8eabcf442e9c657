package kv

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"

	_ "modernc.org/sqlite"
)

// Store persists one JSON document per named collection. Reads that miss or
// fail to decode leave the caller's default in place; failed writes are
// logged and the in-memory value stays authoritative for the session.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// single writer; the collections are mutated one synchronous operation
	// at a time
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`
    CREATE TABLE IF NOT EXISTS collections (
      key   TEXT PRIMARY KEY,
      value TEXT NOT NULL
    )
  `); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get decodes the stored value for key into out and reports whether a stored
// value was applied. When the key is absent or the payload does not parse,
// out keeps whatever default the caller seeded it with.
func (s *Store) Get(ctx context.Context, key string, out any) bool {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM collections WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if err != nil {
		s.logger.Warn("collection read failed", "key", key, "err", err)
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.logger.Warn("collection decode failed", "key", key, "err", err)
		return false
	}
	return true
}

// Set encodes value and durably replaces the document stored under key.
func (s *Store) Set(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("collection encode failed", "key", key, "err", err)
		return
	}
	_, err = s.db.ExecContext(ctx, `
    INSERT INTO collections (key, value) VALUES (?, ?)
    ON CONFLICT (key) DO UPDATE SET value = excluded.value
  `, key, string(raw))
	if err != nil {
		s.logger.Warn("collection write failed", "key", key, "err", err)
	}
}

// Delete removes the document stored under key.
func (s *Store) Delete(ctx context.Context, key string) {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM collections WHERE key = ?`, key); err != nil {
		s.logger.Warn("collection delete failed", "key", key, "err", err)
	}
}
