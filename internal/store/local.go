package store

import (
	"database/sql"
	"fmt"

	"github.com/DeutscheWaffel/Videoteka-UP/internal/shared"
)

// KeyToken is the local-store key holding the bearer token string.
const KeyToken = "token"

// LocalStore is a key-value store over SQLite with last-write-wins
// semantics. One instance backs the token and both collection snapshots.
type LocalStore struct {
	db *sql.DB
}

// Open opens (and migrates) the local store at the given path.
// ":memory:" is accepted for tests.
func Open(path string) (*LocalStore, error) {
	db, err := shared.NewDatabase(path)
	if err != nil {
		return nil, err
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate local store: %w", err)
	}

	return NewLocalStore(db), nil
}

// NewLocalStore wraps an already-open, migrated database.
func NewLocalStore(db *sql.DB) *LocalStore {
	return &LocalStore{db: db}
}

// Get returns the value for key; ok is false when the key is absent.
func (s *LocalStore) Get(key string) (value string, ok bool, err error) {
	err = s.db.QueryRow("SELECT value FROM local_store WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return value, true, nil
}

// Set writes one key, replacing any previous value.
func (s *LocalStore) Set(key, value string) error {
	query := `
		INSERT INTO local_store (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`
	if _, err := s.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

// SetAll writes every entry in a single transaction, so related snapshots
// (cart and bookmarks) never persist half-updated.
func (s *LocalStore) SetAll(entries map[string]string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO local_store (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`
	for key, value := range entries {
		if _, err := tx.Exec(query, key, value); err != nil {
			return fmt.Errorf("failed to write key %s: %w", key, err)
		}
	}

	return tx.Commit()
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *LocalStore) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM local_store WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *LocalStore) Close() error {
	return s.db.Close()
}
