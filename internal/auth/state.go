package auth

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const phoneKey = "phone_number"

// StateDB persists the signed-in phone number across process runs so the
// next run can silently resume the session.
type StateDB struct {
	db *sql.DB
}

// OpenStateDB opens (or creates) the SQLite state database at dir/state.db.
func OpenStateDB(dir string) (*StateDB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "state.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS client_state (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating state table: %w", err)
	}

	return &StateDB{db: db}, nil
}

// PhoneNumber returns the persisted phone number, or "" when none is saved.
func (s *StateDB) PhoneNumber() (string, error) {
	var value string
	err := s.db.QueryRow(
		`SELECT value FROM client_state WHERE key = ?`, phoneKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading saved phone number: %w", err)
	}
	return value, nil
}

// SetPhoneNumber saves the phone number for session resumption.
func (s *StateDB) SetPhoneNumber(phone string) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO client_state (key, value) VALUES (?, ?)`,
		phoneKey, phone)
	if err != nil {
		return fmt.Errorf("saving phone number: %w", err)
	}
	return nil
}

// ClearPhoneNumber removes the persisted identity.
func (s *StateDB) ClearPhoneNumber() error {
	_, err := s.db.Exec(`DELETE FROM client_state WHERE key = ?`, phoneKey)
	if err != nil {
		return fmt.Errorf("clearing phone number: %w", err)
	}
	return nil
}

// Close closes the state database.
func (s *StateDB) Close() error {
	return s.db.Close()
}
