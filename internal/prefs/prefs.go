// Package prefs persists player preferences across runs in a small
// key-value table backed by SQLite.
package prefs

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName    = "chorus"
	dbFileName = "chorus.db"

	volumeKey     = "player-volume"
	defaultVolume = 80
)

// Store is a SQLite-backed preference store.
type Store struct {
	db *sql.DB
}

// Open opens the store at the default data path, creating it if needed.
func Open() (*Store, error) {
	path, err := xdg.DataFile(filepath.Join(appName, dbFileName))
	if err != nil {
		return nil, err
	}
	return OpenPath(path)
}

// OpenPath opens the store at an explicit path.
func OpenPath(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS prefs (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Volume returns the persisted volume, or the default when none has
// been saved yet. The stored value is clamped to [0,100] on read in
// case an older write left it out of range.
func (s *Store) Volume() (int, error) {
	raw, err := s.get(volumeKey)
	if err == sql.ErrNoRows {
		return defaultVolume, nil
	}
	if err != nil {
		return defaultVolume, err
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVolume, fmt.Errorf("corrupt volume value %q: %w", raw, err)
	}
	return clamp(v), nil
}

// SetVolume persists the volume, clamped to [0,100].
func (s *Store) SetVolume(v int) error {
	return s.set(volumeKey, strconv.Itoa(clamp(v)))
}

func (s *Store) get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM prefs WHERE key = ?`, key).Scan(&value)
	return value, err
}

func (s *Store) set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO prefs (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
