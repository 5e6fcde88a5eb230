// Package persistence provides SQLite-based save-slot storage. The whole
// simulation state travels as one JSON blob per slot; there are no
// partial writes.
package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite connection for save storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS save_slots (
		slot TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Slot returns the save repository for one named slot.
func (db *DB) Slot(name string) *SlotRepo {
	return &SlotRepo{db: db, slot: name}
}

// SlotRepo reads and writes a single save slot.
type SlotRepo struct {
	db   *DB
	slot string
}

// LoadBlob returns the stored blob, or found=false when the slot is empty.
func (r *SlotRepo) LoadBlob() ([]byte, bool, error) {
	var data string
	err := r.db.conn.Get(&data, "SELECT data FROM save_slots WHERE slot = ?", r.slot)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read slot %q: %w", r.slot, err)
	}
	return []byte(data), true, nil
}

// SaveBlob overwrites the slot wholesale.
func (r *SlotRepo) SaveBlob(data []byte) error {
	_, err := r.db.conn.Exec(
		"INSERT OR REPLACE INTO save_slots (slot, data, updated_at) VALUES (?, ?, ?)",
		r.slot, string(data), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("write slot %q: %w", r.slot, err)
	}
	return nil
}

// DeleteBlob removes the slot.
func (r *SlotRepo) DeleteBlob() error {
	_, err := r.db.conn.Exec("DELETE FROM save_slots WHERE slot = ?", r.slot)
	if err != nil {
		return fmt.Errorf("delete slot %q: %w", r.slot, err)
	}
	return nil
}
