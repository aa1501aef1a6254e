// Package persistence provides SQLite-based career save storage.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/pitchside/internal/game"
)

// ErrNoSave is returned by LoadLatest when the database holds no snapshot.
var ErrNoSave = errors.New("no saved game")

// snapshotRetention is how many snapshots stay in the database. Older
// rows are pruned on save so the file does not grow without bound.
const snapshotRetention = 10

// DB wraps a SQLite connection for career save persistence.
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
	CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		season INTEGER NOT NULL,
		week INTEGER NOT NULL,
		state_json TEXT NOT NULL,
		saved_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS career_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_season_week ON snapshots(season, week);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveState writes a full game snapshot and prunes old ones.
func (db *DB) SaveState(state *game.GameState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT INTO snapshots (season, week, state_json) VALUES (?, ?, ?)",
		state.League.CurrentSeason, state.League.CurrentWeek, string(raw),
	); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	if _, err := tx.Exec(
		`DELETE FROM snapshots WHERE id NOT IN
			(SELECT id FROM snapshots ORDER BY id DESC LIMIT ?)`,
		snapshotRetention,
	); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}

	if err := saveMetaTx(tx, "last_season", fmt.Sprintf("%d", state.League.CurrentSeason)); err != nil {
		return err
	}
	if err := saveMetaTx(tx, "last_week", fmt.Sprintf("%d", state.League.CurrentWeek)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	slog.Info("game saved",
		"season", state.League.CurrentSeason,
		"week", state.League.CurrentWeek,
		"bytes", len(raw),
	)
	return nil
}

// LoadLatest restores the most recent snapshot.
func (db *DB) LoadLatest() (*game.GameState, error) {
	var raw string
	err := db.conn.Get(&raw, "SELECT state_json FROM snapshots ORDER BY id DESC LIMIT 1")
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	var state game.GameState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("unmarshal state: %w", err)
	}
	return &state, nil
}

func saveMetaTx(tx *sqlx.Tx, key, value string) error {
	_, err := tx.Exec(
		"INSERT OR REPLACE INTO career_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// SaveMeta stores a key-value pair in career metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO career_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM career_meta WHERE key = ?", key)
	return value, err
}
