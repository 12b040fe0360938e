// Package store keeps game snapshots in SQLite. Writers name the version they
// last read, so two writers racing on one game cannot silently overwrite
// each other.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"hexhaven/internal/engine"
)

// NoSnapshot is the expected version for a game that has never been saved.
const NoSnapshot = -1

var (
	ErrNotFound      = errors.New("snapshot not found")
	ErrStaleSnapshot = errors.New("snapshot version changed")
)

// Store wraps a SQLite connection.
type Store struct {
	conn *sqlx.DB
}

// Summary is one row of the games listing.
type Summary struct {
	ID        string `db:"id" json:"id"`
	Version   int    `db:"version" json:"version"`
	Phase     string `db:"phase" json:"phase"`
	Winner    string `db:"winner" json:"winner,omitempty"`
	UpdatedAt int64  `db:"updated_at" json:"updated_at"` // unix ms
}

// Open opens or creates the database at path. ":memory:" works for tests
// that run on one connection.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	conn.SetMaxOpenConns(1)

	st := &Store{conn: conn}
	if err := st.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return st, nil
}

func (st *Store) Close() error {
	return st.conn.Close()
}

func (st *Store) migrate() error {
	_, err := st.conn.Exec(`
	CREATE TABLE IF NOT EXISTS games (
		id TEXT PRIMARY KEY,
		version INTEGER NOT NULL,
		phase TEXT NOT NULL,
		winner TEXT NOT NULL DEFAULT '',
		data BLOB NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_games_updated ON games(updated_at);
	`)
	return err
}

// Save writes s under gameID if the stored version still equals
// expectVersion. Pass NoSnapshot for the first save of a game.
func (st *Store) Save(ctx context.Context, gameID string, expectVersion int, s *engine.State) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}

	tx, err := st.conn.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var current int
	err = tx.GetContext(ctx, &current, "SELECT version FROM games WHERE id = ?", gameID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if expectVersion != NoSnapshot {
			return fmt.Errorf("game %s: %w", gameID, ErrStaleSnapshot)
		}
	case err != nil:
		return fmt.Errorf("read version: %w", err)
	case current != expectVersion:
		return fmt.Errorf("game %s at version %d, expected %d: %w", gameID, current, expectVersion, ErrStaleSnapshot)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO games (id, version, phase, winner, data, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		gameID, s.Version, s.Phase.String(), s.Winner, data, time.Now().UnixMilli(),
	); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return tx.Commit()
}

// Load returns the latest snapshot of gameID.
func (st *Store) Load(ctx context.Context, gameID string) (*engine.State, error) {
	var data []byte
	err := st.conn.GetContext(ctx, &data, "SELECT data FROM games WHERE id = ?", gameID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("game %s: %w", gameID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// List returns saved games, most recently updated first.
func (st *Store) List(ctx context.Context) ([]Summary, error) {
	var out []Summary
	err := st.conn.SelectContext(ctx, &out,
		"SELECT id, version, phase, winner, updated_at FROM games ORDER BY updated_at DESC")
	return out, err
}

// Delete removes a game. Deleting an unknown game is not an error.
func (st *Store) Delete(ctx context.Context, gameID string) error {
	_, err := st.conn.ExecContext(ctx, "DELETE FROM games WHERE id = ?", gameID)
	return err
}
