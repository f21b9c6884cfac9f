package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/minaorangina/skyjo/game"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS snapshots (
	key        TEXT PRIMARY KEY,
	round      INTEGER NOT NULL,
	state_json BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteGameStore keeps snapshots in a single SQLite table
type SQLiteGameStore struct {
	sqlDB *sql.DB
}

// OpenSQLite opens the database at path, creating the table if needed
func OpenSQLite(path string) (*SQLiteGameStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if _, err := sqlDB.Exec(sqliteSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create snapshots table: %w", err)
	}

	return &SQLiteGameStore{sqlDB: sqlDB}, nil
}

// Close releases the underlying SQLite connection
func (s *SQLiteGameStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *SQLiteGameStore) Save(ctx context.Context, key string, state game.State) error {
	key, err := checkKey(key)
	if err != nil {
		return err
	}
	data, err := Encode(state)
	if err != nil {
		return err
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO snapshots (key, round, state_json, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
		    round = excluded.round,
		    state_json = excluded.state_json,
		    updated_at = excluded.updated_at`,
		key,
		state.RoundNumber,
		data,
		time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (s *SQLiteGameStore) Load(ctx context.Context, key string) (game.State, bool, error) {
	key, err := checkKey(key)
	if err != nil {
		return game.State{}, false, err
	}

	var data []byte
	row := s.sqlDB.QueryRowContext(ctx, `SELECT state_json FROM snapshots WHERE key = ?`, key)
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return game.State{}, false, nil
		}
		return game.State{}, false, fmt.Errorf("load snapshot: %w", err)
	}

	state, err := Decode(key, data)
	if err != nil {
		return game.State{}, false, err
	}
	return state, true, nil
}

func (s *SQLiteGameStore) Clear(ctx context.Context, key string) error {
	key, err := checkKey(key)
	if err != nil {
		return err
	}

	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM snapshots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}
