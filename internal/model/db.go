package model

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

var ErrNotFound = errors.New("record not found")

const schema = `
CREATE TABLE IF NOT EXISTS mints (
	id            TEXT PRIMARY KEY,
	network       TEXT NOT NULL,
	pair_id       TEXT NOT NULL,
	name          TEXT NOT NULL,
	symbol        TEXT NOT NULL,
	creator       TEXT NOT NULL,
	token         TEXT NOT NULL,
	unsigned_tx   TEXT NOT NULL,
	signed_tx     TEXT NOT NULL DEFAULT '',
	tx_signature  TEXT NOT NULL DEFAULT '',
	status        TEXT NOT NULL,
	create_time   INTEGER NOT NULL,
	update_time   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS mints_create_time ON mints (create_time);
`

// Open opens (creating if needed) the sqlite database at path and migrates it.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=rwc&_journal_mode=WAL&_busy_timeout=5000", path))
	if err != nil {
		return nil, err
	}

	if _, err = db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
