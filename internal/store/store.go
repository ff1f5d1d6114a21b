// Package store is the local upsert store: one SQLite table of video
// rows keyed by the platform's video ID.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open opens (or creates) the SQLite database at path, switches it to WAL
// journaling and brings the schema up to date. The store assumes a single
// writer; SetMaxOpenConns(1) enforces it at the pool level.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	migrate(db)

	return db, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS videos (
		video_id          TEXT PRIMARY KEY,
		title             TEXT,
		channel           TEXT,
		channel_id        TEXT,
		published_at      TEXT,
		views             INTEGER,
		likes             INTEGER,
		comments          INTEGER,
		category          TEXT,
		duration          INTEGER,
		live_status       TEXT,
		url               TEXT,
		thumbnail         TEXT,
		first_seen_source TEXT,
		last_updated      TEXT,
		sentiment         TEXT,
		source_keyword    TEXT,
		serial            INTEGER UNIQUE
	)`)
	if err != nil {
		return err
	}

	_, err = db.Exec("CREATE INDEX IF NOT EXISTS idx_videos_published_at ON videos(published_at)")
	return err
}

// migrate adds columns introduced after the first schema version. A
// database created by an older version lacks them; adding them nullable
// is sufficient, no backfill. On an up-to-date schema the ALTER fails
// with a duplicate-column error, which is ignored.
func migrate(db *sql.DB) {
	for _, column := range []string{"sentiment TEXT", "source_keyword TEXT"} {
		_, _ = db.Exec("ALTER TABLE videos ADD COLUMN " + column)
	}
}
