package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	video_id      TEXT PRIMARY KEY,
	kind          TEXT NOT NULL,
	segment_count INTEGER NOT NULL,
	finished_at   TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS transcripts (
	video_id   TEXT NOT NULL,
	segment_id INTEGER NOT NULL,
	"start"    INTEGER NOT NULL,
	"end"      INTEGER NOT NULL,
	text       TEXT NOT NULL,
	kind       TEXT NOT NULL,
	PRIMARY KEY (video_id, segment_id)
);
`

// Open opens (creating if necessary) the local pipeline state database.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create state tables: %w", err)
	}
	return db, nil
}
