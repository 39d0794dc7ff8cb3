package pg

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// GetConnection opens a PostgreSQL connection for the feedback store.
func GetConnection(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open feedback database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping feedback database: %w", err)
	}
	return db, nil
}
