package pg

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fastsearch/internal/app/repository"
)

// FeedbackDAO is the PostgreSQL implementation of
// repository.FeedbackDAO, writing to the fastsearch schema.
type FeedbackDAO struct {
	db *sql.DB
}

func NewFeedbackDAO(db *sql.DB) *FeedbackDAO {
	return &FeedbackDAO{db: db}
}

func (d *FeedbackDAO) LogQuery(ctx context.Context, query string, ts time.Time) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO fastsearch.queries (query, timestamp) VALUES ($1, $2)`,
		query, ts,
	)
	if err != nil {
		return fmt.Errorf("failed to log query: %w", err)
	}
	return nil
}

func (d *FeedbackDAO) SaveFeedback(ctx context.Context, fb repository.Feedback) error {
	result, err := d.db.ExecContext(ctx,
		`INSERT INTO fastsearch.feedback (query, result_id, feedback, timestamp) VALUES ($1, $2, $3, $4)`,
		fb.Query, fb.ResultID, fb.Value, fb.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert feedback: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rows != 1 {
		return fmt.Errorf("feedback insert affected %d rows, expected 1", rows)
	}
	return nil
}

func (d *FeedbackDAO) Close() error {
	return d.db.Close()
}
