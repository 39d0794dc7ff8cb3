package repository

import (
	"context"
	"time"
)

// Feedback is one user relevance judgment for a search result.
// Value is +1 or -1.
type Feedback struct {
	Query     string
	ResultID  string
	Value     int
	Timestamp time.Time
}

// FeedbackDAO appends query-log and feedback rows to the relational
// store. Both writes are append-only; nothing in the service reads them
// back.
type FeedbackDAO interface {
	// LogQuery records a raw search query. Called off the request path;
	// failures are the caller's to swallow.
	LogQuery(ctx context.Context, query string, ts time.Time) error

	// SaveFeedback inserts one feedback row. The insert is expected to
	// affect exactly one row; anything else is an error.
	SaveFeedback(ctx context.Context, fb Feedback) error

	Close() error
}
