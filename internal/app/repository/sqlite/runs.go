package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fastsearch/internal/app/model"
)

// RunDAO records per-video pipeline runs and the merged transcript that
// was indexed, for bookkeeping and export. Re-running a video replaces
// its local transcript copy (the vector index side still accumulates
// duplicates; see the writer).
type RunDAO struct {
	db *sql.DB
}

func NewRunDAO(db *sql.DB) *RunDAO {
	return &RunDAO{db: db}
}

// RecordRun saves the run outcome and the merged segments for a video
// in one transaction.
func (d *RunDAO) RecordRun(ctx context.Context, videoID string, kind model.SegmentKind, segments []model.Segment, finishedAt time.Time) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin run transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs (video_id, kind, segment_count, finished_at) VALUES (?, ?, ?, ?)`,
		videoID, string(kind), len(segments), finishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM transcripts WHERE video_id = ?`, videoID); err != nil {
		return fmt.Errorf("failed to clear prior transcript: %w", err)
	}

	for _, segment := range segments {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO transcripts (video_id, segment_id, "start", "end", text, kind) VALUES (?, ?, ?, ?, ?, ?)`,
			segment.VideoID, segment.SegmentID, segment.Start, segment.End, segment.Text, string(segment.Kind),
		)
		if err != nil {
			return fmt.Errorf("failed to save segment %d: %w", segment.SegmentID, err)
		}
	}

	return tx.Commit()
}

// LastRun returns when a video was last indexed, or ok=false if never.
func (d *RunDAO) LastRun(ctx context.Context, videoID string) (time.Time, bool, error) {
	var finishedAt time.Time
	err := d.db.QueryRowContext(ctx,
		`SELECT finished_at FROM runs WHERE video_id = ?`, videoID,
	).Scan(&finishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to look up run: %w", err)
	}
	return finishedAt, true, nil
}

// Transcript loads the stored merged transcript for a video in segment
// order.
func (d *RunDAO) Transcript(ctx context.Context, videoID string) ([]model.Segment, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT video_id, segment_id, "start", "end", text, kind FROM transcripts WHERE video_id = ? ORDER BY segment_id`,
		videoID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load transcript: %w", err)
	}
	defer rows.Close()

	var segments []model.Segment
	for rows.Next() {
		var segment model.Segment
		var kind string
		if err := rows.Scan(&segment.VideoID, &segment.SegmentID, &segment.Start, &segment.End, &segment.Text, &kind); err != nil {
			return nil, fmt.Errorf("failed to scan segment: %w", err)
		}
		segment.Kind = model.SegmentKind(kind)
		segments = append(segments, segment)
	}
	return segments, rows.Err()
}

func (d *RunDAO) Close() error {
	return d.db.Close()
}
