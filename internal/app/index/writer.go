package index

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"go.uber.org/zap"

	"fastsearch/internal/app/model"
)

// DefaultUpsertBatchSize matches the upstream indexing batch size.
const DefaultUpsertBatchSize = 512

// Writer upserts one run's embedding matrix and aligned payload table
// into the vector index.
//
// Alignment is a hard invariant: row i of payloads describes row i of
// vectors, and the two must never be reordered independently. Point ids
// are random, so re-indexing an already-indexed video accumulates
// duplicate records; deleting prior records first is the caller's call
// and is deliberately not automated here.
type Writer struct {
	index      VectorIndex
	collection string
	batchSize  int
	logger     *zap.Logger
	progress   *mpb.Progress
}

// NewWriter creates a writer for the target collection.
func NewWriter(index VectorIndex, collection string, batchSize int, logger *zap.Logger) *Writer {
	if batchSize <= 0 {
		batchSize = DefaultUpsertBatchSize
	}
	return &Writer{
		index:      index,
		collection: collection,
		batchSize:  batchSize,
		logger:     logger,
	}
}

// WithProgress attaches an mpb container for per-batch progress bars.
func (w *Writer) WithProgress(progress *mpb.Progress) *Writer {
	w.progress = progress
	return w
}

// Index ensures the collection exists and upserts all rows in batches
// of min(batchSize, rows). Zero rows is a no-op; mismatched row counts
// are an error, never silently truncated.
func (w *Writer) Index(ctx context.Context, vectors [][]float32, payloads []model.SearchPayload) error {
	if len(vectors) != len(payloads) {
		return fmt.Errorf("row count mismatch: %d vectors vs %d payloads", len(vectors), len(payloads))
	}
	if len(vectors) == 0 {
		return nil
	}

	dim := len(vectors[0])
	if err := w.index.EnsureCollection(ctx, w.collection, dim); err != nil {
		return err
	}

	batchSize := w.batchSize
	if len(vectors) < batchSize {
		batchSize = len(vectors)
	}

	var bar *mpb.Bar
	if w.progress != nil {
		bar = w.progress.New(int64(len(vectors)),
			mpb.BarStyle(),
			mpb.PrependDecorators(decor.Name("indexing")),
			mpb.AppendDecorators(decor.CountersNoUnit("%d / %d")),
		)
	}

	for start := 0; start < len(vectors); start += batchSize {
		end := start + batchSize
		if end > len(vectors) {
			end = len(vectors)
		}

		points := make([]Point, end-start)
		for i := start; i < end; i++ {
			points[i-start] = Point{
				ID:      rand.Uint64(),
				Vector:  vectors[i],
				Payload: payloads[i],
			}
		}

		if err := w.index.Upsert(ctx, w.collection, points); err != nil {
			return fmt.Errorf("upsert batch %d-%d failed: %w", start, end, err)
		}
		if bar != nil {
			bar.IncrBy(end - start)
		}
	}

	w.logger.Info("indexed rows",
		zap.String("collection", w.collection),
		zap.Int("rows", len(vectors)),
		zap.Int("dim", dim),
	)
	return nil
}
