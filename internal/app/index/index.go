// Package index talks to the vector similarity index. The VectorIndex
// interface is the boundary consumed by the pipeline's writer and the
// search service; Qdrant is the production implementation.
package index

import (
	"context"

	"fastsearch/internal/app/model"
)

// Hit is one candidate returned by an approximate nearest-neighbor
// search, pre-reranking.
type Hit struct {
	ID      uint64
	Score   float32
	Payload map[string]any
}

// Point is one aligned (id, vector, payload) row for upsert.
type Point struct {
	ID      uint64
	Vector  []float32
	Payload model.SearchPayload
}

// VectorIndex is the subset of vector database operations the service
// consumes.
type VectorIndex interface {
	// EnsureCollection creates the named collection with the given
	// vector dimensionality and cosine distance if it does not exist.
	// It is safe against two writers racing to create the same missing
	// collection: a concurrent-create conflict is not an error.
	EnsureCollection(ctx context.Context, name string, dim int) error

	// Upsert writes one batch of points. Rows are keyed by positional
	// alignment between vectors and payloads; callers guarantee it.
	Upsert(ctx context.Context, name string, points []Point) error

	// Search runs an ANN query and returns up to limit candidates with
	// payloads, ranked by similarity.
	Search(ctx context.Context, name string, vector []float32, limit int) ([]Hit, error)
}
