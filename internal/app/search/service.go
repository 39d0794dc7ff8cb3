// Package search implements the query-time pipeline: embed the query,
// fetch ANN candidates from the vector index, rerank them with the
// cross-encoder, and project the winners into API results.
package search

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"fastsearch/internal/app/index"
	"fastsearch/internal/app/repository"
)

// Embedder embeds one query string.
type Embedder interface {
	Embed(text string) ([]float32, error)
}

// Reranker returns the indices of the k most relevant candidates for
// the query, highest relevance first.
type Reranker interface {
	Rerank(query string, candidates []string, k int) ([]int, error)
}

// Result is one search hit as served to the frontend.
type Result struct {
	ID        uint64  `json:"id"`
	VideoID   string  `json:"video_id"`
	Title     string  `json:"title"`
	Text      string  `json:"text"`
	Start     int     `json:"start"`
	Thumbnail string  `json:"thumbnail"`
	Lesson    *string `json:"lesson"`
	Course    *string `json:"course"`
	Forum     *string `json:"forum"`
}

// Config bounds the candidate set and the final ranking size.
// NumCandidates >= NumResults is enforced by config validation at
// startup, not re-checked per request.
type Config struct {
	Collection    string
	NumCandidates int
	NumResults    int
}

// Service composes retriever, reranker and result projection. All
// dependencies are long-lived handles constructed once at process start.
type Service struct {
	embedder Embedder
	reranker Reranker
	idx      index.VectorIndex
	queries  repository.FeedbackDAO
	cfg      Config
	logger   *zap.Logger
}

func NewService(embedder Embedder, reranker Reranker, idx index.VectorIndex, queries repository.FeedbackDAO, cfg Config, logger *zap.Logger) *Service {
	return &Service{
		embedder: embedder,
		reranker: reranker,
		idx:      idx,
		queries:  queries,
		cfg:      cfg,
		logger:   logger,
	}
}

// Search finds lecture segments relevant to the query. The raw query is
// logged asynchronously; log failures never reach the caller.
func (s *Service) Search(ctx context.Context, query string) ([]Result, error) {
	go s.logQuery(query)

	vector, err := s.embedder.Embed(query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	hits, err := s.idx.Search(ctx, s.cfg.Collection, vector, s.cfg.NumCandidates)
	if err != nil {
		return nil, fmt.Errorf("candidate retrieval failed: %w", err)
	}
	if len(hits) == 0 {
		return []Result{}, nil
	}

	candidates := make([]string, len(hits))
	for i, hit := range hits {
		candidates[i] = payloadString(hit.Payload, "text")
	}

	k := s.cfg.NumResults
	if k > len(hits) {
		k = len(hits)
	}

	ranked, err := s.reranker.Rerank(query, candidates, k)
	if err != nil {
		return nil, fmt.Errorf("reranking failed: %w", err)
	}

	results := make([]Result, 0, len(ranked))
	for _, idx := range ranked {
		results = append(results, projectHit(hits[idx]))
	}
	return results, nil
}

// Feedback records a user relevance judgment. Unlike query logging this
// runs on the request path and its failure is surfaced.
func (s *Service) Feedback(ctx context.Context, fb repository.Feedback) error {
	if fb.Timestamp.IsZero() {
		fb.Timestamp = time.Now()
	}
	return s.queries.SaveFeedback(ctx, fb)
}

// logQuery runs detached from the request; it gets its own deadline and
// swallows failures.
func (s *Service) logQuery(query string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.queries.LogQuery(ctx, query, time.Now()); err != nil {
		s.logger.Warn("query log write failed", zap.Error(err))
	}
}

// projectHit maps an index hit onto the response shape, coercing the
// start offset to a whole number of seconds.
func projectHit(hit index.Hit) Result {
	return Result{
		ID:        hit.ID,
		VideoID:   payloadString(hit.Payload, "video_id"),
		Title:     payloadString(hit.Payload, "title"),
		Text:      payloadString(hit.Payload, "text"),
		Start:     payloadInt(hit.Payload, "start"),
		Thumbnail: payloadString(hit.Payload, "thumbnail"),
		Lesson:    payloadOptString(hit.Payload, "lesson"),
		Course:    payloadOptString(hit.Payload, "course"),
		Forum:     payloadOptString(hit.Payload, "forum"),
	}
}

func payloadString(payload map[string]any, key string) string {
	if value, ok := payload[key].(string); ok {
		return value
	}
	return ""
}

func payloadOptString(payload map[string]any, key string) *string {
	if value, ok := payload[key].(string); ok && value != "" {
		return &value
	}
	return nil
}

// payloadInt tolerates the numeric types a payload round-trip can
// produce.
func payloadInt(payload map[string]any, key string) int {
	switch value := payload[key].(type) {
	case int:
		return value
	case int64:
		return int(value)
	case float64:
		return int(value)
	case float32:
		return int(value)
	case string:
		parsed, _ := strconv.Atoi(value)
		return parsed
	default:
		return 0
	}
}
