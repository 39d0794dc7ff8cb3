package search

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fastsearch/internal/app/index"
	"fastsearch/internal/app/repository"
)

type fakeEmbedder struct {
	vector []float32
	err    error
}

func (f *fakeEmbedder) Embed(string) ([]float32, error) {
	return f.vector, f.err
}

// fakeReranker ranks candidates by descending length, a stand-in
// scoring function that is easy to predict in tests.
type fakeReranker struct {
	err error
}

func (f *fakeReranker) Rerank(_ string, candidates []string, k int) ([]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	indices := make([]int, len(candidates))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return len(candidates[indices[a]]) > len(candidates[indices[b]])
	})
	if k < len(indices) {
		indices = indices[:k]
	}
	return indices, nil
}

type fakeQueryIndex struct {
	hits      []index.Hit
	err       error
	lastLimit int
}

func (f *fakeQueryIndex) EnsureCollection(context.Context, string, int) error { return nil }

func (f *fakeQueryIndex) Upsert(context.Context, string, []index.Point) error { return nil }

func (f *fakeQueryIndex) Search(_ context.Context, _ string, _ []float32, limit int) ([]index.Hit, error) {
	f.lastLimit = limit
	return f.hits, f.err
}

type fakeQueryLog struct {
	logged chan string
	err    error
	saved  []repository.Feedback
}

func newFakeQueryLog() *fakeQueryLog {
	return &fakeQueryLog{logged: make(chan string, 1)}
}

func (f *fakeQueryLog) LogQuery(_ context.Context, query string, _ time.Time) error {
	f.logged <- query
	return f.err
}

func (f *fakeQueryLog) SaveFeedback(_ context.Context, fb repository.Feedback) error {
	f.saved = append(f.saved, fb)
	return f.err
}

func (f *fakeQueryLog) Close() error { return nil }

func newTestService(idx *fakeQueryIndex, queries *fakeQueryLog) *Service {
	return NewService(
		&fakeEmbedder{vector: []float32{0.1, 0.2}},
		&fakeReranker{},
		idx,
		queries,
		Config{Collection: "lectures", NumCandidates: 10, NumResults: 2},
		zap.NewNop(),
	)
}

func hit(id uint64, text string) index.Hit {
	return index.Hit{ID: id, Payload: map[string]any{
		"video_id":  "v1",
		"title":     "Lecture",
		"text":      text,
		"start":     float64(30),
		"thumbnail": "https://example.com/t.jpg",
	}}
}

func awaitLogged(t *testing.T, queries *fakeQueryLog) string {
	t.Helper()
	select {
	case query := <-queries.logged:
		return query
	case <-time.After(2 * time.Second):
		t.Fatal("query was never logged")
		return ""
	}
}

// Reranker order decides the response, regardless of retrieval order.
func TestSearchRanksAndProjects(t *testing.T) {
	idx := &fakeQueryIndex{hits: []index.Hit{
		hit(1, "short"),
		hit(2, "the longest candidate text of all"),
		hit(3, "medium length text"),
	}}
	queries := newFakeQueryLog()
	svc := newTestService(idx, queries)

	results, err := svc.Search(context.Background(), "tensor")
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, uint64(2), results[0].ID)
	assert.Equal(t, uint64(3), results[1].ID)
	assert.Equal(t, "the longest candidate text of all", results[0].Text)
	assert.Equal(t, 30, results[0].Start)
	assert.Equal(t, 10, idx.lastLimit)
	assert.Equal(t, "tensor", awaitLogged(t, queries))
}

func TestSearchEmptyIndex(t *testing.T) {
	queries := newFakeQueryLog()
	svc := newTestService(&fakeQueryIndex{}, queries)

	results, err := svc.Search(context.Background(), "anything")
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
	awaitLogged(t, queries)
}

func TestSearchFewerHitsThanResults(t *testing.T) {
	queries := newFakeQueryLog()
	svc := newTestService(&fakeQueryIndex{hits: []index.Hit{hit(7, "only one")}}, queries)

	results, err := svc.Search(context.Background(), "anything")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, uint64(7), results[0].ID)
	awaitLogged(t, queries)
}

// A failing query log must not fail the search.
func TestSearchSurvivesQueryLogFailure(t *testing.T) {
	queries := newFakeQueryLog()
	queries.err = errors.New("pg down")
	svc := newTestService(&fakeQueryIndex{hits: []index.Hit{hit(1, "text")}}, queries)

	results, err := svc.Search(context.Background(), "anything")
	require.NoError(t, err)
	assert.Len(t, results, 1)
	awaitLogged(t, queries)
}

func TestSearchRetrievalError(t *testing.T) {
	queries := newFakeQueryLog()
	svc := newTestService(&fakeQueryIndex{err: errors.New("qdrant unreachable")}, queries)

	_, err := svc.Search(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "candidate retrieval failed")
	awaitLogged(t, queries)
}

func TestFeedbackStampsTimestamp(t *testing.T) {
	queries := newFakeQueryLog()
	svc := newTestService(&fakeQueryIndex{}, queries)

	err := svc.Feedback(context.Background(), repository.Feedback{Query: "q", ResultID: "1", Value: 1})
	require.NoError(t, err)
	require.Len(t, queries.saved, 1)
	assert.False(t, queries.saved[0].Timestamp.IsZero())
}

func TestProjectHitOptionalFields(t *testing.T) {
	full := hit(1, "text")
	full.Payload["lesson"] = "Backprop"
	full.Payload["course"] = "Deep Learning"
	full.Payload["forum"] = "https://forum.example.com/t/1"

	result := projectHit(full)
	require.NotNil(t, result.Lesson)
	assert.Equal(t, "Backprop", *result.Lesson)
	require.NotNil(t, result.Course)
	assert.Equal(t, "Deep Learning", *result.Course)

	bare := projectHit(hit(2, "text"))
	assert.Nil(t, bare.Lesson)
	assert.Nil(t, bare.Course)
	assert.Nil(t, bare.Forum)
}

func TestPayloadIntCoercion(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  int
	}{
		{"float64", float64(61.0), 61},
		{"int64", int64(61), 61},
		{"int", 61, 61},
		{"string", "61", 61},
		{"missing", nil, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := map[string]any{}
			if tc.value != nil {
				payload["start"] = tc.value
			}
			assert.Equal(t, tc.want, payloadInt(payload, "start"))
		})
	}
}
