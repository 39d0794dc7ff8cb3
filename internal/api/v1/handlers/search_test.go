package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fastsearch/internal/api/middleware"
	"fastsearch/internal/app/repository"
	"fastsearch/internal/app/search"
)

type fakeSearchService struct {
	results   []search.Result
	searchErr error

	feedback    []repository.Feedback
	feedbackErr error
	lastQuery   string
}

func (f *fakeSearchService) Search(_ context.Context, query string) ([]search.Result, error) {
	f.lastQuery = query
	return f.results, f.searchErr
}

func (f *fakeSearchService) Feedback(_ context.Context, fb repository.Feedback) error {
	f.feedback = append(f.feedback, fb)
	return f.feedbackErr
}

func newTestRouter(service SearchService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler(slog.Default()))

	handler := NewSearchHandler(service)
	router.GET("/api/v1/search", handler.Search)
	router.POST("/api/v1/feedback", handler.Feedback)
	return router
}

func TestSearchEndpoint(t *testing.T) {
	lesson := "Lesson 1"
	service := &fakeSearchService{results: []search.Result{{
		ID:      42,
		VideoID: "abc123",
		Title:   "Lesson 1",
		Text:    "gradient descent",
		Start:   61,
		Lesson:  &lesson,
	}}}
	router := newTestRouter(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?query=gradient+descent", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gradient descent", service.lastQuery)

	var body struct {
		Query   string          `json:"query"`
		Results []search.Result `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Results, 1)
	assert.Equal(t, uint64(42), body.Results[0].ID)
	assert.Equal(t, 61, body.Results[0].Start)
	require.NotNil(t, body.Results[0].Lesson)
}

func TestSearchEndpointMissingQuery(t *testing.T) {
	router := newTestRouter(&fakeSearchService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/search", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "query parameter is required")
}

func TestSearchEndpointServiceError(t *testing.T) {
	router := newTestRouter(&fakeSearchService{searchErr: errors.New("index down")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?query=x", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// internal detail must not leak to clients
	assert.NotContains(t, w.Body.String(), "index down")
}

func TestFeedbackEndpoint(t *testing.T) {
	service := &fakeSearchService{}
	router := newTestRouter(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback",
		strings.NewReader(`{"query": "tensors", "result_id": "42", "feedback": -1}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, service.feedback, 1)
	assert.Equal(t, "tensors", service.feedback[0].Query)
	assert.Equal(t, "42", service.feedback[0].ResultID)
	assert.Equal(t, -1, service.feedback[0].Value)
}

func TestFeedbackEndpointRejectsBadValue(t *testing.T) {
	service := &fakeSearchService{}
	router := newTestRouter(service)

	for _, body := range []string{
		`{"query": "q", "result_id": "1", "feedback": 0}`,
		`{"query": "q", "result_id": "1", "feedback": 5}`,
		`{"result_id": "1", "feedback": 1}`,
		`not json`,
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "body: %s", body)
	}
	assert.Empty(t, service.feedback)
}

func TestFeedbackEndpointStoreError(t *testing.T) {
	router := newTestRouter(&fakeSearchService{feedbackErr: errors.New("no row written")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback",
		strings.NewReader(`{"query": "q", "result_id": "1", "feedback": 1}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
