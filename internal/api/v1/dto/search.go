// Package dto defines the request and response bodies of the v1 API.
package dto

import "fastsearch/internal/app/search"

// SearchResponse wraps the ranked results for one query.
type SearchResponse struct {
	Query   string          `json:"query"`
	Results []search.Result `json:"results"`
}

// FeedbackRequest is a user relevance judgment on one result. Value is
// +1 for helpful, -1 for not helpful.
type FeedbackRequest struct {
	Query    string `json:"query" binding:"required"`
	ResultID string `json:"result_id" binding:"required"`
	Value    int    `json:"feedback" binding:"required,oneof=1 -1"`
}

// FeedbackResponse acknowledges a stored judgment.
type FeedbackResponse struct {
	Status string `json:"status"`
}
