// Package handlers implements the v1 HTTP handlers.
package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fastsearch/internal/api/errors"
	"fastsearch/internal/api/middleware"
	"fastsearch/internal/api/v1/dto"
	"fastsearch/internal/app/repository"
	"fastsearch/internal/app/search"
)

// SearchService is the slice of the search layer the handlers need.
type SearchService interface {
	Search(ctx context.Context, query string) ([]search.Result, error)
	Feedback(ctx context.Context, fb repository.Feedback) error
}

// SearchHandler serves query and feedback requests.
type SearchHandler struct {
	service SearchService
}

func NewSearchHandler(service SearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

// Search handles GET /api/v1/search?query=...
func (h *SearchHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		middleware.HandleError(c, errors.NewValidationError("query parameter is required", map[string]string{
			"query": "must not be empty",
		}))
		return
	}

	results, err := h.service.Search(c.Request.Context(), query)
	if err != nil {
		middleware.HandleError(c, errors.NewInternalError("search failed"))
		return
	}

	c.JSON(http.StatusOK, dto.SearchResponse{Query: query, Results: results})
}

// Feedback handles POST /api/v1/feedback.
func (h *SearchHandler) Feedback(c *gin.Context) {
	var req dto.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid feedback body", map[string]string{
			"body": err.Error(),
		}))
		return
	}

	fb := repository.Feedback{
		Query:    req.Query,
		ResultID: req.ResultID,
		Value:    req.Value,
	}
	if err := h.service.Feedback(c.Request.Context(), fb); err != nil {
		middleware.HandleError(c, errors.NewInternalError("failed to store feedback"))
		return
	}

	c.JSON(http.StatusOK, dto.FeedbackResponse{Status: "recorded"})
}
