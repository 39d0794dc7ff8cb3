// Package routes wires the v1 endpoints to their handlers.
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fastsearch/internal/api/v1/handlers"
)

// RegisterRoutes registers all v1 API routes.
func RegisterRoutes(router *gin.RouterGroup, search handlers.SearchService) {
	searchHandler := handlers.NewSearchHandler(search)
	router.GET("/search", searchHandler.Search)
	router.POST("/feedback", searchHandler.Feedback)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
}
