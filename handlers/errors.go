package handlers

import (
	"errors"
	"log"
	"net/http"

	"fintrack-api/services"

	"github.com/gin-gonic/gin"
)

// respondServiceError translates a service failure into its HTTP status and
// structured body. Unexpected errors are logged server-side and surfaced as
// an opaque 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrCategoryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized for this resource"})
	case errors.Is(err, services.ErrAINotConfigured):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AI service configuration failed"})
	case errors.Is(err, services.ErrAIUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to generate AI advice", "details": err.Error()})
	default:
		log.Printf("unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred"})
	}
}
