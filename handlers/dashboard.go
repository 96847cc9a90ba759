package handlers

import (
	"net/http"
	"time"

	"fintrack-api/middleware"
	"fintrack-api/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	Service *services.DashboardService
}

func NewDashboardHandler(service *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{Service: service}
}

// Summary returns the aggregated dashboard data anchored to today in UTC.
func (h *DashboardHandler) Summary(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	summary, err := h.Service.Summary(c.Request.Context(), userID, time.Now().UTC())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
