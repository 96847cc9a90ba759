package handlers

import (
	"net/http"
	"time"

	"fintrack-api/middleware"
	"fintrack-api/models"
	"fintrack-api/services"

	"github.com/gin-gonic/gin"
)

type AdviceHandler struct {
	Service *services.AdviceService
}

func NewAdviceHandler(service *services.AdviceService) *AdviceHandler {
	return &AdviceHandler{Service: service}
}

// Generate produces AI spending advice for an inclusive date range.
func (h *AdviceHandler) Generate(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.AdviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date and end_date are required"})
		return
	}

	start, err := time.ParseInLocation("2006-01-02", req.StartDate, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
		return
	}
	end, err := time.ParseInLocation("2006-01-02", req.EndDate, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
		return
	}

	advice, err := h.Service.Advise(c.Request.Context(), userID, start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"advice": advice})
}
