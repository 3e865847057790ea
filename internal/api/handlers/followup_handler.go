// server/internal/api/handlers/followup_handler.go
package handlers

import (
	"net/http"
	"time"

	"pharma-alert-api-server/internal/followup"
	"pharma-alert-api-server/internal/models"

	"github.com/gin-gonic/gin"
)

type FollowupHandler struct {
	Scheduler *followup.Scheduler
	// DefaultThreshold is used when the request does not supply one.
	DefaultThreshold time.Duration
}

type RunFollowupsRequest struct {
	// Threshold overrides the configured follow-up threshold,
	// as a Go duration string (e.g. "24h", "0s").
	Threshold string `json:"threshold"`
}

func (h *FollowupHandler) RunFollowups(c *gin.Context) {
	threshold := h.DefaultThreshold

	var req RunFollowupsRequest
	if err := c.ShouldBindJSON(&req); err == nil && req.Threshold != "" {
		parsed, err := time.ParseDuration(req.Threshold)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid threshold duration: " + err.Error()})
			return
		}
		threshold = parsed
	}

	dispatched := h.Scheduler.Run(threshold)
	if dispatched == nil {
		dispatched = []models.DeliveryReceipt{}
	}

	c.JSON(http.StatusOK, gin.H{
		"followUpsSent": len(dispatched),
		"receipts":      dispatched,
	})
}
