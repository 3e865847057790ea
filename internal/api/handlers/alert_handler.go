// server/internal/api/handlers/alert_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"pharma-alert-api-server/internal/directory"
	"pharma-alert-api-server/internal/ledger"
	"pharma-alert-api-server/internal/models"
	"pharma-alert-api-server/internal/notify"
	"pharma-alert-api-server/internal/routing"
	"pharma-alert-api-server/internal/socket"

	"github.com/gin-gonic/gin"
)

type AlertHandler struct {
	Reports    *directory.ReportRegistry
	Pharmacies *directory.PharmacyDirectory
	Ledger     *ledger.Ledger
	Transport  notify.Transport
	Hub        *socket.Hub
}

type BroadcastAlertRequest struct {
	ReportID string `json:"reportID" binding:"required"`
}

type TargetedAlertRequest struct {
	ReportID string             `json:"reportID" binding:"required"`
	Selector directory.Selector `json:"selector" binding:"required"`
}

// BroadcastAlert routes a report to every active pharmacy.
func (h *AlertHandler) BroadcastAlert(c *gin.Context) {
	var req BroadcastAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.dispatch(c, req.ReportID, "broadcast", directory.Selector{})
}

// TargetedAlert routes a report to the pharmacies matching the
// selector. An empty match is a warning for the caller, not an error.
func (h *AlertHandler) TargetedAlert(c *gin.Context) {
	var req TargetedAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.dispatch(c, req.ReportID, "targeted", req.Selector)
}

func (h *AlertHandler) dispatch(c *gin.Context, reportID, kind string, sel directory.Selector) {
	report, err := h.Reports.Get(reportID)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve report"})
		}
		return
	}

	strategy, err := routing.New(kind, sel)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	receipts, err := strategy.Route(report, h.Pharmacies, h.Ledger, h.Transport)
	if err != nil {
		// Selector validation fails before any receipt is written.
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary := buildAlertSummary(report, strategy.Name(), receipts)
	if len(receipts) == 0 {
		summary["warning"] = "No pharmacies matched the target criteria"
	}

	// Push the dispatch to connected dashboard clients.
	event := map[string]interface{}{
		"event":   "alert_dispatched",
		"summary": summary,
	}
	if eventJSON, err := json.Marshal(event); err == nil {
		h.Hub.Broadcast(eventJSON)
	}

	c.JSON(http.StatusOK, summary)
}

func buildAlertSummary(report models.DrugReport, strategy string, receipts []models.DeliveryReceipt) gin.H {
	sent, failed := 0, 0
	for _, rec := range receipts {
		if rec.Status == models.StatusFailed {
			failed++
		} else {
			sent++
		}
	}
	return gin.H{
		"reportID":     report.ID,
		"drugName":     report.DrugName,
		"severity":     report.Severity,
		"strategy":     strategy,
		"totalRouted":  len(receipts),
		"successCount": sent,
		"failureCount": failed,
		"receipts":     receipts,
	}
}
