// server/internal/api/handlers/receipt_handler.go
package handlers

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"pharma-alert-api-server/internal/ledger"
	"pharma-alert-api-server/internal/socket"

	"github.com/gin-gonic/gin"
)

type ReceiptHandler struct {
	Ledger *ledger.Ledger
	Hub    *socket.Hub
}

func (h *ReceiptHandler) GetReceipt(c *gin.Context) {
	rec, err := h.Ledger.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Receipt not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve receipt"})
		}
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *ReceiptHandler) GetAllReceipts(c *gin.Context) {
	if reportID := c.Query("reportID"); reportID != "" {
		c.JSON(http.StatusOK, h.Ledger.ListByReport(reportID))
		return
	}
	c.JSON(http.StatusOK, h.Ledger.List())
}

// AcknowledgeReceipt records a pharmacy's confirmation. Acknowledging
// twice is a no-op returning the current receipt.
func (h *ReceiptHandler) AcknowledgeReceipt(c *gin.Context) {
	rec, err := h.Ledger.Acknowledge(c.Param("id"))
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Receipt not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to acknowledge receipt"})
		}
		return
	}

	// Notify dashboard clients that the pharmacy responded.
	event := map[string]interface{}{
		"event":   "receipt_acknowledged",
		"receipt": rec,
	}
	if eventJSON, err := json.Marshal(event); err == nil {
		h.Hub.Broadcast(eventJSON)
	}

	c.JSON(http.StatusOK, rec)
}

func (h *ReceiptHandler) GetStatistics(c *gin.Context) {
	c.JSON(http.StatusOK, h.Ledger.Statistics())
}

// ExportReceipts streams the full receipt ledger as CSV.
func (h *ReceiptHandler) ExportReceipts(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="receipts.csv"`)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"id", "report_id", "pharmacy_id", "status", "sent_at", "acked_at", "followups", "last_followup_at"})
	for _, rec := range h.Ledger.List() {
		ackedAt, lastFollowupAt := "", ""
		if rec.AcknowledgedAt != nil {
			ackedAt = rec.AcknowledgedAt.Format(time.RFC3339)
		}
		if rec.LastFollowupAt != nil {
			lastFollowupAt = rec.LastFollowupAt.Format(time.RFC3339)
		}
		_ = w.Write([]string{
			rec.ID,
			rec.ReportID,
			rec.PharmacyID,
			string(rec.Status),
			rec.SentAt.Format(time.RFC3339),
			ackedAt,
			strconv.Itoa(rec.Followups),
			lastFollowupAt,
		})
	}
	w.Flush()
}
