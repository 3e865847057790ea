// server/internal/api/handlers/report_handler.go
package handlers

import (
	"errors"
	"net/http"
	"time"

	"pharma-alert-api-server/internal/directory"
	"pharma-alert-api-server/internal/models"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	Reports *directory.ReportRegistry
}

type CreateReportRequest struct {
	DrugName       string `json:"drugName" binding:"required"`
	AlertType      string `json:"alertType" binding:"required"`
	Severity       string `json:"severity" binding:"required"`
	Description    string `json:"description" binding:"required"`
	ActionRequired string `json:"actionRequired" binding:"required"`
	Manufacturer   string `json:"manufacturer"`
}

// CreateReport validates and registers a new drug safety report.
// Validation happens before any state is written.
func (h *ReportHandler) CreateReport(c *gin.Context) {
	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	severity, err := models.ParseSeverity(req.Severity)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report := models.DrugReport{
		ID:             models.NewID("RPT"),
		DrugName:       req.DrugName,
		AlertType:      req.AlertType,
		Severity:       severity,
		Description:    req.Description,
		ActionRequired: req.ActionRequired,
		Manufacturer:   req.Manufacturer,
		CreatedBy:      c.GetString("user_email"),
		CreatedAt:      time.Now(),
	}

	if err := h.Reports.Add(report); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, report)
}

func (h *ReportHandler) GetReport(c *gin.Context) {
	report, err := h.Reports.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve report"})
		}
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) GetAllReports(c *gin.Context) {
	c.JSON(http.StatusOK, h.Reports.List())
}
