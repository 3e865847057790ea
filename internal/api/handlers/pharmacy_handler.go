// server/internal/api/handlers/pharmacy_handler.go
package handlers

import (
	"errors"
	"net/http"
	"time"

	"pharma-alert-api-server/internal/directory"
	"pharma-alert-api-server/internal/ledger"
	"pharma-alert-api-server/internal/models"

	"github.com/gin-gonic/gin"
)

type PharmacyHandler struct {
	Pharmacies *directory.PharmacyDirectory
	Ledger     *ledger.Ledger
}

type CreatePharmacyRequest struct {
	Name    string `json:"name" binding:"required"`
	Region  string `json:"region" binding:"required"`
	Type    string `json:"type" binding:"required"`
	Address struct {
		FullText string `json:"fullText" binding:"required"`
		City     string `json:"city"`
		State    string `json:"state"`
		ZipCode  string `json:"zipCode"`
	} `json:"address" binding:"required"`
	Contact struct {
		Email string `json:"email" binding:"required,email"`
		Phone string `json:"phone"`
	} `json:"contact" binding:"required"`
}

func (h *PharmacyHandler) CreatePharmacy(c *gin.Context) {
	var req CreatePharmacyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pharmacy := models.Pharmacy{
		ID:     models.NewID("PHA"),
		Name:   req.Name,
		Region: req.Region,
		Type:   req.Type,
		Address: models.Address{
			FullText: req.Address.FullText,
			City:     req.Address.City,
			State:    req.Address.State,
			ZipCode:  req.Address.ZipCode,
		},
		Contact: models.Contact{
			Email: req.Contact.Email,
			Phone: req.Contact.Phone,
		},
		Active:    true,
		CreatedAt: time.Now(),
	}

	if err := h.Pharmacies.Add(pharmacy); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, pharmacy)
}

func (h *PharmacyHandler) GetAllPharmacies(c *gin.Context) {
	if c.Query("active") == "true" {
		active := h.Pharmacies.ListActive()
		if active == nil {
			active = []models.Pharmacy{}
		}
		c.JSON(http.StatusOK, active)
		return
	}
	c.JSON(http.StatusOK, h.Pharmacies.List())
}

func (h *PharmacyHandler) GetPharmacyByID(c *gin.Context) {
	pharmacy, err := h.Pharmacies.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pharmacy not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve pharmacy"})
		}
		return
	}
	c.JSON(http.StatusOK, pharmacy)
}

// DeactivatePharmacy marks a pharmacy inactive. Routing skips it from
// then on; its receipts remain in the ledger untouched.
func (h *PharmacyHandler) DeactivatePharmacy(c *gin.Context) {
	pharmacy, err := h.Pharmacies.Deactivate(c.Param("id"))
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pharmacy not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate pharmacy"})
		}
		return
	}
	c.JSON(http.StatusOK, pharmacy)
}

// DeletePharmacy removes a pharmacy that no delivery receipt
// references. A referenced pharmacy can only be deactivated.
func (h *PharmacyHandler) DeletePharmacy(c *gin.Context) {
	id := c.Param("id")
	err := h.Pharmacies.Remove(id, h.Ledger.HasReceiptsFor)
	if err != nil {
		switch {
		case errors.Is(err, directory.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Pharmacy not found"})
		case errors.Is(err, directory.ErrInUse):
			c.JSON(http.StatusConflict, gin.H{"error": "Pharmacy has delivery receipts and can only be deactivated"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete pharmacy"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "pharmacyID": id})
}
