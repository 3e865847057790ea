// server/internal/api/handlers/user_handler.go
package handlers

import (
	"net/http"
	"time"

	"pharma-alert-api-server/internal/auth"
	"pharma-alert-api-server/internal/models"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	Users         *auth.UserStore
	JWTExpiration time.Duration
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, ok := h.Users.FindByEmail(req.Email)
	if !ok || !auth.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if user.Status != "active" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is not active"})
		return
	}

	token, err := auth.GenerateJWT(user.Email, user.Role, user.PharmacyID, h.JWTExpiration)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
		},
	})
}

type CreateUserRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Name       string `json:"name" binding:"required"`
	Password   string `json:"password" binding:"required,min=8"`
	Role       string `json:"role" binding:"required,oneof=admin operator pharmacy"`
	PharmacyID string `json:"pharmacyID"`
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Role == "pharmacy" && req.PharmacyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pharmacyID is required for pharmacy accounts"})
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Email:      req.Email,
		Name:       req.Name,
		Password:   hashedPassword,
		Role:       req.Role,
		PharmacyID: req.PharmacyID,
		Status:     "active",
	}
	if err := h.Users.Add(user); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"email":  user.Email,
		"role":   user.Role,
	})
}
