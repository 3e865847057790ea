// server/internal/models/user.go
package models

// User is an account that can call the API.
// Role is one of "admin", "operator" or "pharmacy"; pharmacy accounts
// carry the ID of the pharmacy they act for.
type User struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	Password   string `json:"-"` // bcrypt hash
	Role       string `json:"role"`
	PharmacyID string `json:"pharmacyID,omitempty"`
	Status     string `json:"status"`
}
