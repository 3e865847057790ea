// server/internal/models/pharmacy.go
package models

import "time"

// Address is a structured object holding location details for a pharmacy.
type Address struct {
	FullText string `json:"fullText"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	ZipCode  string `json:"zipCode,omitempty"`
}

// Contact holds the primary contact channel for a pharmacy.
type Contact struct {
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type Pharmacy struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Region    string    `json:"region"` // e.g. "NE", "W", "SOUTH"
	Type      string    `json:"type"`   // e.g. "CHAIN", "INDEPENDENT", "HOSPITAL"
	Address   Address   `json:"address"`
	Contact   Contact   `json:"contact"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}
