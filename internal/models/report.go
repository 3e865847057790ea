// server/internal/models/report.go
package models

import (
	"fmt"
	"strings"
	"time"
)

// Severity classifies how urgent a drug safety report is.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// ParseSeverity normalizes a user-supplied severity string.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(strings.ToUpper(strings.TrimSpace(s))) {
	case SeverityLow:
		return SeverityLow, nil
	case SeverityMedium:
		return SeverityMedium, nil
	case SeverityHigh:
		return SeverityHigh, nil
	case SeverityCritical:
		return SeverityCritical, nil
	}
	return "", fmt.Errorf("unknown severity %q (valid: LOW, MEDIUM, HIGH, CRITICAL)", s)
}

// Level returns a numeric severity for comparisons. Higher is more urgent.
func (s Severity) Level() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

// DrugReport is a safety notice issued by the reporting authority.
// It is immutable after creation.
type DrugReport struct {
	ID             string    `json:"id"`
	DrugName       string    `json:"drugName"`
	AlertType      string    `json:"alertType"` // e.g. "RECALL", "SAFETY_WARNING", "CONTRAINDICATION"
	Severity       Severity  `json:"severity"`
	Description    string    `json:"description"`
	ActionRequired string    `json:"actionRequired"`
	Manufacturer   string    `json:"manufacturer,omitempty"`
	CreatedBy      string    `json:"createdBy"`
	CreatedAt      time.Time `json:"createdAt"`
}
