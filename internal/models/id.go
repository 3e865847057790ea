// server/internal/models/id.go
package models

import (
	"strings"

	"github.com/google/uuid"
)

// NewID generates a short, human-friendly unique identifier,
// e.g. NewID("RPT") -> "RPT-3F9A21BC".
func NewID(prefix string) string {
	short := strings.ToUpper(uuid.New().String()[:8])
	if prefix == "" {
		return short
	}
	return prefix + "-" + short
}
