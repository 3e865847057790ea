// server/internal/models/receipt.go
package models

import "time"

// ReceiptStatus is the delivery state of one alert to one pharmacy.
type ReceiptStatus string

const (
	StatusSent         ReceiptStatus = "SENT"
	StatusAcknowledged ReceiptStatus = "ACKNOWLEDGED" // terminal
	StatusFailed       ReceiptStatus = "FAILED"
)

// DeliveryReceipt is the audit record of one alert's delivery to one
// pharmacy. Exactly one receipt exists per (report, pharmacy) pair.
// Receipts are created SENT and are never deleted.
type DeliveryReceipt struct {
	ID             string        `json:"id"`
	ReportID       string        `json:"reportID"`
	PharmacyID     string        `json:"pharmacyID"`
	Status         ReceiptStatus `json:"status"`
	SentAt         time.Time     `json:"sentAt"`
	AcknowledgedAt *time.Time    `json:"acknowledgedAt,omitempty"`
	Followups      int           `json:"followups"`
	LastFollowupAt *time.Time    `json:"lastFollowupAt,omitempty"`
}

// DeliveryTime reports how long the pharmacy took to acknowledge.
// The second return is false while the receipt is unacknowledged.
func (r DeliveryReceipt) DeliveryTime() (time.Duration, bool) {
	if r.AcknowledgedAt == nil {
		return 0, false
	}
	return r.AcknowledgedAt.Sub(r.SentAt), true
}
