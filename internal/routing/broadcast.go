// server/internal/routing/broadcast.go
package routing

import (
	"pharma-alert-api-server/internal/directory"
	"pharma-alert-api-server/internal/ledger"
	"pharma-alert-api-server/internal/models"
	"pharma-alert-api-server/internal/notify"
)

// Broadcast delivers a report to every active pharmacy in the
// directory, in directory insertion order.
type Broadcast struct{}

func (Broadcast) Name() string { return "broadcast" }

func (Broadcast) Route(report models.DrugReport, dir *directory.PharmacyDirectory, led *ledger.Ledger, transport notify.Transport) ([]models.DeliveryReceipt, error) {
	return deliver(report, dir.ListActive(), led, transport), nil
}
