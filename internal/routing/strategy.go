// server/internal/routing/strategy.go
package routing

import (
	"log"

	"pharma-alert-api-server/internal/directory"
	"pharma-alert-api-server/internal/ledger"
	"pharma-alert-api-server/internal/models"
	"pharma-alert-api-server/internal/notify"
)

// Strategy selects the recipient pharmacies for a report and drives
// delivery through the ledger. Strategies never write receipt state
// themselves; the ledger stays the single owner. New routing criteria
// (e.g. severity-based escalation) are added as new Strategy
// implementations, not by touching the ledger or the entity model.
type Strategy interface {
	Name() string
	Route(report models.DrugReport, dir *directory.PharmacyDirectory, led *ledger.Ledger, transport notify.Transport) ([]models.DeliveryReceipt, error)
}

// deliver records a send for every recipient and pushes the alert over
// the transport. Routing is fault-tolerant per recipient: a transport
// failure marks that receipt FAILED and delivery to the remaining
// pharmacies continues. A recipient already in ACKNOWLEDGED state is
// not re-notified; its receipt is returned unchanged.
func deliver(report models.DrugReport, recipients []models.Pharmacy, led *ledger.Ledger, transport notify.Transport) []models.DeliveryReceipt {
	receipts := make([]models.DeliveryReceipt, 0, len(recipients))
	for _, pharmacy := range recipients {
		rec, _, err := led.RecordSend(report.ID, pharmacy.ID)
		if err != nil {
			// The recipient came out of the directory moments ago, so
			// this only fires if it was removed mid-dispatch.
			log.Printf("routing: record send for pharmacy %s failed: %v", pharmacy.ID, err)
			continue
		}

		if rec.Status != models.StatusAcknowledged {
			if err := transport.Notify(pharmacy.ID, report.ID); err != nil {
				log.Printf("routing: notify pharmacy %s failed: %v", pharmacy.ID, err)
				rec, _ = led.MarkFailed(rec.ID)
			}
		}
		receipts = append(receipts, rec)
	}
	return receipts
}
