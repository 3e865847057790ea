// server/internal/followup/scheduler.go
package followup

import (
	"log"
	"time"

	"pharma-alert-api-server/internal/ledger"
	"pharma-alert-api-server/internal/models"
	"pharma-alert-api-server/internal/notify"
)

// Scheduler re-drives delivery for pharmacies that have not
// acknowledged an alert within a threshold. It never creates receipts;
// it only moves existing ones through the ledger.
type Scheduler struct {
	Ledger    *ledger.Ledger
	Transport notify.Transport
	// MaxAttempts caps follow-ups per receipt; 0 means unlimited.
	MaxAttempts int
}

// Run queries receipts pending past the threshold, marks stale SENT
// receipts FAILED, increments their follow-up counters and re-notifies
// the pharmacy. It returns the receipts it dispatched follow-ups for,
// ordered by pharmacy id.
func (s *Scheduler) Run(threshold time.Duration) []models.DeliveryReceipt {
	var dispatched []models.DeliveryReceipt
	for rec := range s.Ledger.PendingForFollowup(threshold) {
		if s.MaxAttempts > 0 && rec.Followups >= s.MaxAttempts {
			continue
		}

		if rec.Status == models.StatusSent {
			if _, err := s.Ledger.MarkFailed(rec.ID); err != nil {
				log.Printf("followup: mark failed %s: %v", rec.ID, err)
				continue
			}
		}

		updated, err := s.Ledger.RecordFollowup(rec.ID)
		if err != nil {
			log.Printf("followup: record follow-up %s: %v", rec.ID, err)
			continue
		}

		// A transport failure leaves the receipt FAILED; the next run
		// picks it up again.
		if err := s.Transport.Notify(rec.PharmacyID, rec.ReportID); err != nil {
			log.Printf("followup: notify pharmacy %s failed: %v", rec.PharmacyID, err)
		}

		dispatched = append(dispatched, updated)
	}
	return dispatched
}
