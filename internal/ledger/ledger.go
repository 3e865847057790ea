// server/internal/ledger/ledger.go
package ledger

import (
	"errors"
	"fmt"
	"iter"
	"sort"
	"sync"
	"time"

	"pharma-alert-api-server/internal/directory"
	"pharma-alert-api-server/internal/models"
)

// ErrNotFound is returned when a receipt id does not resolve.
var ErrNotFound = errors.New("receipt not found")

// Stats aggregates delivery state across the whole ledger.
// AcknowledgmentRate is acknowledged/total and 0 for an empty ledger.
type Stats struct {
	Total              int     `json:"total"`
	Sent               int     `json:"sent"`
	Acknowledged       int     `json:"acknowledged"`
	Failed             int     `json:"failed"`
	AcknowledgmentRate float64 `json:"acknowledgmentRate"`
}

type pairKey struct {
	reportID   string
	pharmacyID string
}

// Ledger is the single source of truth for delivery receipts. All
// reads and writes go through it; mutations are serialized by one
// mutex so concurrent sends for the same (report, pharmacy) pair
// converge to a single receipt.
type Ledger struct {
	mu         sync.Mutex
	pharmacies *directory.PharmacyDirectory
	reports    *directory.ReportRegistry
	receipts   map[string]*models.DeliveryReceipt
	byPair     map[pairKey]string
	order      []string // receipt ids in creation order

	now func() time.Time // overridable in tests
}

func New(pharmacies *directory.PharmacyDirectory, reports *directory.ReportRegistry) *Ledger {
	return &Ledger{
		pharmacies: pharmacies,
		reports:    reports,
		receipts:   make(map[string]*models.DeliveryReceipt),
		byPair:     make(map[pairKey]string),
		now:        time.Now,
	}
}

// RecordSend creates a receipt in SENT state for the pair, or returns
// the existing receipt unchanged if one already exists. The second
// return reports whether a new receipt was created. Both references
// must resolve in their registries.
func (l *Ledger) RecordSend(reportID, pharmacyID string) (models.DeliveryReceipt, bool, error) {
	if _, err := l.reports.Get(reportID); err != nil {
		return models.DeliveryReceipt{}, false, err
	}
	if _, err := l.pharmacies.Get(pharmacyID); err != nil {
		return models.DeliveryReceipt{}, false, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	key := pairKey{reportID: reportID, pharmacyID: pharmacyID}
	if id, ok := l.byPair[key]; ok {
		return *l.receipts[id], false, nil
	}

	rec := &models.DeliveryReceipt{
		ID:         models.NewID("REC"),
		ReportID:   reportID,
		PharmacyID: pharmacyID,
		Status:     models.StatusSent,
		SentAt:     l.now(),
	}
	l.receipts[rec.ID] = rec
	l.byPair[key] = rec.ID
	l.order = append(l.order, rec.ID)
	return *rec, true, nil
}

// Acknowledge transitions SENT or FAILED to ACKNOWLEDGED and stamps
// the acknowledgment time. Acknowledging an already-acknowledged
// receipt is a no-op returning the current receipt.
func (l *Ledger) Acknowledge(receiptID string) (models.DeliveryReceipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.receipts[receiptID]
	if !ok {
		return models.DeliveryReceipt{}, fmt.Errorf("%s: %w", receiptID, ErrNotFound)
	}
	if rec.Status == models.StatusAcknowledged {
		return *rec, nil
	}
	ackedAt := l.now()
	rec.Status = models.StatusAcknowledged
	rec.AcknowledgedAt = &ackedAt
	return *rec, nil
}

// MarkFailed transitions any non-terminal receipt to FAILED.
// ACKNOWLEDGED is terminal and is left untouched.
func (l *Ledger) MarkFailed(receiptID string) (models.DeliveryReceipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.receipts[receiptID]
	if !ok {
		return models.DeliveryReceipt{}, fmt.Errorf("%s: %w", receiptID, ErrNotFound)
	}
	if rec.Status != models.StatusAcknowledged {
		rec.Status = models.StatusFailed
	}
	return *rec, nil
}

// RecordFollowup increments the follow-up attempt counter and stamps
// the follow-up time. It is the single place attempts increase, so the
// counter grows exactly once per dispatched follow-up.
func (l *Ledger) RecordFollowup(receiptID string) (models.DeliveryReceipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.receipts[receiptID]
	if !ok {
		return models.DeliveryReceipt{}, fmt.Errorf("%s: %w", receiptID, ErrNotFound)
	}
	at := l.now()
	rec.Followups++
	rec.LastFollowupAt = &at
	return *rec, nil
}

// Get returns a copy of one receipt.
func (l *Ledger) Get(receiptID string) (models.DeliveryReceipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.receipts[receiptID]
	if !ok {
		return models.DeliveryReceipt{}, fmt.Errorf("%s: %w", receiptID, ErrNotFound)
	}
	return *rec, nil
}

// List returns all receipts in creation order.
func (l *Ledger) List() []models.DeliveryReceipt {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.DeliveryReceipt, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, *l.receipts[id])
	}
	return out
}

// ListByReport returns the receipts for one report in creation order.
func (l *Ledger) ListByReport(reportID string) []models.DeliveryReceipt {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := []models.DeliveryReceipt{}
	for _, id := range l.order {
		if rec := l.receipts[id]; rec.ReportID == reportID {
			out = append(out, *rec)
		}
	}
	return out
}

// HasReceiptsFor reports whether any receipt references the pharmacy.
// The directory consults this before removing a pharmacy.
func (l *Ledger) HasReceiptsFor(pharmacyID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, rec := range l.receipts {
		if rec.PharmacyID == pharmacyID {
			return true
		}
	}
	return false
}

// PendingForFollowup returns receipts in SENT or FAILED state whose
// last activity (follow-up time, or sent time if never followed up) is
// at least olderThan in the past. The sequence is ordered by pharmacy
// id for determinism and can be ranged over more than once; each pass
// reads a fresh snapshot of ledger state.
func (l *Ledger) PendingForFollowup(olderThan time.Duration) iter.Seq[models.DeliveryReceipt] {
	return func(yield func(models.DeliveryReceipt) bool) {
		l.mu.Lock()
		cutoff := l.now().Add(-olderThan)
		pending := make([]models.DeliveryReceipt, 0)
		for _, id := range l.order {
			rec := l.receipts[id]
			if rec.Status != models.StatusSent && rec.Status != models.StatusFailed {
				continue
			}
			ref := rec.SentAt
			if rec.LastFollowupAt != nil {
				ref = *rec.LastFollowupAt
			}
			if ref.After(cutoff) {
				continue
			}
			pending = append(pending, *rec)
		}
		l.mu.Unlock()

		sort.Slice(pending, func(i, j int) bool {
			return pending[i].PharmacyID < pending[j].PharmacyID
		})
		for _, rec := range pending {
			if !yield(rec) {
				return
			}
		}
	}
}

// Statistics computes aggregate delivery counts from current state.
func (l *Ledger) Statistics() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := Stats{Total: len(l.receipts)}
	for _, rec := range l.receipts {
		switch rec.Status {
		case models.StatusSent:
			s.Sent++
		case models.StatusAcknowledged:
			s.Acknowledged++
		case models.StatusFailed:
			s.Failed++
		}
	}
	if s.Total > 0 {
		s.AcknowledgmentRate = float64(s.Acknowledged) / float64(s.Total)
	}
	return s
}
