// server/internal/routing/targeted.go
package routing

import (
	"errors"

	"pharma-alert-api-server/internal/directory"
	"pharma-alert-api-server/internal/ledger"
	"pharma-alert-api-server/internal/models"
	"pharma-alert-api-server/internal/notify"
)

// ErrEmptySelector is returned before any ledger mutation when a
// targeted dispatch supplies no selector fields at all.
var ErrEmptySelector = errors.New("targeted routing requires at least one selector field (region, type or pharmacyIDs)")

// Targeted delivers a report to the active pharmacies matching every
// supplied selector field. A selector that matches no pharmacy is not
// an error: the strategy returns an empty receipt list and the caller
// surfaces a user-facing warning.
type Targeted struct {
	Selector directory.Selector
}

func (Targeted) Name() string { return "targeted" }

func (t Targeted) Route(report models.DrugReport, dir *directory.PharmacyDirectory, led *ledger.Ledger, transport notify.Transport) ([]models.DeliveryReceipt, error) {
	if t.Selector.IsZero() {
		return nil, ErrEmptySelector
	}
	return deliver(report, dir.FindBy(t.Selector), led, transport), nil
}
