// server/internal/directory/directory.go
package directory

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"pharma-alert-api-server/internal/models"
)

var (
	// ErrNotFound is returned when a pharmacy or report id does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrInUse is returned when a pharmacy cannot be removed because
	// delivery receipts still reference it.
	ErrInUse = errors.New("pharmacy is referenced by delivery receipts")
)

// Selector narrows targeted routing to pharmacies matching ALL supplied
// fields. Zero-valued fields are ignored.
type Selector struct {
	Region string   `json:"region,omitempty"`
	Type   string   `json:"type,omitempty"`
	IDs    []string `json:"pharmacyIDs,omitempty"`
}

// IsZero reports whether no selector field was supplied.
func (s Selector) IsZero() bool {
	return s.Region == "" && s.Type == "" && len(s.IDs) == 0
}

// PharmacyDirectory is the in-memory registry of pharmacies.
// It preserves insertion order so broadcast routing is deterministic.
type PharmacyDirectory struct {
	mu    sync.RWMutex
	byID  map[string]*models.Pharmacy
	order []string
}

func NewPharmacyDirectory() *PharmacyDirectory {
	return &PharmacyDirectory{byID: make(map[string]*models.Pharmacy)}
}

// Add registers a pharmacy. The id must be unique.
func (d *PharmacyDirectory) Add(p models.Pharmacy) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.byID[p.ID]; exists {
		return fmt.Errorf("pharmacy %s already registered", p.ID)
	}
	d.byID[p.ID] = &p
	d.order = append(d.order, p.ID)
	return nil
}

func (d *PharmacyDirectory) Get(id string) (models.Pharmacy, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	p, ok := d.byID[id]
	if !ok {
		return models.Pharmacy{}, fmt.Errorf("pharmacy %s: %w", id, ErrNotFound)
	}
	return *p, nil
}

// List returns all pharmacies in insertion order.
func (d *PharmacyDirectory) List() []models.Pharmacy {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]models.Pharmacy, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, *d.byID[id])
	}
	return out
}

// ListActive returns active pharmacies in insertion order.
func (d *PharmacyDirectory) ListActive() []models.Pharmacy {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []models.Pharmacy
	for _, id := range d.order {
		if p := d.byID[id]; p.Active {
			out = append(out, *p)
		}
	}
	return out
}

// FindBy returns active pharmacies matching every supplied selector
// field. Matching on region and type is case-insensitive.
func (d *PharmacyDirectory) FindBy(sel Selector) []models.Pharmacy {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := []models.Pharmacy{}
	for _, id := range d.order {
		p := d.byID[id]
		if !p.Active {
			continue
		}
		if sel.Region != "" && !strings.EqualFold(p.Region, sel.Region) {
			continue
		}
		if sel.Type != "" && !strings.EqualFold(p.Type, sel.Type) {
			continue
		}
		if len(sel.IDs) > 0 && !slices.Contains(sel.IDs, p.ID) {
			continue
		}
		out = append(out, *p)
	}
	return out
}

// Deactivate marks a pharmacy inactive. Routing skips inactive
// pharmacies but existing receipts keep referencing them.
func (d *PharmacyDirectory) Deactivate(id string) (models.Pharmacy, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, ok := d.byID[id]
	if !ok {
		return models.Pharmacy{}, fmt.Errorf("pharmacy %s: %w", id, ErrNotFound)
	}
	p.Active = false
	return *p, nil
}

// Remove deletes a pharmacy outright. inUse is consulted first: a
// pharmacy referenced by delivery receipts may only be deactivated,
// never removed.
func (d *PharmacyDirectory) Remove(id string, inUse func(pharmacyID string) bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.byID[id]; !ok {
		return fmt.Errorf("pharmacy %s: %w", id, ErrNotFound)
	}
	if inUse != nil && inUse(id) {
		return fmt.Errorf("pharmacy %s: %w", id, ErrInUse)
	}
	delete(d.byID, id)
	d.order = slices.DeleteFunc(d.order, func(s string) bool { return s == id })
	return nil
}
