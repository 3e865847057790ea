// server/internal/notify/stub.go
package notify

import "sync"

// Delivery records one notification handed to the StubTransport.
type Delivery struct {
	PharmacyID string
	ReportID   string
}

// StubTransport is a deterministic in-memory transport for tests and
// the demo run. It records every notification and succeeds unless the
// pharmacy id has been added to the failure set.
type StubTransport struct {
	mu      sync.Mutex
	failFor map[string]bool
	sent    []Delivery
}

func NewStubTransport() *StubTransport {
	return &StubTransport{failFor: make(map[string]bool)}
}

// FailFor makes every subsequent notification to the pharmacy fail.
func (t *StubTransport) FailFor(pharmacyID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failFor[pharmacyID] = true
}

func (t *StubTransport) Notify(pharmacyID, reportID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.sent = append(t.sent, Delivery{PharmacyID: pharmacyID, ReportID: reportID})
	if t.failFor[pharmacyID] {
		return &TransportError{PharmacyID: pharmacyID, Reason: "simulated failure"}
	}
	return nil
}

// Sent returns every recorded notification, in dispatch order.
func (t *StubTransport) Sent() []Delivery {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Delivery, len(t.sent))
	copy(out, t.sent)
	return out
}
