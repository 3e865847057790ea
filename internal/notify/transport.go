// server/internal/notify/transport.go
package notify

import "fmt"

// Transport delivers an alert notification to one pharmacy. Delivery
// is simulated: implementations record or push the notification, they
// do not reach an external carrier. A TransportError from Notify causes
// the caller to mark the receipt FAILED instead of SENT.
type Transport interface {
	Notify(pharmacyID, reportID string) error
}

// TransportError reports a simulated delivery failure to one pharmacy.
type TransportError struct {
	PharmacyID string
	Reason     string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: delivery to pharmacy %s failed: %s", e.PharmacyID, e.Reason)
}
