// server/internal/notify/socket.go
package notify

import (
	"encoding/json"

	"pharma-alert-api-server/internal/directory"
	"pharma-alert-api-server/internal/socket"
)

// SocketTransport pushes alert payloads to pharmacy portals connected
// over WebSocket. An offline pharmacy is not a delivery failure: the
// hub drops the message and the receipt stays SENT, to be driven by
// the follow-up scheduler later.
type SocketTransport struct {
	Hub     *socket.Hub
	Reports *directory.ReportRegistry
}

func (t *SocketTransport) Notify(pharmacyID, reportID string) error {
	report, err := t.Reports.Get(reportID)
	if err != nil {
		return &TransportError{PharmacyID: pharmacyID, Reason: err.Error()}
	}

	payload := map[string]interface{}{
		"event":  "drug_safety_alert",
		"report": report,
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return &TransportError{PharmacyID: pharmacyID, Reason: err.Error()}
	}

	if err := t.Hub.Send(pharmacyID, payloadJSON); err != nil {
		return &TransportError{PharmacyID: pharmacyID, Reason: err.Error()}
	}
	return nil
}
