// server/internal/followup/scheduler_test.go
package followup

import (
	"testing"

	"pharma-alert-api-server/internal/directory"
	"pharma-alert-api-server/internal/ledger"
	"pharma-alert-api-server/internal/models"
	"pharma-alert-api-server/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScheduler(t *testing.T, maxAttempts int) (*Scheduler, *ledger.Ledger, *notify.StubTransport) {
	t.Helper()

	pharmacies := directory.NewPharmacyDirectory()
	for _, p := range []models.Pharmacy{
		{ID: "P1", Name: "HealthFirst", Region: "NE", Type: "CHAIN", Active: true},
		{ID: "P2", Name: "Sierra General", Region: "W", Type: "HOSPITAL", Active: true},
	} {
		require.NoError(t, pharmacies.Add(p))
	}

	reports := directory.NewReportRegistry()
	require.NoError(t, reports.Add(models.DrugReport{ID: "R1", DrugName: "Cardiomax 50mg", Severity: models.SeverityCritical}))

	led := ledger.New(pharmacies, reports)
	transport := notify.NewStubTransport()
	return &Scheduler{Ledger: led, Transport: transport, MaxAttempts: maxAttempts}, led, transport
}

func TestRunMarksStaleSentReceiptsFailed(t *testing.T) {
	sched, led, transport := newScheduler(t, 0)

	_, _, err := led.RecordSend("R1", "P1")
	require.NoError(t, err)
	_, _, err = led.RecordSend("R1", "P2")
	require.NoError(t, err)

	dispatched := sched.Run(0)
	require.Len(t, dispatched, 2)
	for _, rec := range dispatched {
		assert.Equal(t, models.StatusFailed, rec.Status)
		assert.Equal(t, 1, rec.Followups)
	}
	assert.Len(t, transport.Sent(), 2)

	// A second pass re-drives the same receipts without creating new ones.
	dispatched = sched.Run(0)
	require.Len(t, dispatched, 2)
	for _, rec := range dispatched {
		assert.Equal(t, 2, rec.Followups)
	}
	assert.Len(t, led.List(), 2)
}

func TestRunSkipsAcknowledgedReceipts(t *testing.T) {
	sched, led, _ := newScheduler(t, 0)

	rec, _, err := led.RecordSend("R1", "P1")
	require.NoError(t, err)
	_, err = led.Acknowledge(rec.ID)
	require.NoError(t, err)

	dispatched := sched.Run(0)
	assert.Empty(t, dispatched)

	got, err := led.Get(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAcknowledged, got.Status)
	assert.Zero(t, got.Followups)
}

func TestRunHonorsMaxAttempts(t *testing.T) {
	sched, led, _ := newScheduler(t, 2)

	rec, _, err := led.RecordSend("R1", "P1")
	require.NoError(t, err)

	require.Len(t, sched.Run(0), 1)
	require.Len(t, sched.Run(0), 1)
	assert.Empty(t, sched.Run(0))

	got, err := led.Get(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Followups)
}

func TestRunLeavesFailedStatusOnTransportError(t *testing.T) {
	sched, led, transport := newScheduler(t, 0)
	transport.FailFor("P1")

	rec, _, err := led.RecordSend("R1", "P1")
	require.NoError(t, err)

	dispatched := sched.Run(0)
	require.Len(t, dispatched, 1)

	got, err := led.Get(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, got.Status)
	assert.Equal(t, 1, got.Followups)
}
