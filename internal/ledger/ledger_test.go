// server/internal/ledger/ledger_test.go
package ledger

import (
	"testing"
	"time"

	"pharma-alert-api-server/internal/directory"
	"pharma-alert-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()

	pharmacies := directory.NewPharmacyDirectory()
	for _, p := range []models.Pharmacy{
		{ID: "P1", Name: "HealthFirst", Region: "NE", Type: "CHAIN", Active: true},
		{ID: "P2", Name: "Beacon Hill", Region: "NE", Type: "INDEPENDENT", Active: true},
		{ID: "P3", Name: "Sierra General", Region: "W", Type: "HOSPITAL", Active: true},
	} {
		require.NoError(t, pharmacies.Add(p))
	}

	reports := directory.NewReportRegistry()
	require.NoError(t, reports.Add(models.DrugReport{
		ID:       "R1",
		DrugName: "Cardiomax 50mg",
		Severity: models.SeverityCritical,
	}))

	return New(pharmacies, reports)
}

func TestRecordSendIdempotent(t *testing.T) {
	led := newTestLedger(t)

	first, created, err := led.RecordSend("R1", "P1")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.StatusSent, first.Status)

	second, created, err := led.RecordSend("R1", "P1")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, led.List(), 1)
}

func TestRecordSendUnknownReferences(t *testing.T) {
	led := newTestLedger(t)

	_, _, err := led.RecordSend("R1", "no-such-pharmacy")
	assert.ErrorIs(t, err, directory.ErrNotFound)

	_, _, err = led.RecordSend("no-such-report", "P1")
	assert.ErrorIs(t, err, directory.ErrNotFound)

	assert.Empty(t, led.List())
}

func TestAcknowledgeSetsTimestampExactlyWhenAcknowledged(t *testing.T) {
	led := newTestLedger(t)

	rec, _, err := led.RecordSend("R1", "P1")
	require.NoError(t, err)
	assert.Nil(t, rec.AcknowledgedAt)

	acked, err := led.Acknowledge(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAcknowledged, acked.Status)
	require.NotNil(t, acked.AcknowledgedAt)

	// Acknowledging again is a no-op and keeps the original timestamp.
	again, err := led.Acknowledge(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, *acked.AcknowledgedAt, *again.AcknowledgedAt)
}

func TestAcknowledgeUnknownReceipt(t *testing.T) {
	led := newTestLedger(t)

	_, err := led.Acknowledge("REC-MISSING")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMarkFailedTransitions(t *testing.T) {
	led := newTestLedger(t)

	rec, _, err := led.RecordSend("R1", "P1")
	require.NoError(t, err)

	failed, err := led.MarkFailed(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, failed.Status)

	// FAILED can still be acknowledged.
	acked, err := led.Acknowledge(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAcknowledged, acked.Status)

	// ACKNOWLEDGED is terminal; MarkFailed leaves it untouched.
	still, err := led.MarkFailed(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAcknowledged, still.Status)
}

func TestRecordFollowupIncrementsOnce(t *testing.T) {
	led := newTestLedger(t)

	rec, _, err := led.RecordSend("R1", "P1")
	require.NoError(t, err)
	assert.Zero(t, rec.Followups)
	assert.Nil(t, rec.LastFollowupAt)

	once, err := led.RecordFollowup(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, once.Followups)
	require.NotNil(t, once.LastFollowupAt)

	twice, err := led.RecordFollowup(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, twice.Followups)
}

func TestStatisticsEmptyLedger(t *testing.T) {
	led := newTestLedger(t)

	stats := led.Statistics()
	assert.Equal(t, Stats{}, stats)
	assert.Zero(t, stats.AcknowledgmentRate)
}

func TestStatisticsBroadcastScenario(t *testing.T) {
	led := newTestLedger(t)

	var first models.DeliveryReceipt
	for i, pharmacyID := range []string{"P1", "P2", "P3"} {
		rec, created, err := led.RecordSend("R1", pharmacyID)
		require.NoError(t, err)
		require.True(t, created)
		if i == 0 {
			first = rec
		}
	}

	_, err := led.Acknowledge(first.ID)
	require.NoError(t, err)

	stats := led.Statistics()
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Sent)
	assert.Equal(t, 1, stats.Acknowledged)
	assert.Equal(t, 0, stats.Failed)
	assert.InDelta(t, 1.0/3.0, stats.AcknowledgmentRate, 1e-9)
}

func TestPendingForFollowupOrderingAndRestart(t *testing.T) {
	led := newTestLedger(t)

	// Create out of pharmacy order on purpose.
	for _, pharmacyID := range []string{"P3", "P1", "P2"} {
		_, _, err := led.RecordSend("R1", pharmacyID)
		require.NoError(t, err)
	}

	// Acknowledged receipts are never pending.
	recs := led.ListByReport("R1")
	for _, rec := range recs {
		if rec.PharmacyID == "P2" {
			_, err := led.Acknowledge(rec.ID)
			require.NoError(t, err)
		}
	}

	seq := led.PendingForFollowup(0)

	collect := func() []string {
		var ids []string
		for rec := range seq {
			ids = append(ids, rec.PharmacyID)
		}
		return ids
	}

	assert.Equal(t, []string{"P1", "P3"}, collect())
	// The sequence is restartable: a second pass yields the same view.
	assert.Equal(t, []string{"P1", "P3"}, collect())
}

func TestPendingForFollowupThreshold(t *testing.T) {
	led := newTestLedger(t)

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	led.now = func() time.Time { return base }

	_, _, err := led.RecordSend("R1", "P1")
	require.NoError(t, err)

	// 30 minutes later, a 1h threshold is not yet due.
	led.now = func() time.Time { return base.Add(30 * time.Minute) }
	count := 0
	for range led.PendingForFollowup(time.Hour) {
		count++
	}
	assert.Zero(t, count)

	// After the threshold the receipt is due.
	led.now = func() time.Time { return base.Add(2 * time.Hour) }
	for rec := range led.PendingForFollowup(time.Hour) {
		assert.Equal(t, "P1", rec.PharmacyID)
		count++
	}
	assert.Equal(t, 1, count)

	// A follow-up resets the reference time.
	recs := led.List()
	_, err = led.RecordFollowup(recs[0].ID)
	require.NoError(t, err)

	count = 0
	for range led.PendingForFollowup(time.Hour) {
		count++
	}
	assert.Zero(t, count)
}

func TestHasReceiptsFor(t *testing.T) {
	led := newTestLedger(t)

	assert.False(t, led.HasReceiptsFor("P1"))

	_, _, err := led.RecordSend("R1", "P1")
	require.NoError(t, err)

	assert.True(t, led.HasReceiptsFor("P1"))
	assert.False(t, led.HasReceiptsFor("P2"))
}
