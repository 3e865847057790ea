// server/internal/models/models_test.go
package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in      string
		want    Severity
		wantErr bool
	}{
		{in: "CRITICAL", want: SeverityCritical},
		{in: "critical", want: SeverityCritical},
		{in: " high ", want: SeverityHigh},
		{in: "Medium", want: SeverityMedium},
		{in: "low", want: SeverityLow},
		{in: "urgent", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSeverity(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeverityLevelOrdering(t *testing.T) {
	assert.Greater(t, SeverityCritical.Level(), SeverityHigh.Level())
	assert.Greater(t, SeverityHigh.Level(), SeverityMedium.Level())
	assert.Greater(t, SeverityMedium.Level(), SeverityLow.Level())
	assert.Zero(t, Severity("bogus").Level())
}

func TestNewID(t *testing.T) {
	id := NewID("RPT")
	assert.True(t, strings.HasPrefix(id, "RPT-"))
	assert.Len(t, id, len("RPT-")+8)
	assert.Equal(t, strings.ToUpper(id), id)

	assert.NotEqual(t, NewID("RPT"), NewID("RPT"))
}

func TestDeliveryTime(t *testing.T) {
	sent := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	rec := DeliveryReceipt{SentAt: sent}

	_, ok := rec.DeliveryTime()
	assert.False(t, ok)

	acked := sent.Add(45 * time.Minute)
	rec.AcknowledgedAt = &acked
	d, ok := rec.DeliveryTime()
	require.True(t, ok)
	assert.Equal(t, 45*time.Minute, d)
}
