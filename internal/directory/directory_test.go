// server/internal/directory/directory_test.go
package directory

import (
	"testing"

	"pharma-alert-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDirectory(t *testing.T) *PharmacyDirectory {
	t.Helper()

	dir := NewPharmacyDirectory()
	for _, p := range []models.Pharmacy{
		{ID: "P1", Name: "HealthFirst", Region: "NE", Type: "CHAIN", Active: true},
		{ID: "P2", Name: "Beacon Hill", Region: "NE", Type: "INDEPENDENT", Active: true},
		{ID: "P3", Name: "Sierra General", Region: "W", Type: "HOSPITAL", Active: true},
		{ID: "P4", Name: "Gulf Coast", Region: "SOUTH", Type: "INDEPENDENT", Active: false},
	} {
		require.NoError(t, dir.Add(p))
	}
	return dir
}

func TestAddRejectsDuplicateID(t *testing.T) {
	dir := newTestDirectory(t)

	err := dir.Add(models.Pharmacy{ID: "P1", Name: "Duplicate"})
	assert.Error(t, err)
}

func TestListActivePreservesInsertionOrder(t *testing.T) {
	dir := newTestDirectory(t)

	active := dir.ListActive()
	require.Len(t, active, 3)
	assert.Equal(t, "P1", active[0].ID)
	assert.Equal(t, "P2", active[1].ID)
	assert.Equal(t, "P3", active[2].ID)
}

func TestFindBy(t *testing.T) {
	dir := newTestDirectory(t)

	tests := []struct {
		name    string
		sel     Selector
		wantIDs []string
	}{
		{"region only", Selector{Region: "NE"}, []string{"P1", "P2"}},
		{"region is case-insensitive", Selector{Region: "ne"}, []string{"P1", "P2"}},
		{"region and type are conjunctive", Selector{Region: "NE", Type: "CHAIN"}, []string{"P1"}},
		{"explicit ids", Selector{IDs: []string{"P3", "P1"}}, []string{"P1", "P3"}},
		{"ids intersected with region", Selector{Region: "W", IDs: []string{"P1", "P3"}}, []string{"P3"}},
		{"no match is empty, not an error", Selector{Region: "MIDWEST"}, []string{}},
		{"inactive pharmacies never match", Selector{Region: "SOUTH"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dir.FindBy(tt.sel)
			ids := make([]string, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestDeactivate(t *testing.T) {
	dir := newTestDirectory(t)

	p, err := dir.Deactivate("P1")
	require.NoError(t, err)
	assert.False(t, p.Active)
	assert.Len(t, dir.ListActive(), 2)

	// Still resolvable for receipts that reference it.
	_, err = dir.Get("P1")
	assert.NoError(t, err)

	_, err = dir.Deactivate("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveGuardsReferencedPharmacies(t *testing.T) {
	dir := newTestDirectory(t)

	referenced := func(id string) bool { return id == "P1" }

	err := dir.Remove("P1", referenced)
	assert.ErrorIs(t, err, ErrInUse)
	_, err = dir.Get("P1")
	assert.NoError(t, err)

	require.NoError(t, dir.Remove("P2", referenced))
	_, err = dir.Get("P2")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, dir.List(), 3)
}

func TestReportRegistry(t *testing.T) {
	reg := NewReportRegistry()

	report := models.DrugReport{ID: "R1", DrugName: "Cardiomax", Severity: models.SeverityHigh}
	require.NoError(t, reg.Add(report))
	assert.Error(t, reg.Add(report))

	got, err := reg.Get("R1")
	require.NoError(t, err)
	assert.Equal(t, report, got)

	_, err = reg.Get("R2")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Len(t, reg.List(), 1)
}
