// server/internal/directory/reports.go
package directory

import (
	"fmt"
	"sync"

	"pharma-alert-api-server/internal/models"
)

// ReportRegistry is the in-memory registry of drug safety reports.
// Reports are immutable after creation and live for the process run.
type ReportRegistry struct {
	mu    sync.RWMutex
	byID  map[string]models.DrugReport
	order []string
}

func NewReportRegistry() *ReportRegistry {
	return &ReportRegistry{byID: make(map[string]models.DrugReport)}
}

func (r *ReportRegistry) Add(report models.DrugReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[report.ID]; exists {
		return fmt.Errorf("report %s already registered", report.ID)
	}
	r.byID[report.ID] = report
	r.order = append(r.order, report.ID)
	return nil
}

func (r *ReportRegistry) Get(id string) (models.DrugReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	report, ok := r.byID[id]
	if !ok {
		return models.DrugReport{}, fmt.Errorf("report %s: %w", id, ErrNotFound)
	}
	return report, nil
}

func (r *ReportRegistry) List() []models.DrugReport {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.DrugReport, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}
