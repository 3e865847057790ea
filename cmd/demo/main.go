// server/cmd/demo/main.go
//
// Runs the alert routing flow end to end against the in-memory core,
// without the HTTP server: seed pharmacies, create a critical report,
// broadcast it, acknowledge a few receipts, send follow-ups and print
// the delivery statistics.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"pharma-alert-api-server/internal/directory"
	"pharma-alert-api-server/internal/followup"
	"pharma-alert-api-server/internal/ledger"
	"pharma-alert-api-server/internal/models"
	"pharma-alert-api-server/internal/notify"
	"pharma-alert-api-server/internal/routing"
	"pharma-alert-api-server/internal/seed"
)

func main() {
	seedPath := flag.String("seed", "data/seeds/pharmacies.json", "path to pharmacy seed file")
	flag.Parse()

	reports := directory.NewReportRegistry()
	pharmacies := directory.NewPharmacyDirectory()
	led := ledger.New(pharmacies, reports)
	transport := notify.NewStubTransport()

	if err := seed.SeedPharmacies(pharmacies, *seedPath); err != nil {
		log.Fatalf("Failed to seed pharmacies: %v", err)
	}

	report := models.DrugReport{
		ID:             models.NewID("RPT"),
		DrugName:       "Cardiomax 50mg",
		AlertType:      "RECALL",
		Severity:       models.SeverityCritical,
		Description:    "Batch contamination detected in lots CM-2231 through CM-2240.",
		ActionRequired: "Quarantine affected lots immediately and contact affected patients.",
		CreatedBy:      "demo",
		CreatedAt:      time.Now(),
	}
	if err := reports.Add(report); err != nil {
		log.Fatalf("Failed to register report: %v", err)
	}
	fmt.Printf("Created report %s (%s, %s)\n", report.ID, report.DrugName, report.Severity)

	// Broadcast to every active pharmacy.
	broadcast := routing.Broadcast{}
	receipts, err := broadcast.Route(report, pharmacies, led, transport)
	if err != nil {
		log.Fatalf("Broadcast failed: %v", err)
	}
	fmt.Printf("Broadcast dispatched %d receipts\n", len(receipts))

	// First pharmacy acknowledges.
	if len(receipts) > 0 {
		if _, err := led.Acknowledge(receipts[0].ID); err != nil {
			log.Fatalf("Acknowledge failed: %v", err)
		}
		fmt.Printf("Receipt %s acknowledged\n", receipts[0].ID)
	}

	// Targeted re-send for the NE region; existing receipts are reused.
	targeted := routing.Targeted{Selector: directory.Selector{Region: "NE"}}
	targetedReceipts, err := targeted.Route(report, pharmacies, led, transport)
	if err != nil {
		log.Fatalf("Targeted routing failed: %v", err)
	}
	fmt.Printf("Targeted (region=NE) matched %d pharmacies\n", len(targetedReceipts))

	// Follow up on everything still unacknowledged.
	scheduler := &followup.Scheduler{Ledger: led, Transport: transport}
	dispatched := scheduler.Run(0)
	fmt.Printf("Follow-ups dispatched: %d\n", len(dispatched))

	stats := led.Statistics()
	fmt.Printf("Statistics: total=%d sent=%d acknowledged=%d failed=%d rate=%.2f\n",
		stats.Total, stats.Sent, stats.Acknowledged, stats.Failed, stats.AcknowledgmentRate)
}
