// server/cmd/api/main.go
package main

import (
	"log"
	"time"

	"pharma-alert-api-server/config"
	"pharma-alert-api-server/internal/api/routes"
	"pharma-alert-api-server/internal/auth"
	"pharma-alert-api-server/internal/directory"
	"pharma-alert-api-server/internal/followup"
	"pharma-alert-api-server/internal/ledger"
	"pharma-alert-api-server/internal/notify"
	"pharma-alert-api-server/internal/seed"
	"pharma-alert-api-server/internal/socket"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load configuration
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}
	if cfg.JWT.Secret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	auth.JwtSecret = []byte(cfg.JWT.Secret)

	jwtExpiration, err := time.ParseDuration(cfg.JWT.Expiration)
	if err != nil {
		log.Fatalf("Invalid jwt.expiration: %v", err)
	}
	followupThreshold, err := time.ParseDuration(cfg.Followup.Threshold)
	if err != nil {
		log.Fatalf("Invalid followup.threshold: %v", err)
	}

	// 2. Build the in-memory core. All state lives for the process run.
	reports := directory.NewReportRegistry()
	pharmacies := directory.NewPharmacyDirectory()
	led := ledger.New(pharmacies, reports)

	// 3. WebSocket hub doubles as the simulated notification transport:
	// connected pharmacy portals receive alerts directly.
	wsHub := socket.NewHub()
	transport := &notify.SocketTransport{Hub: wsHub, Reports: reports}

	scheduler := &followup.Scheduler{
		Ledger:      led,
		Transport:   transport,
		MaxAttempts: cfg.Followup.MaxAttempts,
	}

	// 4. Seed accounts and demo data.
	users := auth.NewUserStore()
	if err := seed.SeedAdmin(users, cfg); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}
	if err := seed.SeedPharmacies(pharmacies, cfg.Seed.PharmaciesPath); err != nil {
		log.Fatalf("Failed to seed pharmacies: %v", err)
	}

	// 5. Wire everything into the router.
	router := routes.SetupRouter(cfg, reports, pharmacies, led, transport, scheduler, users, wsHub, jwtExpiration, followupThreshold)

	// 6. Start server
	log.Printf("Starting API server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
