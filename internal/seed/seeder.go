// server/internal/seed/seeder.go
package seed

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"pharma-alert-api-server/config"
	"pharma-alert-api-server/internal/auth"
	"pharma-alert-api-server/internal/directory"
	"pharma-alert-api-server/internal/models"
)

// SeedAdmin creates the default admin account if it does not exist.
func SeedAdmin(users *auth.UserStore, cfg config.Config) error {
	if cfg.Seed.AdminPassword == "" {
		log.Println("No admin password configured. Admin seeding skipped.")
		return nil
	}

	if _, exists := users.FindByEmail(cfg.Seed.AdminEmail); exists {
		log.Println("Admin already exists. Seeding skipped.")
		return nil
	}

	hashedPassword, err := auth.HashPassword(cfg.Seed.AdminPassword)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:    cfg.Seed.AdminEmail,
		Name:     "Alert Authority Admin",
		Password: hashedPassword,
		Role:     "admin",
		Status:   "active",
	}
	if err := users.Add(admin); err != nil {
		return err
	}

	log.Println("Admin seeded successfully.")
	return nil
}

type seedPharmacy struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Region  string         `json:"region"`
	Type    string         `json:"type"`
	Address models.Address `json:"address"`
	Contact models.Contact `json:"contact"`
	Active  *bool          `json:"active"`
}

// SeedPharmacies loads demo pharmacies from a JSON file into the
// directory. An empty path skips seeding.
func SeedPharmacies(dir *directory.PharmacyDirectory, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("seed pharmacies: read %q: %w", path, err)
	}

	var entries []seedPharmacy
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("seed pharmacies: parse %q: %w", path, err)
	}

	for _, e := range entries {
		id := e.ID
		if id == "" {
			id = models.NewID("PHA")
		}
		active := true
		if e.Active != nil {
			active = *e.Active
		}
		p := models.Pharmacy{
			ID:        id,
			Name:      e.Name,
			Region:    e.Region,
			Type:      e.Type,
			Address:   e.Address,
			Contact:   e.Contact,
			Active:    active,
			CreatedAt: time.Now(),
		}
		if err := dir.Add(p); err != nil {
			return fmt.Errorf("seed pharmacies: %w", err)
		}
	}

	log.Printf("Seeded %d pharmacies from %s", len(entries), path)
	return nil
}
