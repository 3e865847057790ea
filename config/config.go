// server/config/config.go
package config

import (
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type JWTConfig struct {
	Secret     string `mapstructure:"secret"`
	Expiration string `mapstructure:"expiration"` // Go duration string, e.g. "24h"
}

type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allowOrigins"`
}

type FollowupConfig struct {
	// Threshold is how long a receipt may sit unacknowledged before a
	// follow-up is due, as a Go duration string.
	Threshold string `mapstructure:"threshold"`
	// MaxAttempts caps follow-ups per receipt; 0 means unlimited.
	MaxAttempts int `mapstructure:"maxAttempts"`
}

type SeedConfig struct {
	PharmaciesPath string `mapstructure:"pharmaciesPath"`
	AdminEmail     string `mapstructure:"adminEmail"`
	AdminPassword  string `mapstructure:"adminPassword"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Followup FollowupConfig `mapstructure:"followup"`
	Seed     SeedConfig     `mapstructure:"seed"`
}

// LoadConfig reads configuration from file and overrides it with
// environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()

	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("jwt.secret", "JWT_SECRET")
	viper.BindEnv("jwt.expiration", "JWT_EXPIRATION")
	viper.BindEnv("followup.threshold", "FOLLOWUP_THRESHOLD")
	viper.BindEnv("followup.maxAttempts", "FOLLOWUP_MAX_ATTEMPTS")
	viper.BindEnv("seed.pharmaciesPath", "SEED_PHARMACIES_PATH")
	viper.BindEnv("seed.adminEmail", "SEED_ADMIN_EMAIL")
	viper.BindEnv("seed.adminPassword", "SEED_ADMIN_PASSWORD")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("jwt.expiration", "24h")
	viper.SetDefault("followup.threshold", "24h")
	viper.SetDefault("followup.maxAttempts", 0)
	viper.SetDefault("seed.adminEmail", "admin@example.com")

	// If the file does not exist, Viper falls back to env vars only.
	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return
}
