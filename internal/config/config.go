package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the alert fan-out service.
// It includes the environment, server port, dispatch tuning, mail gateway
// settings, the optional reverse geocoder and the database configuration.
type Config struct {
	Env             string         // Env is the current environment: local, development, production.
	Port            int            // Port is the HTTP server port.
	Workers         int            // Workers is the number of concurrent dispatch workers.
	RadiusKm        float64        // RadiusKm is the discovery radius for proximity matching.
	DispatchTimeout time.Duration  // DispatchTimeout bounds one fan-out run.
	Mail            MailConfig     // Mail holds the mail gateway configuration.
	Geocoder        GeocoderConfig // Geocoder holds the optional reverse geocoder configuration.
	Database        PostgresConfig // Database holds the postgres database configuration.
}

// MailConfig holds the settings of the outgoing mail gateway.
type MailConfig struct {
	Provider      string  // Provider selects the gateway: smtp or log.
	Host          string  // Host is the SMTP server address.
	Port          int     // Port is the SMTP server port.
	Username      string  // Username for SMTP authentication; empty disables auth.
	Password      string  // Password for SMTP authentication.
	From          string  // From is the sender address.
	FromName      string  // FromName is the sender display name.
	RatePerSecond int     // RatePerSecond caps outgoing sends.
	TemplatePath  string  // TemplatePath overrides the built-in alert template when set.
}

// GeocoderConfig holds the reverse geocoder settings. An empty Type disables
// address enrichment entirely.
type GeocoderConfig struct {
	Type   string // Type specifies which provider to use: google or nominatim.
	APIKey string // APIKey for accessing external services (required for Google).
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
}

// MustLoad loads the configuration from the environment (BEACON_* variables,
// optionally seeded from a .env file) and returns a Config struct. It panics
// when a value cannot be parsed.
func MustLoad() *Config {
	_ = godotenv.Load()

	vpr := viper.New()
	vpr.SetEnvPrefix("beacon")
	vpr.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vpr.AutomaticEnv()

	vpr.SetDefault("env", "production")
	vpr.SetDefault("port", 8080)
	vpr.SetDefault("workers", 8)
	vpr.SetDefault("radius_km", 10.0)
	vpr.SetDefault("dispatch_timeout", "30s")
	vpr.SetDefault("mail.provider", "smtp")
	vpr.SetDefault("mail.port", 587)
	vpr.SetDefault("mail.from_name", "CrimeAlert")
	vpr.SetDefault("mail.rate_per_second", 5)
	vpr.SetDefault("db.port", "5432")

	timeout, err := time.ParseDuration(vpr.GetString("dispatch_timeout"))
	if err != nil {
		panic("failed to parse dispatch timeout from configuration")
	}

	workers := vpr.GetInt("workers")
	if workers <= 0 {
		panic("failed to parse workers from configuration, must be a positive integer")
	}

	port := vpr.GetInt("port")
	if port <= 0 {
		panic("failed to parse port for HTTP server from configuration")
	}

	radius := vpr.GetFloat64("radius_km")
	if radius <= 0 {
		panic("failed to parse discovery radius from configuration, must be positive")
	}

	return &Config{
		Env:             vpr.GetString("env"),
		Port:            port,
		Workers:         workers,
		RadiusKm:        radius,
		DispatchTimeout: timeout,
		Mail: MailConfig{
			Provider:      vpr.GetString("mail.provider"),
			Host:          vpr.GetString("mail.host"),
			Port:          vpr.GetInt("mail.port"),
			Username:      vpr.GetString("mail.username"),
			Password:      vpr.GetString("mail.password"),
			From:          vpr.GetString("mail.from"),
			FromName:      vpr.GetString("mail.from_name"),
			RatePerSecond: vpr.GetInt("mail.rate_per_second"),
			TemplatePath:  vpr.GetString("mail.template_path"),
		},
		Geocoder: GeocoderConfig{
			Type:   vpr.GetString("geocoder.type"),
			APIKey: vpr.GetString("geocoder.api_key"),
		},
		Database: PostgresConfig{
			Host:     vpr.GetString("db.host"),
			Port:     vpr.GetString("db.port"),
			User:     vpr.GetString("db.username"),
			Password: vpr.GetString("db.password"),
			Name:     vpr.GetString("db.name"),
		},
	}
}
