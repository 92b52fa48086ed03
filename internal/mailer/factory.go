package mailer

import (
	"errors"
	"fmt"
	"log/slog"
)

// GatewayType represents the type of mail gateway.
type GatewayType string

const (
	// GatewayTypeSMTP delivers through an authenticated SMTP relay.
	GatewayTypeSMTP GatewayType = "smtp"
	// GatewayTypeLog logs messages instead of delivering them.
	GatewayTypeLog GatewayType = "log"
)

// GatewayConfig holds configuration for creating a mail gateway.
type GatewayConfig struct {
	Type          GatewayType  // Type of gateway to create
	Host          string       // SMTP relay host (SMTP gateway only)
	Port          int          // SMTP relay port (SMTP gateway only)
	Username      string       // SMTP auth username, empty disables auth
	Password      string       // SMTP auth password
	From          string       // Sender address
	FromName      string       // Sender display name
	RatePerSecond int          // Outbound send rate cap
	Logger        *slog.Logger // Logger for the gateway
}

// NewGateway creates a mail gateway based on the provided configuration.
//
// Supported gateway types:
// - "smtp": authenticated SMTP relay (requires host and sender address)
// - "log": dry-run gateway that writes messages to the log
//
// Returns an error if the gateway type is unsupported or misconfigured.
func NewGateway(config GatewayConfig) (Gateway, error) {
	switch config.Type {
	case GatewayTypeSMTP:
		return newSMTPGateway(config)
	case GatewayTypeLog:
		return NewLogGateway(config.Logger), nil
	default:
		return nil, fmt.Errorf("unsupported gateway type: %s", config.Type)
	}
}

func newSMTPGateway(config GatewayConfig) (Gateway, error) {
	if config.Host == "" {
		return nil, errors.New("SMTP host is required for smtp gateway")
	}
	if config.From == "" {
		return nil, errors.New("sender address is required for smtp gateway")
	}

	if config.RatePerSecond <= 0 {
		config.RatePerSecond = 5
		config.Logger.Warn("Mail rate limit not set, using default", "value", config.RatePerSecond)
	}

	return NewSMTPGateway(
		config.Host, config.Port,
		config.Username, config.Password,
		config.From, config.FromName,
		config.RatePerSecond, config.Logger,
	)
}
