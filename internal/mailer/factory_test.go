package mailer_test

import (
	"log/slog"
	"testing"

	"github.com/crimealert/beacon/internal/mailer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGateway(t *testing.T) {
	t.Parallel()
	logger := slog.Default()

	t.Run("success - smtp gateway", func(t *testing.T) {
		t.Parallel()
		gateway, err := mailer.NewGateway(mailer.GatewayConfig{
			Type:          mailer.GatewayTypeSMTP,
			Host:          "smtp.example.com",
			Port:          587,
			Username:      "alerts",
			Password:      "secret",
			From:          "alerts@example.com",
			FromName:      "CrimeAlert",
			RatePerSecond: 5,
			Logger:        logger,
		})

		require.NoError(t, err)
		assert.IsType(t, &mailer.SMTPGateway{}, gateway)
	})

	t.Run("success - log gateway", func(t *testing.T) {
		t.Parallel()
		gateway, err := mailer.NewGateway(mailer.GatewayConfig{
			Type:   mailer.GatewayTypeLog,
			Logger: logger,
		})

		require.NoError(t, err)
		assert.IsType(t, &mailer.LogGateway{}, gateway)

		require.NoError(t, gateway.Send(t.Context(), mailer.Message{ToEmail: "a@example.com"}))
	})

	t.Run("error - smtp gateway without host", func(t *testing.T) {
		t.Parallel()
		gateway, err := mailer.NewGateway(mailer.GatewayConfig{
			Type:   mailer.GatewayTypeSMTP,
			From:   "alerts@example.com",
			Logger: logger,
		})

		require.Nil(t, gateway)
		require.ErrorContains(t, err, "SMTP host is required")
	})

	t.Run("error - smtp gateway without sender", func(t *testing.T) {
		t.Parallel()
		gateway, err := mailer.NewGateway(mailer.GatewayConfig{
			Type:   mailer.GatewayTypeSMTP,
			Host:   "smtp.example.com",
			Logger: logger,
		})

		require.Nil(t, gateway)
		require.ErrorContains(t, err, "sender address is required")
	})

	t.Run("error - unsupported gateway type", func(t *testing.T) {
		t.Parallel()
		gateway, err := mailer.NewGateway(mailer.GatewayConfig{Type: "carrier-pigeon", Logger: logger})

		require.Nil(t, gateway)
		require.ErrorContains(t, err, "unsupported gateway type")
	})
}
