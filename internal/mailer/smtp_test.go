package mailer_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/crimealert/beacon/internal/mailer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

// mockSMTPClient is a mock implementation of SMTPClient for testing.
type mockSMTPClient struct {
	sendFunc func(ctx context.Context, messages ...*mail.Msg) error
}

func (m *mockSMTPClient) DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error {
	return m.sendFunc(ctx, messages...)
}

func TestSMTPGateway_Send(t *testing.T) {
	t.Parallel()
	logger := slog.Default()

	msg := mailer.Message{
		ToEmail:  "a@example.com",
		ToName:   "alice",
		Subject:  mailer.Subject,
		HTMLBody: "<p>hello</p>",
		TextBody: "hello",
	}

	t.Run("success - message handed to the client", func(t *testing.T) {
		t.Parallel()
		var sent []*mail.Msg
		client := &mockSMTPClient{
			sendFunc: func(_ context.Context, messages ...*mail.Msg) error {
				sent = append(sent, messages...)
				return nil
			},
		}
		gateway := mailer.NewSMTPGatewayWithClient(client, "alerts@example.com", "CrimeAlert", 5, logger)

		err := gateway.Send(t.Context(), msg)

		require.NoError(t, err)
		require.Len(t, sent, 1)
		assert.Equal(t, []string{"a@example.com"}, sent[0].GetToString())
	})

	t.Run("error - relay rejects the message", func(t *testing.T) {
		t.Parallel()
		client := &mockSMTPClient{
			sendFunc: func(_ context.Context, _ ...*mail.Msg) error {
				return assert.AnError
			},
		}
		gateway := mailer.NewSMTPGatewayWithClient(client, "alerts@example.com", "CrimeAlert", 5, logger)

		err := gateway.Send(t.Context(), msg)

		require.Error(t, err)
		require.ErrorContains(t, err, "failed to send message")
		require.ErrorIs(t, err, assert.AnError)
	})

	t.Run("error - invalid recipient address", func(t *testing.T) {
		t.Parallel()
		client := &mockSMTPClient{
			sendFunc: func(_ context.Context, _ ...*mail.Msg) error {
				t.Fatal("client must not be called for an invalid recipient")
				return nil
			},
		}
		gateway := mailer.NewSMTPGatewayWithClient(client, "alerts@example.com", "CrimeAlert", 5, logger)

		broken := msg
		broken.ToEmail = "not-an-address"

		err := gateway.Send(t.Context(), broken)

		require.Error(t, err)
		require.ErrorContains(t, err, "invalid recipient address")
	})

	t.Run("error - cancelled context interrupts the rate limiter", func(t *testing.T) {
		t.Parallel()
		client := &mockSMTPClient{
			sendFunc: func(_ context.Context, _ ...*mail.Msg) error {
				return nil
			},
		}
		gateway := mailer.NewSMTPGatewayWithClient(client, "alerts@example.com", "CrimeAlert", 1, logger)

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		err := gateway.Send(ctx, msg)

		require.Error(t, err)
		require.ErrorContains(t, err, "rate limit wait interrupted")
	})
}
