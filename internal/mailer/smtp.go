package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/go-mail"
	"golang.org/x/time/rate"
)

// SMTPClient defines the part of the go-mail client used by the gateway.
// This allows for easy mocking in tests.
type SMTPClient interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// SMTPGateway delivers messages through an authenticated SMTP relay. Relays
// throttle bursty senders, so every send passes through a rate limiter first.
type SMTPGateway struct {
	client   SMTPClient    // client performs the actual SMTP conversation
	from     string        // from is the envelope sender address
	fromName string        // fromName is the sender display name
	limiter  *rate.Limiter // limiter caps outbound sends per second
	log      *slog.Logger  // log is the logger for logging operations
}

// NewSMTPGateway creates an SMTP gateway connected to the given relay.
func NewSMTPGateway(host string, port int, username, password, from, fromName string,
	ratePerSecond int, log *slog.Logger,
) (*SMTPGateway, error) {
	const timeout = 15

	opts := []mail.Option{
		mail.WithPort(port),
		mail.WithTimeout(timeout * time.Second),
	}
	if username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(username),
			mail.WithPassword(password),
		)
	}

	client, err := mail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return NewSMTPGatewayWithClient(client, from, fromName, ratePerSecond, log), nil
}

// NewSMTPGatewayWithClient creates an SMTP gateway with a custom client.
// Useful for testing with mocked SMTP clients.
func NewSMTPGatewayWithClient(client SMTPClient, from, fromName string,
	ratePerSecond int, log *slog.Logger,
) *SMTPGateway {
	return &SMTPGateway{
		client:   client,
		from:     from,
		fromName: fromName,
		limiter:  rate.NewLimiter(rate.Limit(ratePerSecond), ratePerSecond),
		log:      log,
	}
}

// Send delivers one message through the relay. It blocks on the rate limiter
// and on the SMTP conversation, both bounded by the context.
func (g *SMTPGateway) Send(ctx context.Context, msg Message) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait interrupted: %w", err)
	}

	m := mail.NewMsg()
	if err := m.FromFormat(g.fromName, g.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := m.AddToFormat(msg.ToName, msg.ToEmail); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.TextBody)
	m.AddAlternativeString(mail.TypeTextHTML, msg.HTMLBody)

	g.log.DebugContext(ctx, "Sending alert email", "to", msg.ToEmail)

	if err := g.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}
