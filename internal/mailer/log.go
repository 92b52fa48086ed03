package mailer

import (
	"context"
	"log/slog"
)

// LogGateway writes messages to the log instead of delivering them. Used in
// local environments and dry runs.
type LogGateway struct {
	log *slog.Logger
}

// NewLogGateway creates a gateway that only logs.
func NewLogGateway(log *slog.Logger) *LogGateway {
	return &LogGateway{log: log}
}

// Send logs the message and reports success.
func (g *LogGateway) Send(ctx context.Context, msg Message) error {
	g.log.InfoContext(ctx, "Dry-run alert email",
		"to", msg.ToEmail, "to_name", msg.ToName, "subject", msg.Subject)

	return nil
}
