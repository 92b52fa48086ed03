// Package mailer delivers incident alert emails. A Gateway is a fallible
// send-one-message channel; implementations are selected through the factory.
package mailer

import "context"

// Message is one alert email ready for delivery.
type Message struct {
	ToEmail  string // ToEmail is the recipient address.
	ToName   string // ToName is the recipient display name.
	Subject  string // Subject line.
	HTMLBody string // HTMLBody is the rich body.
	TextBody string // TextBody is the plain-text alternative.
}

// Gateway is an interface that defines a method for sending one message.
// Send blocks until the message is accepted or rejected; the caller decides
// what a failure means.
type Gateway interface {
	Send(ctx context.Context, msg Message) error
}
