package models

// DispatchResult is the terminal state of one delivery attempt.
type DispatchResult string

const (
	// DispatchSent means the gateway accepted the message.
	DispatchSent DispatchResult = "sent"
	// DispatchFailed means the send was rejected, timed out or was abandoned.
	DispatchFailed DispatchResult = "failed"
)

// DispatchOutcome records the result of one delivery attempt for one recipient.
// Outcomes feed logs and metrics only; the service keeps no durable record.
type DispatchOutcome struct {
	ReportID       int64          // ReportID attributes the outcome to a report.
	RecipientEmail string         // RecipientEmail attributes it to a recipient.
	Result         DispatchResult // Result is sent or failed.
	Error          string         // Error holds the failure reason, if any.
}
