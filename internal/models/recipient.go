package models

// MatchSource describes which matching mechanism selected a recipient.
type MatchSource string

const (
	// MatchedByProximity means the recipient's home is within the discovery radius.
	MatchedByProximity MatchSource = "proximity"
	// MatchedByZone means one of the recipient's alert zones covers the report.
	MatchedByZone MatchSource = "zone"
	// MatchedByBoth means both mechanisms selected the recipient.
	MatchedByBoth MatchSource = "both"
)

// RecipientCandidate is a user selected for notification. Candidates are
// transient: produced by the matchers, merged, dispatched, and discarded.
type RecipientCandidate struct {
	Email     string      // Email identifies the recipient and is the dedup key.
	Username  string      // Username is used to greet the recipient.
	MatchedBy MatchSource // MatchedBy records which mechanism(s) selected them.
}
