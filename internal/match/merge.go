package match

import "github.com/crimealert/beacon/internal/models"

// Merge combines the proximity and zone candidate lists into a single
// recipient set keyed by email. Emails are compared case-sensitively, matching
// the behavior of the system this service replaced. For duplicate keys the
// first-seen username wins and MatchedBy becomes "both" when the recipient was
// selected by both mechanisms.
func Merge(nearby, zoned []models.RecipientCandidate) []models.RecipientCandidate {
	merged := make([]models.RecipientCandidate, 0, len(nearby)+len(zoned))
	index := make(map[string]int, len(nearby)+len(zoned))

	for _, candidate := range nearby {
		add(&merged, index, candidate)
	}
	for _, candidate := range zoned {
		add(&merged, index, candidate)
	}

	return merged
}

func add(merged *[]models.RecipientCandidate, index map[string]int, candidate models.RecipientCandidate) {
	if i, ok := index[candidate.Email]; ok {
		if (*merged)[i].MatchedBy != candidate.MatchedBy {
			(*merged)[i].MatchedBy = models.MatchedByBoth
		}
		return
	}

	index[candidate.Email] = len(*merged)
	*merged = append(*merged, candidate)
}
