package hiring

// Match statuses assigned by the matching engine.
const (
	MatchStatusPending = "Pending"
	MatchStatusMatched = "Matched"
	MatchStatusReview  = "Review Needed"
)

// Offer statuses. Approved and Rejected are terminal.
const (
	OfferStatusPending  = "Pending Approval"
	OfferStatusApproved = "Approved"
	OfferStatusModified = "Modified"
	OfferStatusRejected = "Rejected"
)

// MatchScoreThreshold separates Matched from Review Needed.
const MatchScoreThreshold = 70

// MatchStatusForScore returns the status the matching engine assigns to a score.
func MatchStatusForScore(score float64) string {
	if score >= MatchScoreThreshold {
		return MatchStatusMatched
	}
	return MatchStatusReview
}

// offerTransitions lists the allowed next statuses per current status.
// Re-entering the current status is always allowed so repeated approvals
// or edits stay idempotent.
var offerTransitions = map[string][]string{
	OfferStatusPending:  {OfferStatusApproved, OfferStatusModified, OfferStatusRejected},
	OfferStatusModified: {OfferStatusApproved, OfferStatusRejected},
	OfferStatusApproved: {},
	OfferStatusRejected: {},
}

// CanTransitionOffer reports whether an offer may move from one status to
// another. Unknown statuses are rejected except for the identity move.
func CanTransitionOffer(from, to string) bool {
	if from == to {
		return true
	}
	for _, allowed := range offerTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// TerminalOfferStatus reports whether no further status change is allowed.
func TerminalOfferStatus(status string) bool {
	allowed, ok := offerTransitions[status]
	return ok && len(allowed) == 0
}
