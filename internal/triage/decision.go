package triage

import "github.com/supportstack/helpdesk/internal/domain"

// Decision is the triage outcome for a ticket.
type Decision string

const (
	DecisionAutoClosed      Decision = "AUTO_CLOSED"
	DecisionAssignedToHuman Decision = "ASSIGNED_TO_HUMAN"
)

// Decide applies the single business rule: auto-close when auto-closing is
// enabled and the classification confidence clears the configured threshold.
// Settings must be read fresh from the store for every run; callers pass the
// current value rather than a cached one.
func Decide(confidence float64, settings domain.Settings) Decision {
	if settings.AutoCloseEnabled && confidence >= settings.ConfidenceThreshold {
		return DecisionAutoClosed
	}
	return DecisionAssignedToHuman
}
