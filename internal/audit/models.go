// Package audit records consent lifecycle actions for later inspection.
package audit

import "time"

// Actions recorded on the audit trail.
const (
	ActionConsentRequested = "consent_requested"
	ActionConsentAccepted  = "consent_accepted"
	ActionConsentRevoked   = "consent_revoked"
	ActionBannerHidden     = "banner_hidden"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time
	UserID    string
	Action    string
	Detail    string
}
