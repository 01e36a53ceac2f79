// Package models defines the consent lifecycle states and the guarded
// transition table between them.
package models

import (
	"fmt"

	dErrors "consentd/pkg/domain-errors"
)

// State is the consent lifecycle state. StateNotSet is the zero state and
// corresponds to no stored value at all.
type State string

const (
	StateNotSet    State = "not_set"
	StateRequested State = "requested"
	StateAccepted  State = "accepted"
	StateRevoked   State = "revoked"
)

// ParseState maps a stored scalar back onto a State. The empty string means
// the key was never written and is treated as StateNotSet.
func ParseState(raw string) (State, error) {
	switch State(raw) {
	case StateNotSet, "":
		return StateNotSet, nil
	case StateRequested:
		return StateRequested, nil
	case StateAccepted:
		return StateAccepted, nil
	case StateRevoked:
		return StateRevoked, nil
	default:
		return StateNotSet, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown consent state: %q", raw))
	}
}

func (s State) String() string {
	return string(s)
}

// IsValid reports whether s is one of the four lifecycle states.
func (s State) IsValid() bool {
	switch s {
	case StateNotSet, StateRequested, StateAccepted, StateRevoked:
		return true
	}
	return false
}

// CanRequest guards the not_set -> requested transition. Any state beyond
// not_set means consent was already requested at some point.
func (s State) CanRequest() error {
	if s == StateNotSet {
		return nil
	}
	return dErrors.New(dErrors.CodeAlreadyRequested, "consent has already been requested")
}

// CanAccept guards the transition to accepted. Acceptance is allowed before
// any request was recorded and from a pending request; a revoked consent
// stays revoked.
func (s State) CanAccept() error {
	switch s {
	case StateNotSet, StateRequested:
		return nil
	case StateAccepted:
		return dErrors.New(dErrors.CodeAlreadyAccepted, "consent has already been accepted")
	default:
		return dErrors.New(dErrors.CodeAlreadyRevoked, "consent has already been revoked")
	}
}

// CanRevoke guards the transition to revoked. There is nothing to revoke
// before a request was made.
func (s State) CanRevoke() error {
	switch s {
	case StateRequested, StateAccepted:
		return nil
	default:
		return dErrors.New(dErrors.CodeAlreadyRevoked, "consent has already been revoked")
	}
}
