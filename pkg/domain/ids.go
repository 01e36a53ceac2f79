// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"github.com/google/uuid"

	dErrors "consentd/pkg/domain-errors"
)

// Distinct ID types - compiler prevents passing a UserID where an
// IntegrationID is expected.
type (
	// UserID identifies an admin user of the store operator's panel.
	UserID uuid.UUID
	// IntegrationID identifies the generated usage-data upload credential.
	IntegrationID uuid.UUID
)

// NewIntegrationID returns a fresh random integration identifier.
func NewIntegrationID() IntegrationID { return IntegrationID(uuid.New()) }

// Parse functions - use at trust boundaries (handlers, API inputs).

func ParseUserID(s string) (UserID, error) {
	id, err := parseUUID(s, "user ID")
	return UserID(id), err
}

func ParseIntegrationID(s string) (IntegrationID, error) {
	id, err := parseUUID(s, "integration ID")
	return IntegrationID(id), err
}

// String methods - for logging and debugging.

func (id UserID) String() string        { return uuid.UUID(id).String() }
func (id IntegrationID) String() string { return uuid.UUID(id).String() }

// IsNil checks - used for service-layer validation.

func (id UserID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id IntegrationID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// parseUUID is the shared validation logic. Nil UUIDs are allowed here; use
// IsNil() at the service layer for business validation so store lookups can
// return proper "not found" errors.
func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label+" format")
	}
	return id, nil
}
