// Package settings provides the process-wide key/value system configuration
// store. Values are scalar strings; absence of a key is reported through
// sentinel.ErrNotFound so callers can distinguish "unset" from empty.
package settings

import (
	"context"
	"time"
)

// Keys owned by the usage-data consent domain. The settings store is shared
// platform infrastructure, so keys are namespaced.
const (
	KeyConsentState  = "usage_data.consent_state"
	KeyIntegrationID = "usage_data.integration_id"
	KeyPushDisabled  = "usage_data.push_disabled"
)

// Store is the scalar configuration store contract.
//
// Error contract:
// - GetString and LastUpdatedAt return sentinel.ErrNotFound for absent keys
// - GetBool treats an absent key as false and returns no error
// - Set upserts and refreshes the key's last-updated timestamp
type Store interface {
	GetString(ctx context.Context, key string) (string, error)
	GetBool(ctx context.Context, key string) (bool, error)
	Set(ctx context.Context, key, value string) error
	LastUpdatedAt(ctx context.Context, key string) (time.Time, error)
}
