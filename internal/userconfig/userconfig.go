// Package userconfig stores per-user preferences keyed by user id. Unlike
// the system-wide settings store, every entry here is scoped to a single
// user and absence is an ordinary state, not an error.
package userconfig

import (
	"context"

	id "consentd/pkg/domain"
)

// KeyHideConsentBanner marks that a user dismissed the consent banner.
const KeyHideConsentBanner = "usage_data.hide_consent_banner"

// Store is the per-user preference contract. GetBool returns false for
// absent or unparsable values.
type Store interface {
	GetBool(ctx context.Context, userID id.UserID, key string) (bool, error)
	SetBool(ctx context.Context, userID id.UserID, key string, value bool) error
}
