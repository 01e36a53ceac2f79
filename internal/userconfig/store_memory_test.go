package userconfig

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	id "consentd/pkg/domain"
)

func TestInMemoryStore_AbsentDefaultsFalse(t *testing.T) {
	store := NewInMemoryStore()
	userID := id.UserID(uuid.New())

	hidden, err := store.GetBool(context.Background(), userID, KeyHideConsentBanner)
	require.NoError(t, err)
	require.False(t, hidden)
}

func TestInMemoryStore_SetAndGet(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()
	userID := id.UserID(uuid.New())

	require.NoError(t, store.SetBool(ctx, userID, KeyHideConsentBanner, true))

	hidden, err := store.GetBool(ctx, userID, KeyHideConsentBanner)
	require.NoError(t, err)
	require.True(t, hidden)

	// Preferences are per user.
	other, err := store.GetBool(ctx, id.UserID(uuid.New()), KeyHideConsentBanner)
	require.NoError(t, err)
	require.False(t, other)
}
