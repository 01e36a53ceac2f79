package settings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consentd/pkg/platform/sentinel"
)

func TestInMemoryStoreOperations(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewInMemoryStore(WithMemoryClock(func() time.Time { return now }))
	ctx := context.Background()

	// Absent key
	_, err := store.GetString(ctx, KeyConsentState)
	require.ErrorIs(t, err, sentinel.ErrNotFound)

	_, err = store.LastUpdatedAt(ctx, KeyConsentState)
	require.ErrorIs(t, err, sentinel.ErrNotFound)

	// Set and read back
	require.NoError(t, store.Set(ctx, KeyConsentState, "requested"))
	value, err := store.GetString(ctx, KeyConsentState)
	require.NoError(t, err)
	assert.Equal(t, "requested", value)

	updatedAt, err := store.LastUpdatedAt(ctx, KeyConsentState)
	require.NoError(t, err)
	assert.Equal(t, now, updatedAt)

	// Overwrite refreshes the timestamp
	now = now.Add(time.Hour)
	require.NoError(t, store.Set(ctx, KeyConsentState, "accepted"))
	updatedAt, err = store.LastUpdatedAt(ctx, KeyConsentState)
	require.NoError(t, err)
	assert.Equal(t, now, updatedAt)
}

func TestInMemoryStoreGetBool(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	t.Run("absent key is false", func(t *testing.T) {
		disabled, err := store.GetBool(ctx, KeyPushDisabled)
		require.NoError(t, err)
		assert.False(t, disabled)
	})

	t.Run("true value", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, KeyPushDisabled, "true"))
		disabled, err := store.GetBool(ctx, KeyPushDisabled)
		require.NoError(t, err)
		assert.True(t, disabled)
	})

	t.Run("unparsable value is false", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, KeyPushDisabled, "banana"))
		disabled, err := store.GetBool(ctx, KeyPushDisabled)
		require.NoError(t, err)
		assert.False(t, disabled)
	})
}
