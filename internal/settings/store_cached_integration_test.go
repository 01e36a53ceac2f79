//go:build integration

package settings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"consentd/pkg/platform/sentinel"
	"consentd/pkg/testutil/containers"
)

func TestCachedStore_Integration(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()

	t.Run("read-through populates cache", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		inner := NewInMemoryStore()
		store := NewCached(inner, rc.Client, time.Minute)

		require.NoError(t, inner.Set(ctx, KeyConsentState, "accepted"))

		value, err := store.GetString(ctx, KeyConsentState)
		require.NoError(t, err)
		require.Equal(t, "accepted", value)

		cached, err := rc.Client.Get(ctx, "settings:"+KeyConsentState).Result()
		require.NoError(t, err)
		require.Equal(t, "accepted", cached)
	})

	t.Run("negative lookups are cached", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		store := NewCached(NewInMemoryStore(), rc.Client, time.Minute)

		_, err := store.GetString(ctx, KeyConsentState)
		require.ErrorIs(t, err, sentinel.ErrNotFound)

		// Second read is answered by the cache marker.
		_, err = store.GetString(ctx, KeyConsentState)
		require.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("write invalidates cached entry", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		inner := NewInMemoryStore()
		store := NewCached(inner, rc.Client, time.Minute)

		require.NoError(t, store.Set(ctx, KeyConsentState, "requested"))
		value, err := store.GetString(ctx, KeyConsentState)
		require.NoError(t, err)
		require.Equal(t, "requested", value)

		require.NoError(t, store.Set(ctx, KeyConsentState, "accepted"))
		value, err = store.GetString(ctx, KeyConsentState)
		require.NoError(t, err)
		require.Equal(t, "accepted", value)
	})
}
