package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPublisher_EmitStampsTimestamp(t *testing.T) {
	store := NewInMemoryStore()
	publisher := NewPublisher(store)

	require.NoError(t, publisher.Emit(context.Background(), Event{
		UserID: "user-1",
		Action: ActionConsentRequested,
	}))

	events := store.Events()
	require.Len(t, events, 1)
	require.False(t, events[0].Timestamp.IsZero())
	require.Equal(t, ActionConsentRequested, events[0].Action)
}

func TestPublisher_EmitKeepsExplicitTimestamp(t *testing.T) {
	store := NewInMemoryStore()
	publisher := NewPublisher(store)

	stamp := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	require.NoError(t, publisher.Emit(context.Background(), Event{
		Timestamp: stamp,
		Action:    ActionConsentAccepted,
	}))

	events := store.Events()
	require.Len(t, events, 1)
	require.Equal(t, stamp, events[0].Timestamp)
}
