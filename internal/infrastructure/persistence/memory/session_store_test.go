package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkfeed/forkfeed/internal/ports/outbound"
)

func TestSessionStore(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()
	userID := uuid.New()

	t.Run("create and get", func(t *testing.T) {
		sessionID, err := store.Create(ctx, userID, time.Hour)
		require.NoError(t, err)
		require.NotEmpty(t, sessionID)

		got, err := store.Get(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
	})

	t.Run("unknown session", func(t *testing.T) {
		_, err := store.Get(ctx, "nope")
		assert.ErrorIs(t, err, outbound.ErrNotFound)
	})

	t.Run("expired session is dropped", func(t *testing.T) {
		sessionID, err := store.Create(ctx, userID, -time.Second)
		require.NoError(t, err)

		_, err = store.Get(ctx, sessionID)
		assert.ErrorIs(t, err, outbound.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		sessionID, err := store.Create(ctx, userID, time.Hour)
		require.NoError(t, err)

		require.NoError(t, store.Delete(ctx, sessionID))
		_, err = store.Get(ctx, sessionID)
		assert.ErrorIs(t, err, outbound.ErrNotFound)

		// deleting again is a no-op
		assert.NoError(t, store.Delete(ctx, sessionID))
	})
}
