package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewStore(client, time.Hour), mr
}

func TestStore(t *testing.T) {
	ctx := context.Background()

	t.Run("create assigns an id and round-trips", func(t *testing.T) {
		store, _ := newTestStore(t)

		sess := &Session{UserID: 42, Username: "admin", Role: "admin"}
		require.NoError(t, store.Create(ctx, sess))
		require.NotEmpty(t, sess.ID)
		assert.False(t, sess.CreatedAt.IsZero())

		got, err := store.Get(ctx, sess.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(42), got.UserID)
		assert.Equal(t, "admin", got.Username)
		assert.Equal(t, "admin", got.Role)
	})

	t.Run("unknown id yields ErrNotFound", func(t *testing.T) {
		store, _ := newTestStore(t)

		_, err := store.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("sessions expire with the ttl", func(t *testing.T) {
		store, mr := newTestStore(t)

		sess := &Session{UserID: 7, Username: "pat"}
		require.NoError(t, store.Create(ctx, sess))

		mr.FastForward(2 * time.Hour)
		_, err := store.Get(ctx, sess.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete removes the session", func(t *testing.T) {
		store, _ := newTestStore(t)

		sess := &Session{UserID: 7, Username: "pat"}
		require.NoError(t, store.Create(ctx, sess))
		require.NoError(t, store.Delete(ctx, sess.ID))

		_, err := store.Get(ctx, sess.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		assert.NoError(t, store.Delete(ctx, sess.ID), "double delete is fine")
	})
}
