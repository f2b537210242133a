// internal/wizard/store_test.go
package wizard

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	}), mr
}

func TestStore_SaveAndLoad(t *testing.T) {
	client, _ := setupRedis(t)
	store := NewStore(client, time.Minute)
	ctx := context.Background()

	sess := NewSession("sess-1")
	require.NoError(t, sess.Next(propertyPatch()))

	require.NoError(t, store.Save(ctx, sess))

	loaded, err := store.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, StepGoals, loaded.Step)
	assert.Equal(t, "78701", loaded.Survey.ZipCode)
}

func TestStore_LoadMissing(t *testing.T) {
	client, _ := setupRedis(t)
	store := NewStore(client, time.Minute)

	_, err := store.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStore_Expiry(t *testing.T) {
	client, mr := setupRedis(t)
	store := NewStore(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, NewSession("sess-2")))

	mr.FastForward(2 * time.Minute)

	_, err := store.Load(ctx, "sess-2")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStore_Delete(t *testing.T) {
	client, _ := setupRedis(t)
	store := NewStore(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, NewSession("sess-3")))
	require.NoError(t, store.Delete(ctx, "sess-3"))

	_, err := store.Load(ctx, "sess-3")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
