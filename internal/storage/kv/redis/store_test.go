package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numberrush/numberrush/internal/storage/kv"
	"github.com/numberrush/numberrush/internal/testutil"
)

func newTestStore(t *testing.T) *Store {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewWithClient(client)
}

func TestGetMissingKey(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "numberrush:users")
	assert.ErrorIs(t, err, kv.ErrBlobNotFound)
}

func TestSetGetRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "numberrush:users", []byte(`[{"id":1}]`)))

	data, err := store.Get(ctx, "numberrush:users")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(data))
}

func TestSetOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "numberrush:users", []byte("first")))
	require.NoError(t, store.Set(ctx, "numberrush:users", []byte("second")))

	data, err := store.Get(ctx, "numberrush:users")
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestBackendOverRedisRoundTrips(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	backend, err := kv.New(ctx, store, testutil.NopLogger())
	require.NoError(t, err)

	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	_, err = backend.CreateUser(ctx, "alice", "digest", at)
	require.NoError(t, err)

	// A second backend over the same server must see the persisted state
	reloaded, err := kv.New(ctx, store, testutil.NopLogger())
	require.NoError(t, err)

	user, err := reloaded.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
}
