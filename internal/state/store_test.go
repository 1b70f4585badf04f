package state

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStoreWithClient(client, time.Hour)
	t.Cleanup(func() { store.Close() }) //nolint:errcheck
	return store, mr
}

// setupPostgres connects to a local database for integration testing.
// Skipped if DATABASE_URL is not set or the connection fails.
func setupPostgres(t *testing.T) *PostgresStore {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("Skipping integration test: DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	store, err := ConnectPostgres(ctx, dbURL)
	if err != nil {
		t.Skipf("Skipping integration test: failed to connect to DB: %v", err)
	}
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { store.Close() }) //nolint:errcheck
	return store
}

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, store Store) {
	ctx := context.Background()
	ns := "session:" + uuid.NewString()

	_, ok, err := store.Get(ctx, ns, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, ns, "a", "1"))
	require.NoError(t, store.Set(ctx, ns, "b", "2"))
	require.NoError(t, store.Set(ctx, ns, "c", "3"))

	v, ok, err := store.Get(ctx, ns, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	// last write wins
	require.NoError(t, store.Set(ctx, ns, "a", "one"))
	v, _, err = store.Get(ctx, ns, "a")
	require.NoError(t, err)
	assert.Equal(t, "one", v)

	// namespaces are isolated
	_, ok, err = store.Get(ctx, "session:"+uuid.NewString(), "a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Delete(ctx, ns, "a", "b", "never-set"))
	for _, k := range []string{"a", "b"} {
		_, ok, err := store.Get(ctx, ns, k)
		require.NoError(t, err)
		assert.False(t, ok, "key %s should be gone", k)
	}
	v, ok, err = store.Get(ctx, ns, "c")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "3", v)

	require.NoError(t, store.Delete(ctx, ns))
	require.NoError(t, store.Delete(ctx, "session:unknown", "x"))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestRedisStore(t *testing.T) {
	store, _ := setupRedis(t)
	exerciseStore(t, store)
}

func TestRedisStore_KeyLayoutAndTTL(t *testing.T) {
	store, mr := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "session:abc", KeyUserEmail, "demo@empowrcredit.com"))

	got, err := mr.Get("empowr:session:abc:userEmail")
	require.NoError(t, err)
	assert.Equal(t, "demo@empowrcredit.com", got)
	assert.Equal(t, time.Hour, mr.TTL("empowr:session:abc:userEmail"))

	mr.FastForward(2 * time.Hour)
	_, ok, err := store.Get(ctx, "session:abc", KeyUserEmail)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_ConnectionFailure(t *testing.T) {
	store, mr := setupRedis(t)
	mr.Close()

	_, _, err := store.Get(context.Background(), "session:x", "k")
	assert.Error(t, err)
}

func TestPostgresStore(t *testing.T) {
	exerciseStore(t, setupPostgres(t))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Options{})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	s, err = Open(ctx, Options{Backend: BackendRedis, Redis: RedisOptions{Addr: mr.Addr()}})
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open(ctx, Options{Backend: BackendPostgres})
	assert.ErrorContains(t, err, "DATABASE_URL")

	_, err = Open(ctx, Options{Backend: "etcd"})
	assert.ErrorContains(t, err, "unknown state backend")
}
