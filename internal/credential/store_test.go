// README: Credential store contract tests; Redis and Postgres backends run only when their test env vars are set.
package credential

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderbot/migrations"
)

// runStoreContract exercises the get/set behaviour every backend must share.
func runStoreContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	key, ok, err := s.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "no key expected before Set")
	assert.Empty(t, key)

	require.NoError(t, s.Set(ctx, "X"))
	key, ok, err = s.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "X", key)

	require.NoError(t, s.Set(ctx, "Y"))
	key, ok, err = s.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Y", key)

	assert.ErrorIs(t, s.Set(ctx, "   "), ErrEmptyKey)
	key, _, err = s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Y", key, "rejected Set must not overwrite")
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials.json")
	runStoreContract(t, NewFileStore(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	ctx := context.Background()

	require.NoError(t, NewFileStore(path).Set(ctx, "persisted-key"))

	key, ok, err := NewFileStore(path).Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "persisted-key", key)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, _, err := NewFileStore(path).Get(context.Background())
	assert.Error(t, err)
}

func TestFileStore_EmptyStringIsAKey(t *testing.T) {
	// A stored empty value is still "present"; only absence means unset.
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"gemini_api_key": ""}`), 0o600))

	key, ok, err := NewFileStore(path).Get(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, key)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	seeded, err := Seed(ctx, s, "")
	require.NoError(t, err)
	assert.False(t, seeded)

	seeded, err = Seed(ctx, s, "from-env")
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = Seed(ctx, s, "second")
	require.NoError(t, err)
	assert.False(t, seeded)

	key, _, _ := s.Get(ctx)
	assert.Equal(t, "from-env", key)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("WANDERBOT_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("WANDERBOT_TEST_REDIS_ADDR not set; skipping integration test")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })

	ctx := context.Background()
	require.NoError(t, rdb.Del(ctx, RedisKey).Err())
	t.Cleanup(func() { rdb.Del(context.Background(), RedisKey) })

	runStoreContract(t, NewRedisStore(rdb))
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("WANDERBOT_TEST_DSN")
	if dsn == "" {
		t.Skip("WANDERBOT_TEST_DSN not set; skipping DB-backed tests")
	}
	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, migrations.Apply(ctx, db))
	_, err = db.Exec(ctx, "TRUNCATE TABLE app_credentials")
	require.NoError(t, err)

	runStoreContract(t, NewPostgresStore(db))
}
