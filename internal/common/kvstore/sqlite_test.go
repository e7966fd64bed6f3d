package kvstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := OpenSQLite(filepath.Join(t.TempDir(), "blobs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := New(db)
	require.NoError(t, store.Init(context.Background(), migrationPath(t)))
	return store
}

func migrationPath(t *testing.T) string {
	t.Helper()
	// тесты пакета живут двумя уровнями ниже корня модуля
	return filepath.Join("..", "..", "..", "migrations", "001_init_blobs.sql")
}

func TestPutGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Put(ctx, "cart:s1", 1, []byte(`[{"product_id":"1"}]`)))

	payload, version, err := store.Get(ctx, "cart:s1")
	require.NoError(t, err)
	assert.Equal(t, 1, version)
	assert.JSONEq(t, `[{"product_id":"1"}]`, string(payload))
}

func TestPutOverwritesExistingKey(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Put(ctx, "design:d1", 1, []byte(`{"product_type":"jersey"}`)))
	require.NoError(t, store.Put(ctx, "design:d1", 2, []byte(`{"product_type":"cap"}`)))

	payload, version, err := store.Get(ctx, "design:d1")
	require.NoError(t, err)
	assert.Equal(t, 2, version)
	assert.JSONEq(t, `{"product_type":"cap"}`, string(payload))
}

func TestGetMissingKey(t *testing.T) {
	store := newTestStore(t)

	_, _, err := store.Get(context.Background(), "cart:ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Put(ctx, "cart:s1", 1, []byte(`[]`)))
	require.NoError(t, store.Delete(ctx, "cart:s1"))

	_, _, err := store.Get(ctx, "cart:s1")
	assert.ErrorIs(t, err, ErrNotFound)

	// повторное удаление не ошибка
	require.NoError(t, store.Delete(ctx, "cart:s1"))
}

func TestKeysAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Put(ctx, "cart:a", 1, []byte(`["a"]`)))
	require.NoError(t, store.Put(ctx, "cart:b", 1, []byte(`["b"]`)))
	require.NoError(t, store.Delete(ctx, "cart:a"))

	payload, _, err := store.Get(ctx, "cart:b")
	require.NoError(t, err)
	assert.JSONEq(t, `["b"]`, string(payload))
}
