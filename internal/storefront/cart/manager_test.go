package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esports-store/internal/common/kvstore"
)

// memStore — персистентность в памяти для тестов.
type memStore struct {
	versions map[string]int
	payloads map[string][]byte
	puts     int
}

func newMemStore() *memStore {
	return &memStore{
		versions: make(map[string]int),
		payloads: make(map[string][]byte),
	}
}

func (m *memStore) Put(_ context.Context, key string, version int, payload []byte) error {
	m.puts++
	m.versions[key] = version
	m.payloads[key] = append([]byte(nil), payload...)
	return nil
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, int, error) {
	payload, ok := m.payloads[key]
	if !ok {
		return nil, 0, kvstore.ErrNotFound
	}
	return payload, m.versions[key], nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	delete(m.payloads, key)
	delete(m.versions, key)
	return nil
}

func TestManagerWriteThrough(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	m := NewManager(store)

	require.NoError(t, m.AddItem(ctx, "s1", line("1", "M", 79.99), 1))
	require.NoError(t, m.SetQuantity(ctx, "s1", "1", "M", 2))
	require.NoError(t, m.RemoveItem(ctx, "s1", "9", "XL"))

	// каждая мутация пишет снапшот сразу
	assert.Equal(t, 3, store.puts)
	assert.Equal(t, SchemaVersion, store.versions["cart:s1"])
}

func TestManagerReloadReconstructsState(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()

	m := NewManager(store)
	require.NoError(t, m.AddItem(ctx, "s1", line("1", "M", 79.99), 2))
	require.NoError(t, m.AddItem(ctx, "s1", line("2", "L", 89.99), 1))

	// новый менеджер поверх того же store — как перезагрузка страницы
	reloaded := NewManager(store)
	lines, totals, err := reloaded.View(ctx, "s1", 10)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "1", lines[0].ProductID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.InDelta(t, 79.99*2+89.99+10, totals.Total, 1e-9)
}

func TestManagerClearDropsSnapshot(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	m := NewManager(store)

	require.NoError(t, m.AddItem(ctx, "s1", line("1", "M", 50), 1))
	require.NoError(t, m.Clear(ctx, "s1"))

	lines, _, err := m.View(ctx, "s1", 10)
	require.NoError(t, err)
	assert.Empty(t, lines)
	_, ok := store.payloads["cart:s1"]
	assert.False(t, ok)
}

func TestManagerUnknownSchemaVersion(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.payloads["cart:s1"] = []byte(`[]`)
	store.versions["cart:s1"] = 99

	m := NewManager(store)
	_, _, err := m.View(ctx, "s1", 10)
	assert.Error(t, err)
}

func TestManagerSessionsIsolated(t *testing.T) {
	ctx := context.Background()
	m := NewManager(newMemStore())

	require.NoError(t, m.AddItem(ctx, "a", line("1", "M", 10), 1))
	require.NoError(t, m.AddItem(ctx, "b", line("2", "L", 20), 3))

	linesA, _, err := m.View(ctx, "a", 0)
	require.NoError(t, err)
	linesB, _, err := m.View(ctx, "b", 0)
	require.NoError(t, err)

	require.Len(t, linesA, 1)
	require.Len(t, linesB, 1)
	assert.Equal(t, "1", linesA[0].ProductID)
	assert.Equal(t, "2", linesB[0].ProductID)
}
