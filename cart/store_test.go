package cart_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"vestra/cart"
	"vestra/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memPersister is an in-memory Persister for tests.
type memPersister struct {
	blobs map[string][]byte
}

func newMemPersister() *memPersister {
	return &memPersister{blobs: make(map[string][]byte)}
}

func (m *memPersister) Load(_ context.Context, key string) ([]byte, error) {
	data, ok := m.blobs[key]
	if !ok {
		return nil, cart.ErrNotFound
	}
	return data, nil
}

func (m *memPersister) Save(_ context.Context, key string, data []byte) error {
	m.blobs[key] = data
	return nil
}

func (m *memPersister) Delete(_ context.Context, key string) error {
	delete(m.blobs, key)
	return nil
}

func line(productID string, qty int, size, color string, price float64) models.CartItem {
	return models.CartItem{
		ProductID: productID,
		Name:      productID,
		Price:     price,
		Quantity:  qty,
		Size:      size,
		Color:     color,
		AddedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestStore_AddMergesSameVariant(t *testing.T) {
	store := cart.Load(context.Background(), newMemPersister(), "cart:u1")

	require.NoError(t, store.Add(line("p1", 2, "M", "Black", 29.99)))
	require.NoError(t, store.Add(line("p1", 3, "M", "Black", 29.99)))

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestStore_AddKeepsDistinctVariants(t *testing.T) {
	store := cart.Load(context.Background(), newMemPersister(), "cart:u1")

	require.NoError(t, store.Add(line("p1", 1, "M", "Black", 29.99)))
	require.NoError(t, store.Add(line("p1", 1, "L", "Black", 29.99)))
	require.NoError(t, store.Add(line("p1", 1, "M", "White", 29.99)))

	assert.Len(t, store.Items(), 3)
}

func TestStore_RemoveVariantLeavesSiblings(t *testing.T) {
	store := cart.Load(context.Background(), newMemPersister(), "cart:u1")
	require.NoError(t, store.Add(line("p1", 1, "M", "Black", 29.99)))
	require.NoError(t, store.Add(line("p1", 1, "L", "Black", 29.99)))

	store.Remove("p1", "M", "Black")

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "L", items[0].Size)
}

func TestStore_RemoveWithoutVariantDropsAll(t *testing.T) {
	store := cart.Load(context.Background(), newMemPersister(), "cart:u1")
	require.NoError(t, store.Add(line("p1", 1, "M", "Black", 29.99)))
	require.NoError(t, store.Add(line("p1", 1, "L", "White", 29.99)))
	require.NoError(t, store.Add(line("p2", 1, "", "", 59.99)))

	store.Remove("p1", "", "")

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ProductID)
}

func TestStore_SetQuantity(t *testing.T) {
	store := cart.Load(context.Background(), newMemPersister(), "cart:u1")
	require.NoError(t, store.Add(line("p1", 1, "M", "Black", 29.99)))

	require.NoError(t, store.SetQuantity("p1", "M", "Black", 7))
	assert.Equal(t, 7, store.Items()[0].Quantity)

	assert.Error(t, store.SetQuantity("p1", "M", "Black", 0))
	assert.Error(t, store.SetQuantity("missing", "", "", 2))
}

func TestStore_FlushMatchesMemoryAfterManyOps(t *testing.T) {
	p := newMemPersister()
	ctx := context.Background()
	store := cart.Load(ctx, p, "cart:u1")

	require.NoError(t, store.Add(line("p1", 2, "M", "Black", 29.99)))
	require.NoError(t, store.Flush(ctx))
	require.NoError(t, store.Add(line("p2", 1, "", "", 59.99)))
	require.NoError(t, store.Flush(ctx))
	require.NoError(t, store.SetQuantity("p1", "M", "Black", 4))
	require.NoError(t, store.Flush(ctx))
	store.Remove("p2", "", "")
	require.NoError(t, store.Flush(ctx))

	var persisted []models.CartItem
	require.NoError(t, json.Unmarshal(p.blobs["cart:u1"], &persisted))
	assert.Equal(t, store.Items(), persisted)

	// A reloaded store sees the same state.
	reloaded := cart.Load(ctx, p, "cart:u1")
	assert.Equal(t, store.Items(), reloaded.Items())
}

func TestStore_ClearDeletesPersistedKey(t *testing.T) {
	p := newMemPersister()
	ctx := context.Background()
	store := cart.Load(ctx, p, "cart:u1")

	require.NoError(t, store.Add(line("p1", 1, "", "", 9.99)))
	require.NoError(t, store.Flush(ctx))
	require.Contains(t, p.blobs, "cart:u1")

	store.Clear()
	require.NoError(t, store.Flush(ctx))
	assert.NotContains(t, p.blobs, "cart:u1")
	assert.Empty(t, store.Items())
}

func TestLoad_CorruptPayloadFallsBackToEmpty(t *testing.T) {
	p := newMemPersister()
	p.blobs["cart:u1"] = []byte("{not json")

	store := cart.Load(context.Background(), p, "cart:u1")

	assert.Empty(t, store.Items())
	assert.Equal(t, float64(0), store.Quote().TotalPrice)
}

func TestStore_QuoteDelegatesToPricing(t *testing.T) {
	store := cart.Load(context.Background(), newMemPersister(), "cart:u1")
	require.NoError(t, store.Add(line("p1", 2, "", "", 29.99)))
	require.NoError(t, store.Add(line("p2", 1, "", "", 59.99)))

	quote := store.Quote()
	assert.Equal(t, 119.97, quote.ItemsPrice)
	assert.Equal(t, 135.56, quote.TotalPrice)
}
