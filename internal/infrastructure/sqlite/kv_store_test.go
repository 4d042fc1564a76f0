package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/application/inventory"
	"github.com/jhoicas/inventory-tracker/internal/application/persistence"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
	"github.com/jhoicas/inventory-tracker/internal/infrastructure/sqlite"
)

func setupKVStore(t *testing.T) *sqlite.KVStore {
	t.Helper()
	// Base en memoria única por test para evitar colisiones.
	kv, err := sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared", false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func TestKVStore_GetSet(t *testing.T) {
	kv := setupKVStore(t)
	ctx := context.Background()

	_, found, err := kv.Get(ctx, "inventory")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, kv.Set(ctx, "inventory", []byte(`[{"id":"p1"}]`)))
	require.NoError(t, kv.Set(ctx, "inventory", []byte(`[]`)))

	got, found, err := kv.Get(ctx, "inventory")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[]`, string(got))
}

func TestKVStore_SetBatch(t *testing.T) {
	kv := setupKVStore(t)
	ctx := context.Background()

	require.NoError(t, kv.SetBatch(ctx, []repository.Entry{
		{Key: "inventory", Value: []byte(`[]`)},
		{Key: "sales", Value: []byte(`[{"id":"s1"}]`)},
	}))
	got, found, err := kv.Get(ctx, "sales")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":"s1"}]`, string(got))
}

// El estado del store sobrevive a un reinicio con el backend SQLite.
func TestKVStore_ConStore(t *testing.T) {
	kv := setupKVStore(t)
	ctx := context.Background()

	first := inventory.NewStore(persistence.NewGateway(kv, nil), nil)
	require.Equal(t, 5, first.SeedDemoData(ctx))
	removed := first.BulkRemoveProducts(ctx, []string{first.Products()[0].ID})
	require.Equal(t, 1, removed)
	_, err := first.AddCustomer(ctx, dto.CreateCustomerRequest{Name: "Asha"})
	require.NoError(t, err)
	require.Nil(t, first.LastPersistenceWarning())

	loaded, warnings := persistence.NewGateway(kv, nil).Load(ctx)
	require.Empty(t, warnings)
	assert.Len(t, loaded.Inventory, 4)
	assert.Len(t, loaded.Customers, 1)
	assert.Len(t, loaded.Activities, 7)
	assert.Equal(t, "New customer added: Asha", loaded.Activities[0].Title)
}
