package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-tracker/internal/infrastructure/memory"
)

func TestKVStore_GetSet(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore()

	_, found, err := kv.Get(ctx, "inventory")
	require.NoError(t, err)
	assert.False(t, found)

	value := []byte(`[]`)
	require.NoError(t, kv.Set(ctx, "inventory", value))
	value[0] = 'x'

	got, found, err := kv.Get(ctx, "inventory")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte(`[]`), got, "Set debe guardar una copia")
	assert.Equal(t, []string{"inventory"}, kv.Keys())
}

func TestKVStore_FallosInyectados(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore()
	quota := errors.New("quota exceeded")

	kv.FailSet("sales", quota)
	assert.ErrorIs(t, kv.Set(ctx, "sales", []byte(`[]`)), quota)
	kv.FailSet("sales", nil)
	assert.NoError(t, kv.Set(ctx, "sales", []byte(`[]`)))

	kv.FailGet("sales", quota)
	_, _, err := kv.Get(ctx, "sales")
	assert.ErrorIs(t, err, quota)
}
