package filestore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-tracker/internal/application/persistence"
	"github.com/jhoicas/inventory-tracker/internal/infrastructure/filestore"
)

func TestKVStore_GetSet(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	kv, err := filestore.New(fsys, "/data")
	require.NoError(t, err)

	_, found, err := kv.Get(ctx, "inventory")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, kv.Set(ctx, "inventory", []byte(`[{"id":"1"}]`)))
	require.NoError(t, kv.Set(ctx, "inventory", []byte(`[]`)))

	got, found, err := kv.Get(ctx, "inventory")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[]`, string(got))

	onDisk, err := afero.ReadFile(fsys, filepath.Join("/data", "inventory.json"))
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(onDisk))

	exists, err := afero.Exists(fsys, filepath.Join("/data", "inventory.json.tmp"))
	require.NoError(t, err)
	assert.False(t, exists, "no deben quedar temporales")
}

func TestKVStore_ClaveInvalida(t *testing.T) {
	kv, err := filestore.New(afero.NewMemMapFs(), "/data")
	require.NoError(t, err)
	assert.Error(t, kv.Set(context.Background(), "../etc/passwd", []byte("x")))
	_, _, err = kv.Get(context.Background(), "a/b")
	assert.Error(t, err)
}

// Un sistema de archivos de solo lectura simula un disco lleno o sin permisos.
func TestKVStore_FalloDeEscritura(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, base.MkdirAll("/data", 0o755))
	kv, err := filestore.New(afero.NewReadOnlyFs(base), "/data")
	require.NoError(t, err)

	err = kv.Set(context.Background(), "sales", []byte(`[]`))
	assert.ErrorIs(t, err, os.ErrPermission)
}

func TestKVStore_ContextoCancelado(t *testing.T) {
	kv, err := filestore.New(afero.NewMemMapFs(), "/data")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, kv.Set(ctx, "sales", []byte(`[]`)), context.Canceled)
}

// El gateway completo sobre el backend de archivos conserva el estado.
func TestKVStore_ConGateway(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	kv, err := filestore.New(fsys, "/data")
	require.NoError(t, err)
	g := persistence.NewGateway(kv, nil)

	require.Nil(t, g.Save(ctx, persistence.State{}))
	for _, key := range []string{"inventory", "sales", "customers", "activities", "schemaVersion"} {
		exists, err := afero.Exists(fsys, filepath.Join("/data", key+".json"))
		require.NoError(t, err)
		assert.True(t, exists, key)
	}

	loaded, warnings := g.Load(ctx)
	assert.Empty(t, warnings)
	assert.Empty(t, loaded.Inventory)
}
