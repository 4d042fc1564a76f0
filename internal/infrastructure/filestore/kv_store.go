// Package filestore implementa el almacenamiento clave-valor como un archivo JSON por clave
// dentro de un directorio, sobre afero para poder usar un sistema de archivos en memoria en tests.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/spf13/afero"

	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
)

var _ repository.KeyValueStore = (*KVStore)(nil)

var validKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// KVStore guarda <dir>/<clave>.json. Set escribe un temporal y lo renombra, así un corte a
// mitad de escritura nunca deja un archivo truncado.
type KVStore struct {
	fs  afero.Fs
	dir string
	mu  sync.Mutex
}

// New crea el directorio si no existe. Usar afero.NewOsFs() en producción.
func New(fsys afero.Fs, dir string) (*KVStore, error) {
	exists, err := afero.DirExists(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("filestore: comprobar directorio %s: %w", dir, err)
	}
	if !exists {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("filestore: crear directorio %s: %w", dir, err)
		}
	}
	return &KVStore{fs: fsys, dir: dir}, nil
}

// Get lee la clave; un archivo inexistente es found=false.
func (s *KVStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, false, err
	}
	data, err := afero.ReadFile(s.fs, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("filestore: leer %s: %w", key, err)
	}
	return data, true, nil
}

// Set reemplaza el contenido de la clave de forma atómica.
func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, value, 0o644); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("filestore: escribir %s: %w", key, err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("filestore: renombrar %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("filestore: clave inválida %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}
