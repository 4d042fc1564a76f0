// Package memory implementa el almacenamiento clave-valor en memoria (tests y modo efímero).
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
)

var _ repository.KeyValueStore = (*KVStore)(nil)

// KVStore mapa protegido por RWMutex. Permite inyectar fallos por clave para simular
// un almacenamiento lleno o ilegible.
type KVStore struct {
	mu        sync.RWMutex
	data      map[string][]byte
	getErrors map[string]error
	setErrors map[string]error
}

// NewKVStore construye un almacenamiento vacío.
func NewKVStore() *KVStore {
	return &KVStore{
		data:      make(map[string][]byte),
		getErrors: make(map[string]error),
		setErrors: make(map[string]error),
	}
}

// Get devuelve una copia del valor.
func (s *KVStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.getErrors[key]; err != nil {
		return nil, false, err
	}
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(v), true, nil
}

// Set guarda una copia del valor.
func (s *KVStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.setErrors[key]; err != nil {
		return err
	}
	s.data[key] = slices.Clone(value)
	return nil
}

// FailGet hace que Get(key) devuelva err; nil quita el fallo.
func (s *KVStore) FailGet(key string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.getErrors, key)
		return
	}
	s.getErrors[key] = err
}

// FailSet hace que Set(key) devuelva err; nil quita el fallo.
func (s *KVStore) FailSet(key string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.setErrors, key)
		return
	}
	s.setErrors[key] = err
}

// Keys claves almacenadas, ordenadas.
func (s *KVStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
