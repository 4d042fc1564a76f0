package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
)

var (
	_ repository.KeyValueStore = (*KVStore)(nil)
	_ repository.BatchWriter   = (*KVStore)(nil)
	_ repository.Closer        = (*KVStore)(nil)
)

// Querier abstrae pool y tx para que Get/Set sirvan dentro y fuera de una transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS kv_store (
		key        TEXT PRIMARY KEY,
		value      JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

const upsertSQL = `
	INSERT INTO kv_store (key, value, updated_at)
	VALUES ($1, $2::jsonb, now())
	ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

// KVStore tabla kv_store con una fila por clave; el valor se guarda como JSONB.
type KVStore struct {
	pool *pgxpool.Pool
}

// NewKVStore crea la tabla si no existe.
func NewKVStore(ctx context.Context, pool *pgxpool.Pool) (*KVStore, error) {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return nil, fmt.Errorf("crear tabla kv_store: %w", err)
	}
	return &KVStore{pool: pool}, nil
}

// Get obtiene el valor de una clave; pgx.ErrNoRows se traduce a found=false.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return get(ctx, s.pool, key)
}

// Set inserta o reemplaza la clave.
func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	return set(ctx, s.pool, key, value)
}

// SetBatch escribe todas las claves en una transacción: o quedan todas o ninguna.
func (s *KVStore) SetBatch(ctx context.Context, entries []repository.Entry) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, e := range entries {
		if err := set(ctx, tx, e.Key, e.Value); err != nil {
			return err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Close libera el pool.
func (s *KVStore) Close() error {
	s.pool.Close()
	return nil
}

func get(ctx context.Context, q Querier, key string) ([]byte, bool, error) {
	var value []byte
	err := q.QueryRow(ctx, `SELECT value::text FROM kv_store WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

func set(ctx context.Context, q Querier, key string, value []byte) error {
	if _, err := q.Exec(ctx, upsertSQL, key, string(value)); err != nil {
		if isInvalidJSON(err) {
			return fmt.Errorf("set %s: valor no es JSON válido: %w", key, err)
		}
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// isInvalidJSON verifica si PostgreSQL rechazó el valor como JSON (22P02).
func isInvalidJSON(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "22P02" // invalid_text_representation
	}
	return false
}
