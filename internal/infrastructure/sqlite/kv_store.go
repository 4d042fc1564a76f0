// Package sqlite implementa el almacenamiento clave-valor en un archivo SQLite vía GORM.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
)

var (
	_ repository.KeyValueStore = (*KVStore)(nil)
	_ repository.BatchWriter   = (*KVStore)(nil)
	_ repository.Closer        = (*KVStore)(nil)
)

// kvEntry fila de la tabla kv_store.
type kvEntry struct {
	Key       string `gorm:"primaryKey"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (kvEntry) TableName() string { return "kv_store" }

// KVStore una fila por clave.
type KVStore struct {
	db *gorm.DB
}

// Open abre (o crea) la base en dsn y migra la tabla. Para tests:
// "file:<nombre>?mode=memory&cache=shared".
func Open(dsn string, debug bool) (*KVStore, error) {
	logLevel := gormlogger.Silent
	if debug {
		logLevel = gormlogger.Info
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite: abrir %s: %w", dsn, err)
	}
	return New(db)
}

// New usa una conexión GORM existente.
func New(db *gorm.DB) (*KVStore, error) {
	if err := db.AutoMigrate(&kvEntry{}); err != nil {
		return nil, fmt.Errorf("sqlite: migrar kv_store: %w", err)
	}
	return &KVStore{db: db}, nil
}

// Get obtiene el valor; gorm.ErrRecordNotFound se traduce a found=false.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var e kvEntry
	err := s.db.WithContext(ctx).Where(&kvEntry{Key: key}).Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("sqlite: get %s: %w", key, err)
	}
	return []byte(e.Value), true, nil
}

// Set inserta o reemplaza la clave.
func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	return upsert(s.db.WithContext(ctx), key, value)
}

// SetBatch escribe todas las claves en una transacción.
func (s *KVStore) SetBatch(ctx context.Context, entries []repository.Entry) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, e := range entries {
			if err := upsert(tx, e.Key, e.Value); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close cierra la conexión subyacente.
func (s *KVStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func upsert(db *gorm.DB, key string, value []byte) error {
	e := kvEntry{Key: key, Value: string(value), UpdatedAt: time.Now().UTC()}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
	if err != nil {
		return fmt.Errorf("sqlite: set %s: %w", key, err)
	}
	return nil
}
