package repository

import "context"

// KeyValueStore define el puerto de persistencia clave-valor (DIP).
// Las implementaciones guardan blobs opacos; el gateway decide el formato.
type KeyValueStore interface {
	// Get devuelve el valor y found=false si la clave no existe (sin error).
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}

// Closer lo implementan los backends que mantienen conexiones o archivos abiertos.
type Closer interface {
	Close() error
}

// Entry par clave-valor para escrituras en lote.
type Entry struct {
	Key   string
	Value []byte
}

// BatchWriter lo implementan los backends capaces de escribir varias claves de forma
// atómica (transacción). El gateway lo prefiere sobre Set individual cuando está disponible.
type BatchWriter interface {
	SetBatch(ctx context.Context, entries []Entry) error
}
