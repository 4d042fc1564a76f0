package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Las operaciones del store los envuelven con contexto; comparar siempre con errors.Is.
var (
	ErrValidation        = errors.New("entrada inválida")
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrPersistence       = errors.New("fallo de persistencia")
)

// PersistenceWarning describe un fallo de lectura/escritura en el almacenamiento local.
// Nunca invalida la mutación en memoria que lo originó.
type PersistenceWarning struct {
	Op  string // load, save
	Key string // clave afectada; vacío si afecta a varias
	Err error
}

func (w *PersistenceWarning) Error() string {
	if w.Key == "" {
		return fmt.Sprintf("persistencia %s: %v", w.Op, w.Err)
	}
	return fmt.Sprintf("persistencia %s [%s]: %v", w.Op, w.Key, w.Err)
}

// Unwrap permite errors.Is(w, ErrPersistence) y llegar a la causa original.
func (w *PersistenceWarning) Unwrap() []error {
	return []error{ErrPersistence, w.Err}
}

// Validation envuelve ErrValidation con el detalle del campo.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFound envuelve ErrNotFound con el recurso buscado.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}
