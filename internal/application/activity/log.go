// Package activity mantiene el feed acotado de actividad del inventario.
package activity

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
)

// MaxEntries tope del feed; las entradas más antiguas se descartan.
const MaxEntries = 50

// Log feed de actividad, más reciente primero. No es seguro para uso concurrente:
// el Store lo protege con su propio mutex.
type Log struct {
	entries []entity.Activity
	now     func() time.Time
	newID   func() string
}

// Option configura el Log.
type Option func(*Log)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(l *Log) { l.now = now }
}

// WithIDGenerator reemplaza el generador de IDs (tests).
func WithIDGenerator(gen func() string) Option {
	return func(l *Log) { l.newID = gen }
}

// NewLog construye un feed vacío.
func NewLog(opts ...Option) *Log {
	l := &Log{
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Record inserta una entrada al inicio y trunca a MaxEntries.
func (l *Log) Record(t entity.ActivityType, title, description string) entity.Activity {
	a := entity.Activity{
		ID:          l.newID(),
		Type:        t,
		Title:       title,
		Description: description,
		Timestamp:   l.now(),
	}
	l.entries = append(l.entries, entity.Activity{})
	copy(l.entries[1:], l.entries)
	l.entries[0] = a
	if len(l.entries) > MaxEntries {
		l.entries = l.entries[:MaxEntries]
	}
	return a
}

// Recent devuelve una copia de las primeras n entradas.
func (l *Log) Recent(n int) []entity.Activity {
	if n <= 0 {
		return []entity.Activity{}
	}
	if n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]entity.Activity, n)
	copy(out, l.entries[:n])
	return out
}

// All devuelve una copia del feed completo.
func (l *Log) All() []entity.Activity {
	return l.Recent(len(l.entries))
}

// Len número de entradas actuales.
func (l *Log) Len() int { return len(l.entries) }

// Restore reemplaza el feed con lo leído del almacenamiento (solo en el arranque).
func (l *Log) Restore(list []entity.Activity) {
	if len(list) > MaxEntries {
		list = list[:MaxEntries]
	}
	l.entries = make([]entity.Activity, len(list))
	copy(l.entries, list)
}
