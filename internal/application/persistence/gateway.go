// Package persistence serializa las cuatro colecciones del store hacia un almacenamiento
// clave-valor y las recupera al arrancar.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
	"github.com/jhoicas/inventory-tracker/pkg/logger"
)

var (
	// ErrUnreadable el backend no pudo leer la clave; su contenido guardado sigue intacto.
	ErrUnreadable = errors.New("clave ilegible")
	// ErrWritesHeld Save no escribe mientras haya claves que no se pudieron leer.
	ErrWritesHeld = errors.New("escritura retenida")
)

// Gateway traduce State <-> blobs JSON por clave.
type Gateway struct {
	kv  repository.KeyValueStore
	log *logger.Logger

	mu         sync.Mutex
	unreadable []string // claves que el último Load no pudo leer
}

// NewGateway construye el gateway sobre el backend elegido.
func NewGateway(kv repository.KeyValueStore, log *logger.Logger) *Gateway {
	if log == nil {
		log = logger.Nop()
	}
	return &Gateway{kv: kv, log: log.Component("persistence")}
}

// Load lee las cuatro claves. Una clave ausente es una colección vacía (primer arranque);
// una clave corrupta también, pero además produce una advertencia.
// Una clave que el backend no pudo leer se carga vacía y queda retenida: Save no escribe
// nada hasta que un Load posterior la lea bien, para no pisar los datos guardados.
// Nunca falla en bloque.
func (g *Gateway) Load(ctx context.Context) (State, []*domain.PersistenceWarning) {
	var (
		state      State
		warnings   []*domain.PersistenceWarning
		unreadable []string
	)
	warn := func(key string, err error) {
		w := &domain.PersistenceWarning{Op: "load", Key: key, Err: err}
		g.log.Warn().Err(err).Str("key", key).Msg("clave descartada al cargar; se usa colección vacía")
		warnings = append(warnings, w)
		if key != KeySchemaVersion && errors.Is(err, ErrUnreadable) {
			unreadable = append(unreadable, key)
		}
	}

	if w := g.checkSchemaVersion(ctx); w != nil {
		warn(KeySchemaVersion, w)
	}

	if err := decodeKey(ctx, g, KeyInventory, &state.Inventory); err != nil {
		warn(KeyInventory, err)
	}
	if err := decodeKey(ctx, g, KeySales, &state.Sales); err != nil {
		warn(KeySales, err)
	}
	if err := decodeKey(ctx, g, KeyCustomers, &state.Customers); err != nil {
		warn(KeyCustomers, err)
	}
	if err := decodeKey(ctx, g, KeyActivities, &state.Activities); err != nil {
		warn(KeyActivities, err)
	}
	state.normalize()

	g.mu.Lock()
	g.unreadable = unreadable
	g.mu.Unlock()
	if len(unreadable) > 0 {
		g.log.Error().Strs("keys", unreadable).Msg("claves ilegibles; escrituras retenidas hasta una carga correcta")
	}

	g.log.Info().
		Int("products", len(state.Inventory)).
		Int("sales", len(state.Sales)).
		Int("customers", len(state.Customers)).
		Int("activities", len(state.Activities)).
		Int("warnings", len(warnings)).
		Msg("estado cargado")
	return state, warnings
}

// decodeKey decodifica un arreglo JSON; si falla deja dst vacío.
func decodeKey[T any](ctx context.Context, g *Gateway, key string, dst *[]T) error {
	raw, found, err := g.kv.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	if !found || len(raw) == 0 {
		return nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("decodificar: %w", err)
	}
	*dst = out
	return nil
}

// checkSchemaVersion acepta la ausencia de versión (layout heredado) y carga igualmente
// una versión más nueva, avisando.
func (g *Gateway) checkSchemaVersion(ctx context.Context) error {
	raw, found, err := g.kv.Get(ctx, KeySchemaVersion)
	if err != nil {
		return fmt.Errorf("leer: %w", err)
	}
	if !found {
		return nil
	}
	v, err := strconv.Atoi(string(raw))
	if err != nil {
		return fmt.Errorf("versión ilegible %q", raw)
	}
	if v > SchemaVersion {
		return fmt.Errorf("versión %d más nueva que la soportada (%d); carga en modo best-effort", v, SchemaVersion)
	}
	return nil
}

// Save escribe las cuatro colecciones y la versión. Sigue adelante aunque falle una clave
// y devuelve una sola advertencia agregada, o nil si todo se escribió.
func (g *Gateway) Save(ctx context.Context, state State) *domain.PersistenceWarning {
	if held := g.Unreadable(); len(held) > 0 {
		return &domain.PersistenceWarning{
			Op:  "save",
			Key: strings.Join(held, ","),
			Err: fmt.Errorf("%w: no se pudo leer al arrancar; los cambios quedan solo en memoria", ErrWritesHeld),
		}
	}
	state.normalize()

	entries := make([]repository.Entry, 0, 5)
	var errs []error
	add := func(key string, v any) {
		raw, err := json.Marshal(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: codificar: %w", key, err))
			return
		}
		entries = append(entries, repository.Entry{Key: key, Value: raw})
	}
	add(KeyInventory, state.Inventory)
	add(KeySales, state.Sales)
	add(KeyCustomers, state.Customers)
	add(KeyActivities, state.Activities)
	entries = append(entries, repository.Entry{Key: KeySchemaVersion, Value: []byte(strconv.Itoa(SchemaVersion))})

	if bw, ok := g.kv.(repository.BatchWriter); ok {
		if err := bw.SetBatch(ctx, entries); err != nil {
			errs = append(errs, fmt.Errorf("lote: %w", err))
		}
	} else {
		for _, e := range entries {
			if err := g.kv.Set(ctx, e.Key, e.Value); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", e.Key, err))
			}
		}
	}

	if len(errs) == 0 {
		g.log.Debug().Int("keys", len(entries)).Msg("estado persistido")
		return nil
	}
	w := &domain.PersistenceWarning{Op: "save", Err: errors.Join(errs...)}
	g.log.Error().Err(w.Err).Int("failed", len(errs)).Msg("fallo al persistir el estado")
	return w
}

// Unreadable claves que el último Load no pudo leer; mientras no esté vacía, Save no escribe.
func (g *Gateway) Unreadable() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.unreadable)
}
