// Package inventory contiene el Store: dueño único de productos, ventas, clientes y
// del feed de actividad, y única vía sancionada para mutarlos.
package inventory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/inventory-tracker/internal/application/activity"
	"github.com/jhoicas/inventory-tracker/internal/application/persistence"
	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/pkg/logger"
)

// DefaultLowStockThreshold stock por debajo del cual un producto se considera bajo.
const DefaultLowStockThreshold = 10

// Store mantiene las cuatro colecciones en memoria. Cada operación completa
// (validación, mutación, actividad y volcado) corre bajo el mutex, de modo que no hay
// intercalado posible entre el descuento de stock y el alta de la venta.
type Store struct {
	mu sync.Mutex

	products   []entity.Product
	sales      []entity.Sale
	customers  []entity.Customer
	activities *activity.Log

	persister         Persister
	log               *logger.Logger
	now               func() time.Time
	newID             func() string
	newSKU            func() string
	lowStockThreshold int
	lastWarning       *domain.PersistenceWarning
}

// Option configura el Store.
type Option func(*Store)

// WithClock reemplaza el reloj del store y del feed (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator reemplaza el generador de IDs (tests).
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithSKUGenerator reemplaza el generador de SKU (tests).
func WithSKUGenerator(gen func() string) Option {
	return func(s *Store) { s.newSKU = gen }
}

// WithLowStockThreshold cambia el umbral de alerta de stock bajo.
func WithLowStockThreshold(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.lowStockThreshold = n
		}
	}
}

// NewStore construye un store vacío. persister puede ser nil (sin persistencia).
func NewStore(persister Persister, log *logger.Logger, opts ...Option) *Store {
	if log == nil {
		log = logger.Nop()
	}
	s := &Store{
		persister:         persister,
		log:               log,
		now:               func() time.Time { return time.Now().UTC() },
		newID:             func() string { return uuid.New().String() },
		newSKU:            generateSKU,
		lowStockThreshold: DefaultLowStockThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.activities = activity.NewLog(activity.WithClock(s.now), activity.WithIDGenerator(s.newID))
	return s
}

// Restore carga el estado leído al arrancar. Debe llamarse antes de cualquier otra operación.
func (s *Store) Restore(state persistence.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = slices.Clone(state.Inventory)
	s.sales = slices.Clone(state.Sales)
	s.customers = slices.Clone(state.Customers)
	s.activities.Restore(state.Activities)
}

// State devuelve una copia de las cuatro colecciones (export y volcado manual).
func (s *Store) State() persistence.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Flush fuerza un volcado del estado actual.
func (s *Store) Flush(ctx context.Context) *domain.PersistenceWarning {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked(ctx)
}

// LastPersistenceWarning devuelve el resultado del último volcado (nil si fue correcto).
func (s *Store) LastPersistenceWarning() *domain.PersistenceWarning {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastWarning
}

// LowStockThreshold umbral configurado.
func (s *Store) LowStockThreshold() int { return s.lowStockThreshold }

func (s *Store) stateLocked() persistence.State {
	products := make([]entity.Product, len(s.products))
	for i, p := range s.products {
		products[i] = p.Clone()
	}
	return persistence.State{
		Inventory:  products,
		Sales:      cloneNonNil(s.sales),
		Customers:  cloneNonNil(s.customers),
		Activities: s.activities.All(),
	}
}

// flushLocked persiste tras una mutación; el fallo solo se registra.
func (s *Store) flushLocked(ctx context.Context) *domain.PersistenceWarning {
	if s.persister == nil {
		return nil
	}
	w := s.persister.Save(ctx, s.stateLocked())
	s.lastWarning = w
	if w != nil {
		s.log.Warn().Err(w).Msg("no se pudo persistir el estado; los cambios siguen en memoria")
	}
	return w
}

// cloneNonNil copia el slice; nunca devuelve nil para que el JSON sea [] y no null.
func cloneNonNil[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func (s *Store) indexByID(id string) int {
	return slices.IndexFunc(s.products, func(p entity.Product) bool { return p.ID == id })
}

// indexByName primera coincidencia (orden de inserción) por subcadena sin mayúsculas.
func (s *Store) indexByName(match string) int {
	needle := strings.ToLower(match)
	return slices.IndexFunc(s.products, func(p entity.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), needle)
	})
}

// ── Lecturas ────────────────────────────────────────────────────────────────

// Product obtiene un producto por ID.
func (s *Store) Product(id string) (entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexByID(id)
	if i < 0 {
		return entity.Product{}, domain.NotFound("producto %q", id)
	}
	return s.products[i].Clone(), nil
}

// FindProductByName aplica la misma política de coincidencia que RecordSale.
func (s *Store) FindProductByName(match string) (entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexByName(strings.TrimSpace(match))
	if i < 0 {
		return entity.Product{}, domain.NotFound("ningún producto coincide con %q", match)
	}
	return s.products[i].Clone(), nil
}

// Products copia del inventario en orden de inserción.
func (s *Store) Products() []entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filterProductsLocked(func(entity.Product) bool { return true })
}

// SearchProducts busca sin mayúsculas en nombre, SKU, categoría, proveedor y descripción.
func (s *Store) SearchProducts(query string) []entity.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filterProductsLocked(func(p entity.Product) bool {
		if q == "" {
			return true
		}
		for _, field := range []string{p.Name, p.SKU, p.Category, p.Supplier, p.Description} {
			if strings.Contains(strings.ToLower(field), q) {
				return true
			}
		}
		return false
	})
}

// ProductsByCategory filtra por categoría exacta; vacío devuelve todo.
func (s *Store) ProductsByCategory(category string) []entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filterProductsLocked(func(p entity.Product) bool {
		return category == "" || p.Category == category
	})
}

// Categories categorías distintas en orden de primera aparición.
func (s *Store) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]struct{}, len(s.products))
	out := make([]string, 0)
	for _, p := range s.products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

func (s *Store) filterProductsLocked(keep func(entity.Product) bool) []entity.Product {
	out := make([]entity.Product, 0, len(s.products))
	for _, p := range s.products {
		if keep(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}

// Sales copia de las ventas en orden de registro.
func (s *Store) Sales() []entity.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneNonNil(s.sales)
}

// Customers copia de los clientes.
func (s *Store) Customers() []entity.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneNonNil(s.customers)
}

// RecentActivities primeras n entradas del feed (más reciente primero).
func (s *Store) RecentActivities(n int) []entity.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activities.Recent(n)
}

// RecordActivity agrega una entrada al feed por la vía pública (tareas periódicas incluidas).
func (s *Store) RecordActivity(ctx context.Context, t entity.ActivityType, title, description string) (entity.Activity, error) {
	if !t.Valid() {
		return entity.Activity{}, domain.Validation("tipo de actividad desconocido %q", t)
	}
	if strings.TrimSpace(title) == "" {
		return entity.Activity{}, domain.Validation("title es requerido")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.activities.Record(t, title, description)
	s.flushLocked(ctx)
	return a, nil
}
