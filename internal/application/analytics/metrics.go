// Package analytics deriva las cifras del dashboard a partir del contenido actual del store.
// Todas las operaciones son lecturas puras: mismas entradas, mismas salidas.
package analytics

import (
	"slices"
	"time"

	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/shopspring/decimal"
)

const (
	DefaultLowStockThreshold = 10 // stock estrictamente menor cuenta como bajo
	DefaultTopProducts       = 5  // productos en el widget de más vendidos
	DefaultSalesWindowDays   = 7  // días del gráfico de ventas
)

// Periodos aceptados por SalesInPeriod.
const (
	PeriodToday = "today"
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodAll   = "all"
)

// StoreReader lo que el motor necesita del store. Debe devolver copias.
type StoreReader interface {
	Products() []entity.Product
	Sales() []entity.Sale
}

// MetricsEngine calcula métricas sin estado propio más allá del reloj y la zona horaria.
type MetricsEngine struct {
	store             StoreReader
	now               func() time.Time
	loc               *time.Location
	lowStockThreshold int
}

// Option configura el motor.
type Option func(*MetricsEngine)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(e *MetricsEngine) { e.now = now }
}

// WithLocation fija la zona horaria usada para agrupar por día calendario.
func WithLocation(loc *time.Location) Option {
	return func(e *MetricsEngine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// WithLowStockThreshold umbral usado por Summary.
func WithLowStockThreshold(n int) Option {
	return func(e *MetricsEngine) {
		if n > 0 {
			e.lowStockThreshold = n
		}
	}
}

// NewMetricsEngine construye el caso de uso.
func NewMetricsEngine(store StoreReader, opts ...Option) *MetricsEngine {
	e := &MetricsEngine{
		store:             store,
		now:               time.Now,
		loc:               time.Local,
		lowStockThreshold: DefaultLowStockThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// TotalProductCount número de productos.
func (e *MetricsEngine) TotalProductCount() int { return len(e.store.Products()) }

// TotalSalesCount número de ventas registradas.
func (e *MetricsEngine) TotalSalesCount() int { return len(e.store.Sales()) }

// TotalRevenue suma de TotalPrice de todas las ventas.
func (e *MetricsEngine) TotalRevenue() decimal.Decimal {
	return sumRevenue(e.store.Sales())
}

// LowStockCount productos con stock estrictamente menor que threshold.
func (e *MetricsEngine) LowStockCount(threshold int) int {
	n := 0
	for _, p := range e.store.Products() {
		if p.IsLowStock(threshold) {
			n++
		}
	}
	return n
}

// SalesByDay devuelve exactamente windowDays días consecutivos terminando hoy (inclusive),
// del más antiguo al más reciente. Los días sin ventas aparecen con ingreso cero.
func (e *MetricsEngine) SalesByDay(windowDays int) []dto.DailySalesDTO {
	if windowDays <= 0 {
		return []dto.DailySalesDTO{}
	}
	today := e.now().In(e.loc)
	out := make([]dto.DailySalesDTO, windowDays)
	index := make(map[civilDay]int, windowDays)
	for i := range windowDays {
		// time.Date normaliza días negativos y respeta cambios de horario.
		day := time.Date(today.Year(), today.Month(), today.Day()-(windowDays-1-i), 0, 0, 0, 0, e.loc)
		out[i] = dto.DailySalesDTO{Label: day.Format("Jan 2"), Date: day, Revenue: decimal.Zero}
		index[dayOf(day)] = i
	}
	for _, s := range e.store.Sales() {
		if i, ok := index[dayOf(s.Date.In(e.loc))]; ok {
			out[i].Revenue = out[i].Revenue.Add(s.TotalPrice)
		}
	}
	return out
}

// TopProducts agrega la cantidad vendida por nombre de producto y devuelve las limit mayores.
// Los empates conservan el orden de primera aparición.
func (e *MetricsEngine) TopProducts(limit int) []dto.TopProductDTO {
	if limit <= 0 {
		return []dto.TopProductDTO{}
	}
	var agg []dto.TopProductDTO
	pos := make(map[string]int)
	for _, s := range e.store.Sales() {
		i, ok := pos[s.ProductName]
		if !ok {
			i = len(agg)
			pos[s.ProductName] = i
			agg = append(agg, dto.TopProductDTO{ProductName: s.ProductName})
		}
		agg[i].QuantitySold += s.Quantity
	}
	slices.SortStableFunc(agg, func(a, b dto.TopProductDTO) int {
		return b.QuantitySold - a.QuantitySold
	})
	if len(agg) > limit {
		agg = agg[:limit]
	}
	if agg == nil {
		return []dto.TopProductDTO{}
	}
	return agg
}

// FilteredInventoryValue Σ price × stock, conteo y stock bajo sobre los productos de la
// categoría indicada (coincidencia exacta). Categoría vacía = sin filtro.
func (e *MetricsEngine) FilteredInventoryValue(category string) dto.InventoryValueDTO {
	out := dto.InventoryValueDTO{Category: category, TotalValue: decimal.Zero}
	for _, p := range e.store.Products() {
		if category != "" && p.Category != category {
			continue
		}
		out.TotalValue = out.TotalValue.Add(p.InventoryValue())
		out.ProductCount++
		if p.IsLowStock(e.lowStockThreshold) {
			out.LowStockCount++
		}
	}
	return out
}

// Summary las cifras de las tarjetas del dashboard en una sola lectura de cada colección.
func (e *MetricsEngine) Summary() dto.DashboardSummaryDTO {
	products := e.store.Products()
	sales := e.store.Sales()

	categories := make(map[string]struct{})
	low := 0
	for _, p := range products {
		categories[p.Category] = struct{}{}
		if p.IsLowStock(e.lowStockThreshold) {
			low++
		}
	}
	return dto.DashboardSummaryDTO{
		TotalProducts:   len(products),
		TotalSales:      len(sales),
		TotalRevenue:    sumRevenue(sales),
		LowStockItems:   low,
		TotalCategories: len(categories),
	}
}

// SalesInPeriod filtra ventas: today = mismo día calendario, week = últimas 7×24h,
// month = últimas 30×24h, all (o vacío) = todas.
func (e *MetricsEngine) SalesInPeriod(period string) ([]entity.Sale, error) {
	now := e.now().In(e.loc)
	var keep func(time.Time) bool
	switch period {
	case "", PeriodAll:
		keep = func(time.Time) bool { return true }
	case PeriodToday:
		today := dayOf(now)
		keep = func(t time.Time) bool { return dayOf(t.In(e.loc)) == today }
	case PeriodWeek:
		from := now.Add(-7 * 24 * time.Hour)
		keep = func(t time.Time) bool { return !t.Before(from) }
	case PeriodMonth:
		from := now.Add(-30 * 24 * time.Hour)
		keep = func(t time.Time) bool { return !t.Before(from) }
	default:
		return nil, domain.Validation("periodo desconocido %q (today, week, month, all)", period)
	}

	out := make([]entity.Sale, 0)
	for _, s := range e.store.Sales() {
		if keep(s.Date) {
			out = append(out, s)
		}
	}
	return out, nil
}

// ── Helpers ─────────────────────────────────────────────────────────────────

type civilDay struct {
	year  int
	month time.Month
	day   int
}

func dayOf(t time.Time) civilDay {
	y, m, d := t.Date()
	return civilDay{y, m, d}
}

func sumRevenue(sales []entity.Sale) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		total = total.Add(s.TotalPrice)
	}
	return total
}
