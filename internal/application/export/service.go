// Package export arma las instantáneas descargables del estado. Son lecturas puras:
// ninguna operación de este paquete modifica el store.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/application/persistence"
	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Kind tipo de exportación; determina el nombre de archivo sugerido.
type Kind string

const (
	KindFull         Kind = "full"
	KindInventory    Kind = "inventory"
	KindSales        Kind = "sales"
	KindInventoryPDF Kind = "inventory-pdf"
)

// StateSource lo implementa el store: copia consistente de las cuatro colecciones.
type StateSource interface {
	State() persistence.State
}

// InventoryReportRenderer genera el PDF del inventario (infraestructura).
type InventoryReportRenderer interface {
	RenderInventoryReport(ctx context.Context, report dto.InventoryExport) ([]byte, error)
}

// Service casos de uso de exportación.
type Service struct {
	source   StateSource
	renderer InventoryReportRenderer
	now      func() time.Time
	loc      *time.Location
}

// Option configura el servicio.
type Option func(*Service)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation zona usada para la fecha del nombre de archivo.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// NewService construye el caso de uso. renderer puede ser nil si no se exporta PDF.
func NewService(source StateSource, renderer InventoryReportRenderer, opts ...Option) *Service {
	s := &Service{
		source:   source,
		renderer: renderer,
		now:      func() time.Time { return time.Now().UTC() },
		loc:      time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Full estado completo más la fecha de exportación.
func (s *Service) Full() dto.FullExport {
	st := s.source.State()
	return dto.FullExport{
		Inventory:  st.Inventory,
		Sales:      st.Sales,
		Customers:  st.Customers,
		Activities: st.Activities,
		ExportDate: s.now(),
	}
}

// Inventory inventario con valor total y categorías/proveedores distintos en orden de aparición.
func (s *Service) Inventory() dto.InventoryExport {
	products := s.source.State().Inventory
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.InventoryValue())
	}
	return dto.InventoryExport{
		Inventory:     products,
		ExportDate:    s.now(),
		TotalProducts: len(products),
		TotalValue:    total,
		Categories:    distinct(products, func(p entity.Product) string { return p.Category }),
		Suppliers:     distinct(products, func(p entity.Product) string { return p.Supplier }),
	}
}

// Sales ventas con conteo e ingreso total.
func (s *Service) Sales() dto.SalesExport {
	sales := s.source.State().Sales
	revenue := decimal.Zero
	for _, sale := range sales {
		revenue = revenue.Add(sale.TotalPrice)
	}
	return dto.SalesExport{
		Sales:        sales,
		ExportDate:   s.now(),
		TotalSales:   len(sales),
		TotalRevenue: revenue,
	}
}

// InventoryPDF renderiza el reporte de inventario.
func (s *Service) InventoryPDF(ctx context.Context) ([]byte, error) {
	if s.renderer == nil {
		return nil, fmt.Errorf("export: renderer PDF no configurado")
	}
	doc, err := s.renderer.RenderInventoryReport(ctx, s.Inventory())
	if err != nil {
		return nil, fmt.Errorf("export: reporte de inventario: %w", err)
	}
	return doc, nil
}

// FileName nombre de descarga sugerido, con la fecha local de hoy.
func (s *Service) FileName(kind Kind) (string, error) {
	date := s.now().In(s.loc).Format("2006-01-02")
	switch kind {
	case KindFull:
		return "inventory-sales-data-" + date + ".json", nil
	case KindInventory:
		return "inventory-export-" + date + ".json", nil
	case KindSales:
		return "sales-export-" + date + ".json", nil
	case KindInventoryPDF:
		return "inventory-report-" + date + ".pdf", nil
	default:
		return "", domain.Validation("tipo de exportación desconocido %q", kind)
	}
}

func distinct(products []entity.Product, field func(entity.Product) string) []string {
	seen := make(map[string]struct{}, len(products))
	out := make([]string, 0)
	for _, p := range products {
		v := field(p)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
