package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de producto y cliente.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Valores por defecto cuando el borrador no los trae.
const (
	DefaultCategory = "General"
	DefaultSupplier = "Unknown"
)

// Product representa un producto del inventario. Stock nunca es negativo.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	Supplier    string          `json:"supplier"`
	Description string          `json:"description"`
	SKU         string          `json:"sku"` // SKU + 8 caracteres alfanuméricos
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   *time.Time      `json:"updatedAt,omitempty"`
	Status      string          `json:"status"`
}

// InventoryValue devuelve price × stock.
func (p Product) InventoryValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Stock)))
}

// IsLowStock indica si el stock está estrictamente por debajo del umbral.
func (p Product) IsLowStock(threshold int) bool {
	return p.Stock < threshold
}

// Clone copia el producto sin compartir el puntero de UpdatedAt.
func (p Product) Clone() Product {
	if p.UpdatedAt != nil {
		t := *p.UpdatedAt
		p.UpdatedAt = &t
	}
	return p
}
