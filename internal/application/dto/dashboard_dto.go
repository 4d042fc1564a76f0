package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummaryDTO respuesta de GET /api/metrics/summary y fuente de los gauges.
type DashboardSummaryDTO struct {
	TotalProducts   int             `json:"total_products"`
	TotalSales      int             `json:"total_sales"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	LowStockItems   int             `json:"low_stock_items"`
	TotalCategories int             `json:"total_categories"`
}

// DailySalesDTO ingresos de un día calendario (zona local del proceso).
type DailySalesDTO struct {
	Label   string          `json:"label"` // ej: "Oct 15"
	Date    time.Time       `json:"date"`  // medianoche local
	Revenue decimal.Decimal `json:"revenue"`
}

// TopProductDTO cantidad total vendida por nombre de producto.
type TopProductDTO struct {
	ProductName  string `json:"product_name"`
	QuantitySold int    `json:"quantity_sold"`
}

// InventoryValueDTO valor y conteos sobre el inventario (opcionalmente filtrado por categoría).
type InventoryValueDTO struct {
	Category      string          `json:"category,omitempty"`
	TotalValue    decimal.Decimal `json:"total_value"`
	ProductCount  int             `json:"product_count"`
	LowStockCount int             `json:"low_stock_count"`
}
