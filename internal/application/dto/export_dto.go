package dto

import (
	"time"

	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// FullExport estado completo para descarga (inventory-sales-data-YYYY-MM-DD.json).
type FullExport struct {
	Inventory  []entity.Product  `json:"inventory"`
	Sales      []entity.Sale     `json:"sales"`
	Customers  []entity.Customer `json:"customers"`
	Activities []entity.Activity `json:"activities"`
	ExportDate time.Time         `json:"exportDate"`
}

// InventoryExport inventario más agregados (inventory-export-YYYY-MM-DD.json).
type InventoryExport struct {
	Inventory     []entity.Product `json:"inventory"`
	ExportDate    time.Time        `json:"exportDate"`
	TotalProducts int              `json:"totalProducts"`
	TotalValue    decimal.Decimal  `json:"totalValue"`
	Categories    []string         `json:"categories"`
	Suppliers     []string         `json:"suppliers"`
}

// SalesExport ventas más agregados (sales-export-YYYY-MM-DD.json).
type SalesExport struct {
	Sales        []entity.Sale   `json:"sales"`
	ExportDate   time.Time       `json:"exportDate"`
	TotalSales   int             `json:"totalSales"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
}
