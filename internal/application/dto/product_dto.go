package dto

import "github.com/shopspring/decimal"

// CreateProductRequest entrada para crear un producto.
// ID, SKU, fechas y estado los asigna el store.
type CreateProductRequest struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	Supplier    string          `json:"supplier"`
	Description string          `json:"description"`
}

// UpdateProductRequest parche parcial; los campos nil no se modifican.
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	Category    *string          `json:"category"`
	Supplier    *string          `json:"supplier"`
	Description *string          `json:"description"`
}

// BulkDeleteRequest IDs a eliminar en bloque.
type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// BulkDeleteResponse cuántos productos se eliminaron realmente.
type BulkDeleteResponse struct {
	Requested int `json:"requested"`
	Removed   int `json:"removed"`
}
