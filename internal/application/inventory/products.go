package inventory

import (
	"context"
	"slices"
	"strings"

	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// maxSKUAttempts reintentos del generador ante colisión con un SKU existente.
const maxSKUAttempts = 5

// AddProduct valida el borrador, asigna ID, SKU, fecha y estado activo, y lo agrega al final.
func (s *Store) AddProduct(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	name := strings.TrimSpace(in.Name)
	if err := validateProductFields(name, in.Price, in.Stock); err != nil {
		return nil, err
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = entity.DefaultCategory
	}
	supplier := strings.TrimSpace(in.Supplier)
	if supplier == "" {
		supplier = entity.DefaultSupplier
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product := entity.Product{
		ID:          s.newID(),
		Name:        name,
		Price:       in.Price,
		Stock:       in.Stock,
		Category:    category,
		Supplier:    supplier,
		Description: in.Description,
		SKU:         s.uniqueSKULocked(),
		CreatedAt:   s.now(),
		Status:      entity.StatusActive,
	}
	s.products = append(s.products, product)
	s.activities.Record(entity.ActivityInventory, "Added new product: "+product.Name, "Product added to inventory")
	s.flushLocked(ctx)

	out := product.Clone()
	return &out, nil
}

// UpdateProduct aplica el parche sobre una copia, valida el resultado y solo entonces lo guarda.
func (s *Store) UpdateProduct(ctx context.Context, id string, in dto.UpdateProductRequest) (*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByID(id)
	if i < 0 {
		return nil, domain.NotFound("producto %q", id)
	}
	p := s.products[i].Clone()
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Supplier != nil {
		p.Supplier = *in.Supplier
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if err := validateProductFields(p.Name, p.Price, p.Stock); err != nil {
		return nil, err
	}
	now := s.now()
	p.UpdatedAt = &now

	s.products[i] = p
	s.activities.Record(entity.ActivityInventory, "Updated product: "+p.Name, "Product information modified")
	s.flushLocked(ctx)

	out := p.Clone()
	return &out, nil
}

// RemoveProduct elimina un producto. Las ventas históricas conservan su copia del producto.
func (s *Store) RemoveProduct(ctx context.Context, id string) (*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByID(id)
	if i < 0 {
		return nil, domain.NotFound("producto %q", id)
	}
	removed := s.products[i]
	s.products = slices.Delete(s.products, i, i+1)
	s.activities.Record(entity.ActivityInventory, "Deleted product: "+removed.Name, "Product removed from inventory")
	s.flushLocked(ctx)
	return &removed, nil
}

// BulkRemoveProducts elimina los IDs existentes e ignora los demás (éxito parcial).
// Registra una actividad por producto eliminado y vuelca una sola vez al final.
func (s *Store) BulkRemoveProducts(ctx context.Context, ids []string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for _, id := range ids {
		i := s.indexByID(id)
		if i < 0 {
			continue
		}
		name := s.products[i].Name
		s.products = slices.Delete(s.products, i, i+1)
		s.activities.Record(entity.ActivityInventory, "Bulk deleted: "+name, "Product removed in bulk operation")
		removed++
	}
	if removed > 0 {
		s.flushLocked(ctx)
	}
	return removed
}

func (s *Store) uniqueSKULocked() string {
	sku := s.newSKU()
	for attempt := 1; attempt < maxSKUAttempts; attempt++ {
		taken := slices.ContainsFunc(s.products, func(p entity.Product) bool { return p.SKU == sku })
		if !taken {
			break
		}
		sku = s.newSKU()
	}
	return sku
}

func validateProductFields(name string, price decimal.Decimal, stock int) error {
	if name == "" {
		return domain.Validation("name es requerido")
	}
	if !price.GreaterThan(decimal.Zero) {
		return domain.Validation("price debe ser mayor que 0 (recibido %s)", price.String())
	}
	if stock < 0 {
		return domain.Validation("stock no puede ser negativo (recibido %d)", stock)
	}
	return nil
}
