package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// RecordSale resuelve el producto y registra la venta en una sola operación.
//
// Si ProductID viene informado se busca por ID; si no, ProductMatch se compara como
// subcadena del nombre sin distinguir mayúsculas y gana la primera coincidencia en orden
// de inserción. Con varios productos de nombre parecido el resultado es determinista,
// no necesariamente el que el usuario tenía en mente.
//
// Retorna:
//   - domain.ErrValidation        si quantity <= 0 o no hay criterio de búsqueda.
//   - domain.ErrNotFound          si ningún producto coincide.
//   - domain.ErrInsufficientStock si quantity supera el stock disponible.
func (s *Store) RecordSale(ctx context.Context, in dto.RecordSaleRequest) (*entity.Sale, error) {
	if in.Quantity <= 0 {
		return nil, domain.Validation("quantity debe ser mayor que 0 (recibido %d)", in.Quantity)
	}
	productID := strings.TrimSpace(in.ProductID)
	match := strings.TrimSpace(in.ProductMatch)
	if productID == "" && match == "" {
		return nil, domain.Validation("product_match o product_id es requerido")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var i int
	if productID != "" {
		i = s.indexByID(productID)
		if i < 0 {
			return nil, domain.NotFound("producto %q", productID)
		}
	} else {
		i = s.indexByName(match)
		if i < 0 {
			return nil, domain.NotFound("ningún producto coincide con %q", match)
		}
	}
	return s.recordSaleLocked(ctx, i, in.Quantity, in.CustomerName)
}

// RecordSaleByProductID variante explícita por identificador.
func (s *Store) RecordSaleByProductID(ctx context.Context, productID string, quantity int, customerName string) (*entity.Sale, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, domain.Validation("product_id es requerido")
	}
	return s.RecordSale(ctx, dto.RecordSaleRequest{ProductID: productID, Quantity: quantity, CustomerName: customerName})
}

// recordSaleLocked descuenta stock y agrega la venta; nada se toca si falla la verificación.
func (s *Store) recordSaleLocked(ctx context.Context, i, quantity int, customerName string) (*entity.Sale, error) {
	product := &s.products[i]
	if product.Stock < quantity {
		return nil, fmt.Errorf("%w: %s tiene %d unidades, se pidieron %d",
			domain.ErrInsufficientStock, product.Name, product.Stock, quantity)
	}
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		customerName = entity.DefaultCustomerName
	}

	sale := entity.Sale{
		ID:            s.newID(),
		ProductID:     product.ID,
		ProductName:   product.Name,
		Quantity:      quantity,
		UnitPrice:     product.Price,
		TotalPrice:    product.Price.Mul(decimal.NewFromInt(int64(quantity))),
		CustomerName:  customerName,
		Date:          s.now(),
		PaymentMethod: entity.PaymentMethodCash,
		Status:        entity.SaleStatusCompleted,
	}

	before := product.Stock
	product.Stock -= quantity
	s.sales = append(s.sales, sale)

	s.activities.Record(entity.ActivitySale,
		fmt.Sprintf("Sale recorded: %dx %s", quantity, product.Name),
		"Revenue: "+sale.TotalPrice.StringFixed(2))
	if before >= s.lowStockThreshold && product.Stock < s.lowStockThreshold {
		s.activities.Record(entity.ActivityAlert,
			"Low stock alert: "+product.Name,
			fmt.Sprintf("Only %d units left in stock", product.Stock))
	}
	s.flushLocked(ctx)
	return &sale, nil
}
