package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-tracker/internal/application/analytics"
	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/application/inventory"
)

// SaleHandler maneja el registro y listado de ventas.
type SaleHandler struct {
	store   *inventory.Store
	metrics *analytics.MetricsEngine
}

// NewSaleHandler construye el handler.
func NewSaleHandler(store *inventory.Store, metrics *analytics.MetricsEngine) *SaleHandler {
	return &SaleHandler{store: store, metrics: metrics}
}

// List GET /api/sales?period=today|week|month|all
func (h *SaleHandler) List(c *fiber.Ctx) error {
	period := c.Query("period")
	if period == "" {
		return c.JSON(h.store.Sales())
	}
	out, err := h.metrics.SalesInPeriod(period)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create POST /api/sales
//
// Body: {"product_match": "laptop", "quantity": 2, "customer_name": "Asha"}
// o {"product_id": "...", ...} para evitar la ambigüedad de la búsqueda por nombre.
// Errores: 400 VALIDATION, 404 NOT_FOUND, 409 INSUFFICIENT_STOCK.
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.RecordSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.store.RecordSale(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
