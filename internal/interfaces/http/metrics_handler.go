package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-tracker/internal/application/analytics"
)

const maxSalesWindowDays = 366

// MetricsHandler maneja los endpoints del dashboard.
type MetricsHandler struct {
	engine *analytics.MetricsEngine
}

// NewMetricsHandler construye el handler.
func NewMetricsHandler(engine *analytics.MetricsEngine) *MetricsHandler {
	return &MetricsHandler{engine: engine}
}

// Summary GET /api/metrics/summary
func (h *MetricsHandler) Summary(c *fiber.Ctx) error {
	return c.JSON(h.engine.Summary())
}

// SalesByDay GET /api/metrics/sales-by-day?days=7
//
// Devuelve exactamente days entradas (1..366) terminando hoy; los días sin ventas en cero.
func (h *MetricsHandler) SalesByDay(c *fiber.Ctx) error {
	days := c.QueryInt("days", analytics.DefaultSalesWindowDays)
	if days <= 0 || days > maxSalesWindowDays {
		return writeError(c, validationf("days debe estar entre 1 y %d", maxSalesWindowDays))
	}
	return c.JSON(h.engine.SalesByDay(days))
}

// TopProducts GET /api/metrics/top-products?limit=5
func (h *MetricsHandler) TopProducts(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", analytics.DefaultTopProducts)
	if limit <= 0 {
		limit = analytics.DefaultTopProducts
	}
	return c.JSON(h.engine.TopProducts(limit))
}

// InventoryValue GET /api/metrics/inventory-value?category=Electronics
func (h *MetricsHandler) InventoryValue(c *fiber.Ctx) error {
	return c.JSON(h.engine.FilteredInventoryValue(c.Query("category")))
}

// SalesInPeriod GET /api/metrics/sales-in-period?period=week
func (h *MetricsHandler) SalesInPeriod(c *fiber.Ctx) error {
	out, err := h.engine.SalesInPeriod(c.Query("period"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
