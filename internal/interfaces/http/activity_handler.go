package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-tracker/internal/application/activity"
	"github.com/jhoicas/inventory-tracker/internal/application/inventory"
)

const defaultActivityLimit = 10 // entradas visibles en el panel de actividad reciente

// ActivityHandler expone el feed de actividad.
type ActivityHandler struct {
	store *inventory.Store
}

// NewActivityHandler construye el handler.
func NewActivityHandler(store *inventory.Store) *ActivityHandler {
	return &ActivityHandler{store: store}
}

// List GET /api/activities?limit=10 (máximo 50, más reciente primero)
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultActivityLimit)
	if limit > activity.MaxEntries {
		limit = activity.MaxEntries
	}
	return c.JSON(h.store.RecentActivities(limit))
}
