package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-tracker/internal/application/inventory"
)

// HealthResponse estado del proceso y del último volcado.
type HealthResponse struct {
	Status             string `json:"status"`
	Storage            string `json:"storage"`
	Persistence        string `json:"persistence"` // ok, degraded
	PersistenceWarning string `json:"persistence_warning,omitempty"`
}

// HealthHandler GET /health.
type HealthHandler struct {
	store  *inventory.Store
	driver string
}

// NewHealthHandler construye el handler.
func NewHealthHandler(store *inventory.Store, driver string) *HealthHandler {
	return &HealthHandler{store: store, driver: driver}
}

// Get responde siempre 200: un fallo de persistencia degrada pero no tumba el servicio.
func (h *HealthHandler) Get(c *fiber.Ctx) error {
	out := HealthResponse{Status: "ok", Storage: h.driver, Persistence: "ok"}
	if w := h.store.LastPersistenceWarning(); w != nil {
		out.Persistence = "degraded"
		out.PersistenceWarning = w.Error()
	}
	return c.JSON(out)
}
