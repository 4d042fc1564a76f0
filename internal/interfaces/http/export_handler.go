package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-tracker/internal/application/export"
)

// ExportHandler descargas del estado (JSON y PDF). Solo lectura.
type ExportHandler struct {
	svc *export.Service
}

// NewExportHandler construye el handler.
func NewExportHandler(svc *export.Service) *ExportHandler {
	return &ExportHandler{svc: svc}
}

// Full GET /api/export
func (h *ExportHandler) Full(c *fiber.Ctx) error {
	return h.attachment(c, export.KindFull, h.svc.Full())
}

// Inventory GET /api/export/inventory
func (h *ExportHandler) Inventory(c *fiber.Ctx) error {
	return h.attachment(c, export.KindInventory, h.svc.Inventory())
}

// Sales GET /api/export/sales
func (h *ExportHandler) Sales(c *fiber.Ctx) error {
	return h.attachment(c, export.KindSales, h.svc.Sales())
}

// InventoryPDF GET /api/export/inventory.pdf
func (h *ExportHandler) InventoryPDF(c *fiber.Ctx) error {
	doc, err := h.svc.InventoryPDF(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	name, err := h.svc.FileName(export.KindInventoryPDF)
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(name)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(doc)
}

func (h *ExportHandler) attachment(c *fiber.Ctx, kind export.Kind, body any) error {
	name, err := h.svc.FileName(kind)
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(name)
	return c.JSON(body)
}
