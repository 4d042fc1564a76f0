package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/application/inventory"
)

// ProductHandler maneja las peticiones HTTP para Product.
type ProductHandler struct {
	store *inventory.Store
}

// NewProductHandler construye el handler.
func NewProductHandler(store *inventory.Store) *ProductHandler {
	return &ProductHandler{store: store}
}

// List GET /api/products?q=&category=
//
// q busca sin mayúsculas en nombre, SKU, categoría, proveedor y descripción;
// category filtra por coincidencia exacta. Ambos se combinan.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	q := c.Query("q")
	category := c.Query("category")

	products := h.store.SearchProducts(q)
	if category != "" {
		filtered := products[:0]
		for _, p := range products {
			if p.Category == category {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}
	return c.JSON(products)
}

// Categories GET /api/products/categories
func (h *ProductHandler) Categories(c *fiber.Ctx) error {
	return c.JSON(h.store.Categories())
}

// Create POST /api/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.store.AddProduct(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID GET /api/products/:id
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.store.Product(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/products/:id (parche parcial: los campos ausentes no cambian)
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.store.UpdateProduct(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	out, err := h.store.RemoveProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// BulkDelete POST /api/products/bulk-delete
//
// IDs inexistentes se ignoran; la respuesta informa cuántos se eliminaron realmente.
func (h *ProductHandler) BulkDelete(c *fiber.Ctx) error {
	var in dto.BulkDeleteRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	removed := h.store.BulkRemoveProducts(c.UserContext(), in.IDs)
	return c.JSON(dto.BulkDeleteResponse{Requested: len(in.IDs), Removed: removed})
}
