package inventory

import (
	"context"

	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/shopspring/decimal"
)

type demoProduct struct {
	name, price string
	stock       int
	category    string
	supplier    string
	description string
}

var demoProducts = []demoProduct{
	{"Laptop Dell XPS 13", "89999.00", 15, "Electronics", "Dell India", "13-inch premium laptop with Intel i7 processor"},
	{"Wireless Bluetooth Headphones", "2499.00", 8, "Electronics", "AudioTech Solutions", "Noise cancelling wireless headphones"},
	{"Cotton T-Shirt", "599.00", 45, "Clothing", "Fashion Hub", "Comfortable cotton t-shirt in various colors"},
	{"Programming Book - JavaScript", "799.00", 3, "Books", "Tech Books Ltd", "Complete guide to JavaScript programming"},
	{"Garden Tool Set", "1299.00", 12, "Home & Garden", "Green Thumb Tools", "Complete set of essential garden tools"},
}

// SeedDemoData carga los cinco productos de demostración si el inventario está vacío.
// Es una conveniencia de arranque: cmd/tracker la invoca solo con TRACKER_SEED_DEMO=true.
// Devuelve cuántos productos sembró (0 si ya había inventario).
func (s *Store) SeedDemoData(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.products) > 0 {
		return 0
	}
	for _, d := range demoProducts {
		p := entity.Product{
			ID:          s.newID(),
			Name:        d.name,
			Price:       decimal.RequireFromString(d.price),
			Stock:       d.stock,
			Category:    d.category,
			Supplier:    d.supplier,
			Description: d.description,
			SKU:         s.uniqueSKULocked(),
			CreatedAt:   s.now(),
			Status:      entity.StatusActive,
		}
		s.products = append(s.products, p)
		s.activities.Record(entity.ActivityInventory, "Sample product added: "+p.Name, "System initialization")
	}
	s.flushLocked(ctx)
	s.log.Info().Int("products", len(demoProducts)).Msg("inventario de demostración cargado")
	return len(demoProducts)
}
