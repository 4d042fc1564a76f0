package persistence

import "github.com/jhoicas/inventory-tracker/internal/domain/entity"

// Claves fijas del almacenamiento; cada colección es un arreglo JSON independiente.
const (
	KeyInventory     = "inventory"
	KeySales         = "sales"
	KeyCustomers     = "customers"
	KeyActivities    = "activities"
	KeySchemaVersion = "schemaVersion"
)

// SchemaVersion versión actual del layout. Su ausencia se acepta como layout heredado (v0).
const SchemaVersion = 1

// State las cuatro colecciones tal como se persisten, en orden de inserción.
type State struct {
	Inventory  []entity.Product
	Sales      []entity.Sale
	Customers  []entity.Customer
	Activities []entity.Activity
}

// normalize reemplaza colecciones nil por vacías: se persisten como [] y nunca como null.
func (s *State) normalize() {
	if s.Inventory == nil {
		s.Inventory = []entity.Product{}
	}
	if s.Sales == nil {
		s.Sales = []entity.Sale{}
	}
	if s.Customers == nil {
		s.Customers = []entity.Customer{}
	}
	if s.Activities == nil {
		s.Activities = []entity.Activity{}
	}
}
