package inventory

import (
	"context"

	"github.com/jhoicas/inventory-tracker/internal/application/persistence"
	"github.com/jhoicas/inventory-tracker/internal/domain"
)

// Persister vuelca el estado completo tras cada mutación. Un fallo se devuelve como
// advertencia y nunca revierte lo ya aplicado en memoria.
type Persister interface {
	Save(ctx context.Context, state persistence.State) *domain.PersistenceWarning
}
