package main

import (
	"context"

	"github.com/jhoicas/inventory-tracker/internal/application/inventory"
	"github.com/jhoicas/inventory-tracker/internal/application/persistence"
	"github.com/jhoicas/inventory-tracker/pkg/logger"
)

// restoreState carga el estado guardado en el store y siembra la demo si corresponde.
// Con claves ilegibles no se siembra: el inventario vacío en memoria no refleja lo guardado.
// Devuelve cuántos productos se sembraron.
func restoreState(ctx context.Context, log *logger.Logger, gateway *persistence.Gateway, store *inventory.Store, seed bool) int {
	state, warnings := gateway.Load(ctx)
	store.Restore(state)
	if len(warnings) > 0 {
		log.Warn().Int("warnings", len(warnings)).Msg("estado cargado con claves descartadas")
	}

	if !seed {
		return 0
	}
	if held := gateway.Unreadable(); len(held) > 0 {
		log.Warn().Strs("keys", held).Msg("demo omitida: el almacenamiento no se pudo leer")
		return 0
	}
	return store.SeedDemoData(ctx)
}
