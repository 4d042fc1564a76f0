package main

import (
	"fmt"

	"github.com/jhoicas/inventory-tracker/pkg/logger"
)

// runStep ejecuta un paso del arranque aislado: un error o panic se registra y el arranque
// continúa con los pasos siguientes. Devuelve false si el paso falló.
func runStep(log *logger.Logger, name string, fn func() error) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("step", name).Str("panic", fmt.Sprint(r)).Msg("paso de arranque abortado")
			ok = false
		}
	}()
	if err := fn(); err != nil {
		log.Error().Err(err).Str("step", name).Msg("paso de arranque falló")
		return false
	}
	log.Debug().Str("step", name).Msg("paso de arranque completado")
	return true
}
