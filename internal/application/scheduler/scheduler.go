// Package scheduler ejecuta las tareas periódicas del proceso (refresco de métricas y
// actividad simulada). Las tareas solo usan operaciones públicas del store y del motor
// de métricas; no tienen ningún privilegio especial.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/inventory-tracker/pkg/logger"
)

// ErrAlreadyStarted Start se llamó dos veces sin Stop intermedio.
var ErrAlreadyStarted = errors.New("scheduler ya iniciado")

// Task una tarea periódica. Run recibe el contexto del scheduler, que se cancela en Stop.
type Task struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Scheduler corre cada tarea en su propia goroutine con un time.Ticker; todas se detienen
// juntas.
type Scheduler struct {
	log   *logger.Logger
	tasks []Task

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

// New construye el scheduler sin tareas.
func New(log *logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{log: log.Component("scheduler")}
}

// Add registra una tarea. Intervalos no positivos o Run nil se ignoran con un aviso.
// Solo tiene efecto antes de Start.
func (s *Scheduler) Add(t Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.Run == nil || t.Interval <= 0 {
		s.log.Warn().Str("task", t.Name).Dur("interval", t.Interval).Msg("tarea descartada: sin función o intervalo inválido")
		return
	}
	s.tasks = append(s.tasks, t)
}

// Start lanza todas las tareas. La primera ejecución ocurre tras el primer intervalo.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return ErrAlreadyStarted
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true

	for _, t := range s.tasks {
		s.wg.Add(1)
		go s.loop(ctx, t)
	}
	s.log.Info().Int("tasks", len(s.tasks)).Msg("scheduler iniciado")
	return nil
}

// Stop cancela todas las tareas y espera a que terminen. Es idempotente.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.cancel()
	s.running = false
	s.mu.Unlock()

	s.wg.Wait()
	s.log.Info().Msg("scheduler detenido")
}

func (s *Scheduler) loop(ctx context.Context, t Task) {
	defer s.wg.Done()
	ticker := time.NewTicker(t.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.runOnce(ctx, t); err != nil {
				s.log.Error().Err(err).Str("task", t.Name).Msg("tarea periódica falló")
			}
		}
	}
}

// runOnce convierte un panic de la tarea en error para que el ticker siga vivo.
func (s *Scheduler) runOnce(ctx context.Context, t Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return t.Run(ctx)
}
