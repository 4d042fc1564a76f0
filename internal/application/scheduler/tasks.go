package scheduler

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"

	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/pkg/logger"
)

// Intervalos por defecto del dashboard.
const (
	DefaultMetricsRefresh  = 30 * time.Second
	DefaultSimulationEvery = 45 * time.Second
)

// SimulationMessages títulos posibles de la actividad simulada.
var SimulationMessages = []string{
	"New product added to inventory",
	"Sale recorded successfully",
	"Customer profile updated",
	"Low stock alert triggered",
}

// SimulationDescription descripción fija de la actividad simulada.
const SimulationDescription = "System update"

// SummaryProvider lo implementa analytics.MetricsEngine.
type SummaryProvider interface {
	Summary() dto.DashboardSummaryDTO
}

// SummarySink recibe cada resumen calculado (gauges de Prometheus).
type SummarySink interface {
	Observe(summary dto.DashboardSummaryDTO)
}

// ActivityRecorder lo implementa inventory.Store.
type ActivityRecorder interface {
	RecordActivity(ctx context.Context, t entity.ActivityType, title, description string) (entity.Activity, error)
}

// MetricsRefreshTask recalcula el resumen del dashboard y lo publica en sink.
func MetricsRefreshTask(engine SummaryProvider, sink SummarySink, log *logger.Logger, every time.Duration) Task {
	if log == nil {
		log = logger.Nop()
	}
	return Task{
		Name:     "metrics-refresh",
		Interval: every,
		Run: func(context.Context) error {
			sum := engine.Summary()
			if sink != nil {
				sink.Observe(sum)
			}
			log.Debug().
				Int("products", sum.TotalProducts).
				Int("sales", sum.TotalSales).
				Str("revenue", sum.TotalRevenue.StringFixed(2)).
				Int("low_stock", sum.LowStockItems).
				Msg("métricas del dashboard actualizadas")
			return nil
		},
	}
}

// SimulationTask agrega una actividad informativa con un título elegido al azar.
func SimulationTask(recorder ActivityRecorder, every time.Duration) Task {
	return Task{
		Name:     "activity-simulation",
		Interval: every,
		Run: func(ctx context.Context) error {
			_, err := recorder.RecordActivity(ctx, entity.ActivityInfo, RandomChoice(SimulationMessages), SimulationDescription)
			return err
		},
	}
}

// RandomChoice elige un elemento con crypto/rand. choices no puede estar vacío.
func RandomChoice[T any](choices []T) T {
	return choices[randIntn(len(choices))]
}

func randIntn(max int) int {
	if max <= 0 {
		return 0
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0
	}
	return int(n.Int64())
}
