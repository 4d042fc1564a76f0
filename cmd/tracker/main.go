package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/afero"

	"github.com/jhoicas/inventory-tracker/internal/application/analytics"
	"github.com/jhoicas/inventory-tracker/internal/application/export"
	"github.com/jhoicas/inventory-tracker/internal/application/inventory"
	"github.com/jhoicas/inventory-tracker/internal/application/persistence"
	"github.com/jhoicas/inventory-tracker/internal/application/scheduler"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
	"github.com/jhoicas/inventory-tracker/internal/infrastructure/filestore"
	"github.com/jhoicas/inventory-tracker/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/inventory-tracker/internal/infrastructure/pdf"
	"github.com/jhoicas/inventory-tracker/internal/infrastructure/postgres"
	"github.com/jhoicas/inventory-tracker/internal/infrastructure/sqlite"
	"github.com/jhoicas/inventory-tracker/internal/infrastructure/telemetry"
	httpRouter "github.com/jhoicas/inventory-tracker/internal/interfaces/http"
	"github.com/jhoicas/inventory-tracker/pkg/config"
	"github.com/jhoicas/inventory-tracker/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Almacenamiento: si el backend configurado no abre, se sigue en memoria para no
	// bloquear el arranque del resto.
	var kv repository.KeyValueStore = memory.NewKVStore()
	driver := config.DriverMemory
	runStep(log, "storage", func() error {
		opened, err := openStorage(ctx, cfg)
		if err != nil {
			return err
		}
		kv, driver = opened, cfg.Storage.Driver
		return nil
	})
	if driver != cfg.Storage.Driver {
		log.Warn().Str("configured", cfg.Storage.Driver).Msg("usando almacenamiento en memoria; los cambios no sobrevivirán al reinicio")
	}

	gateway := persistence.NewGateway(kv, log)
	store := inventory.NewStore(gateway, log.Component("store"),
		inventory.WithLowStockThreshold(cfg.Tracker.LowStockThreshold))

	runStep(log, "load", func() error {
		seeded := restoreState(ctx, log, gateway, store, cfg.Tracker.SeedDemo)
		if seeded > 0 {
			log.Info().Int("products", seeded).Msg("inventario de demostración sembrado")
		}
		return nil
	})

	engine := analytics.NewMetricsEngine(store, analytics.WithLowStockThreshold(store.LowStockThreshold()))
	metrics := telemetry.NewMetrics()
	runStep(log, "metrics-warmup", func() error {
		metrics.Observe(engine.Summary())
		return nil
	})

	sched := scheduler.New(log)
	sched.Add(scheduler.MetricsRefreshTask(engine, metrics, log.Component("metrics"), cfg.Tracker.MetricsRefresh))
	if cfg.Tracker.SimulationEnabled {
		sched.Add(scheduler.SimulationTask(store, cfg.Tracker.SimulationEvery))
	}
	runStep(log, "scheduler", func() error {
		return sched.Start(ctx)
	})

	exportSvc := export.NewService(store, infrapdf.NewMarotoInventoryReport(cfg.App.Name, store.LowStockThreshold()))
	var app *fiber.App
	runStep(log, "http", func() error {
		app = httpRouter.NewApp(httpRouter.RouterDeps{
			Store:     store,
			Metrics:   engine,
			Export:    exportSvc,
			Telemetry: metrics,
			Log:       log,
			AppName:   cfg.App.Name,
			Driver:    driver,
		})
		go func() {
			if err := app.Listen(cfg.HTTP.Addr()); err != nil {
				log.Error().Err(err).Msg("servidor HTTP finalizado")
			}
		}()
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("API escuchando")
		return nil
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sched.Stop()
	if app != nil {
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("apagado del servidor")
		}
	}
	if w := store.Flush(shutdownCtx); w != nil {
		log.Error().Err(w).Msg("volcado final")
	}
	if c, ok := kv.(repository.Closer); ok {
		if err := c.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar almacenamiento")
		}
	}

	log.Info().Msg("aplicación detenida")
}

// openStorage abre el backend elegido por STORAGE_DRIVER.
func openStorage(ctx context.Context, cfg *config.Config) (repository.KeyValueStore, error) {
	switch cfg.Storage.Driver {
	case config.DriverFile:
		return filestore.New(afero.NewOsFs(), cfg.Storage.Dir)
	case config.DriverSQLite:
		return sqlite.Open(cfg.Storage.SQLitePath, cfg.App.LogLevel == "debug")
	case config.DriverPostgres:
		connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		pool, err := postgres.NewPool(connectCtx, cfg.DB)
		if err != nil {
			return nil, err
		}
		kv, err := postgres.NewKVStore(connectCtx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return kv, nil
	default:
		return memory.NewKVStore(), nil
	}
}
