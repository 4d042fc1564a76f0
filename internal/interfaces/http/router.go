// Package http expone el núcleo del tracker como API JSON local (Fiber). Es la frontera que
// usa la capa de presentación; no agrega reglas de negocio propias.
package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/inventory-tracker/internal/application/analytics"
	"github.com/jhoicas/inventory-tracker/internal/application/export"
	"github.com/jhoicas/inventory-tracker/internal/application/inventory"
	"github.com/jhoicas/inventory-tracker/internal/infrastructure/telemetry"
	"github.com/jhoicas/inventory-tracker/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Store     *inventory.Store
	Metrics   *analytics.MetricsEngine
	Export    *export.Service
	Telemetry *telemetry.Metrics // opcional: sin él no se monta /metrics
	Log       *logger.Logger
	AppName   string
	Driver    string // backend de almacenamiento, informado en /health
}

// NewApp construye la aplicación Fiber con recover, métricas por petición y el router.
func NewApp(deps RouterDeps) *fiber.App {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:               deps.AppName,
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(requestLogger(deps.Log, deps.Telemetry))
	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	health := NewHealthHandler(deps.Store, deps.Driver)
	app.Get("/health", health.Get)
	if deps.Telemetry != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Telemetry.Handler()))
	}

	api := app.Group("/api")

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.Store)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Post("/bulk-delete", productHandler.BulkDelete)
	products.Get("/categories", productHandler.Categories)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Sales
	sales := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.Store, deps.Metrics)
	sales.Get("/", saleHandler.List)
	sales.Post("/", saleHandler.Create)

	// Customers
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.Store)
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)

	// Activity feed
	activityHandler := NewActivityHandler(deps.Store)
	api.Get("/activities", activityHandler.List)

	// Dashboard metrics
	metrics := api.Group("/metrics")
	metricsHandler := NewMetricsHandler(deps.Metrics)
	metrics.Get("/summary", metricsHandler.Summary)
	metrics.Get("/sales-by-day", metricsHandler.SalesByDay)
	metrics.Get("/top-products", metricsHandler.TopProducts)
	metrics.Get("/inventory-value", metricsHandler.InventoryValue)
	metrics.Get("/sales-in-period", metricsHandler.SalesInPeriod)

	// Export
	exports := api.Group("/export")
	exportHandler := NewExportHandler(deps.Export)
	exports.Get("/", exportHandler.Full)
	exports.Get("/inventory", exportHandler.Inventory)
	exports.Get("/sales", exportHandler.Sales)
	exports.Get("/inventory.pdf", exportHandler.InventoryPDF)
}

// requestLogger registra cada petición (debug) y alimenta las métricas HTTP.
func requestLogger(log *logger.Logger, tm *telemetry.Metrics) fiber.Handler {
	log = log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// Dejar que el ErrorHandler escriba la respuesta antes de leer el status.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		elapsed := time.Since(start)
		status := c.Response().StatusCode()
		route := c.Route().Path

		log.Debug().
			Str("method", c.Method()).
			Str("route", route).
			Int("status", status).
			Dur("elapsed", elapsed).
			Msg("request")
		if tm != nil {
			tm.ObserveRequest(route, c.Method(), status, elapsed)
		}
		return nil
	}
}
