// Package telemetry publica las cifras del dashboard y del adaptador HTTP como métricas
// Prometheus.
package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/inventory-tracker/internal/application/dto"
)

const namespace = "inventory_tracker"

// Metrics registro propio (no el global) para que los tests no colisionen.
type Metrics struct {
	registry *prometheus.Registry

	products   prometheus.Gauge
	sales      prometheus.Gauge
	revenue    prometheus.Gauge
	lowStock   prometheus.Gauge
	categories prometheus.Gauge
	refreshed  prometheus.Gauge

	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewMetrics registra gauges del dashboard, métricas HTTP y los collectors de proceso y Go.
func NewMetrics() *Metrics {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Subsystem: "dashboard", Name: name, Help: help})
	}
	m := &Metrics{
		registry:   prometheus.NewRegistry(),
		products:   gauge("products", "Productos en el inventario."),
		sales:      gauge("sales", "Ventas registradas."),
		revenue:    gauge("revenue", "Ingreso total de todas las ventas."),
		lowStock:   gauge("low_stock_products", "Productos con stock por debajo del umbral."),
		categories: gauge("categories", "Categorías distintas en el inventario."),
		refreshed:  gauge("last_refresh_timestamp_seconds", "Momento del último refresco de métricas."),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "http", Name: "requests_total",
			Help: "Peticiones HTTP atendidas por ruta, método y código.",
		}, []string{"route", "method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "http", Name: "request_duration_seconds",
			Help:    "Duración de las peticiones HTTP.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
	m.registry.MustRegister(
		m.products, m.sales, m.revenue, m.lowStock, m.categories, m.refreshed,
		m.requests, m.latency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Observe implementa scheduler.SummarySink.
func (m *Metrics) Observe(sum dto.DashboardSummaryDTO) {
	m.products.Set(float64(sum.TotalProducts))
	m.sales.Set(float64(sum.TotalSales))
	m.revenue.Set(sum.TotalRevenue.InexactFloat64())
	m.lowStock.Set(float64(sum.LowStockItems))
	m.categories.Set(float64(sum.TotalCategories))
	m.refreshed.SetToCurrentTime()
}

// ObserveRequest registra una petición terminada.
func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// Handler expone el registro en formato texto de Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry acceso directo (tests).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
