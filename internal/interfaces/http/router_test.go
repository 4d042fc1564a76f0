package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-tracker/internal/application/analytics"
	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/application/export"
	"github.com/jhoicas/inventory-tracker/internal/application/inventory"
	"github.com/jhoicas/inventory-tracker/internal/application/persistence"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/infrastructure/memory"
	"github.com/jhoicas/inventory-tracker/internal/infrastructure/pdf"
	"github.com/jhoicas/inventory-tracker/internal/infrastructure/telemetry"
	apphttp "github.com/jhoicas/inventory-tracker/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	app   *fiber.App
	store *inventory.Store
	kv    *memory.KVStore
}

// buildTestApp arma la aplicación completa sobre almacenamiento en memoria con los
// cinco productos de demostración.
func buildTestApp(t *testing.T) testEnv {
	t.Helper()
	kv := memory.NewKVStore()
	store := inventory.NewStore(persistence.NewGateway(kv, nil), nil)
	require.Equal(t, 5, store.SeedDemoData(context.Background()))

	app := apphttp.NewApp(apphttp.RouterDeps{
		Store:     store,
		Metrics:   analytics.NewMetricsEngine(store),
		Export:    export.NewService(store, pdf.NewMarotoInventoryReport("test", inventory.DefaultLowStockThreshold)),
		Telemetry: telemetry.NewMetrics(),
		AppName:   "tracker-test",
		Driver:    "memory",
	})
	return testEnv{app: app, store: store, kv: kv}
}

// doRequest lanza la petición y devuelve status y cuerpo.
func doRequest(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(data, &out), string(data))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Products
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: alta, consulta, parche y baja de un producto.
func TestProducts_CicloCompleto(t *testing.T) {
	env := buildTestApp(t)

	resp, data := doRequest(t, env.app, http.MethodPost, "/api/products", map[string]any{
		"name": "USB Hub", "price": 1499.5, "stock": 20, "category": "Electronics",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(data))
	created := decode[entity.Product](t, data)
	assert.Equal(t, "USB Hub", created.Name)
	assert.True(t, created.Price.Equal(decimal.RequireFromString("1499.5")))
	assert.Equal(t, entity.DefaultSupplier, created.Supplier)

	resp, data = doRequest(t, env.app, http.MethodGet, "/api/products/"+created.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, created.SKU, decode[entity.Product](t, data).SKU)

	resp, data = doRequest(t, env.app, http.MethodPut, "/api/products/"+created.ID, map[string]any{"stock": 7})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(data))
	assert.Equal(t, 7, decode[entity.Product](t, data).Stock)

	resp, _ = doRequest(t, env.app, http.MethodDelete, "/api/products/"+created.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, data = doRequest(t, env.app, http.MethodGet, "/api/products/"+created.ID, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, data).Code)
}

// Caso 2: validación → 400 VALIDATION, cuerpo roto → 400 INVALID_BODY.
func TestProducts_Validacion(t *testing.T) {
	env := buildTestApp(t)

	resp, data := doRequest(t, env.app, http.MethodPost, "/api/products", map[string]any{"name": "X", "price": 0, "stock": 1})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, data).Code)

	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	r, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, r.StatusCode)

	assert.Len(t, env.store.Products(), 5, "ninguna petición fallida agrega productos")
}

func TestProducts_ListaFiltrada(t *testing.T) {
	env := buildTestApp(t)

	_, data := doRequest(t, env.app, http.MethodGet, "/api/products?category=Electronics", nil)
	assert.Len(t, decode[[]entity.Product](t, data), 2)

	_, data = doRequest(t, env.app, http.MethodGet, "/api/products?q=garden", nil)
	assert.Len(t, decode[[]entity.Product](t, data), 1)

	_, data = doRequest(t, env.app, http.MethodGet, "/api/products/categories", nil)
	assert.Equal(t, []string{"Electronics", "Clothing", "Books", "Home & Garden"}, decode[[]string](t, data))
}

func TestProducts_BulkDelete(t *testing.T) {
	env := buildTestApp(t)
	products := env.store.Products()

	resp, data := doRequest(t, env.app, http.MethodPost, "/api/products/bulk-delete", dto.BulkDeleteRequest{
		IDs: []string{products[0].ID, "nonexistent", products[1].ID},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[dto.BulkDeleteResponse](t, data)
	assert.Equal(t, 3, out.Requested)
	assert.Equal(t, 2, out.Removed)
	assert.Len(t, env.store.Products(), 3)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sales / Customers / Activities
// ──────────────────────────────────────────────────────────────────────────────

func TestSales_Registro(t *testing.T) {
	env := buildTestApp(t)

	resp, data := doRequest(t, env.app, http.MethodPost, "/api/sales", dto.RecordSaleRequest{
		ProductMatch: "Laptop Dell XPS 13", Quantity: 2, CustomerName: "Asha",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(data))
	sale := decode[entity.Sale](t, data)
	assert.True(t, sale.TotalPrice.Equal(decimal.RequireFromString("179998.00")))

	_, data = doRequest(t, env.app, http.MethodGet, "/api/sales", nil)
	assert.Len(t, decode[[]entity.Sale](t, data), 1)

	_, data = doRequest(t, env.app, http.MethodGet, "/api/sales?period=today", nil)
	assert.Len(t, decode[[]entity.Sale](t, data), 1)

	_, data = doRequest(t, env.app, http.MethodGet, "/api/activities?limit=1", nil)
	acts := decode[[]entity.Activity](t, data)
	require.Len(t, acts, 1)
	assert.Equal(t, "Sale recorded: 2x Laptop Dell XPS 13", acts[0].Title)
}

func TestSales_Errores(t *testing.T) {
	env := buildTestApp(t)
	cases := []struct {
		name   string
		in     dto.RecordSaleRequest
		status int
		code   string
	}{
		{"cantidad cero", dto.RecordSaleRequest{ProductMatch: "laptop", Quantity: 0}, fiber.StatusBadRequest, "VALIDATION"},
		{"sin coincidencia", dto.RecordSaleRequest{ProductMatch: "tablet", Quantity: 1}, fiber.StatusNotFound, "NOT_FOUND"},
		{"stock insuficiente", dto.RecordSaleRequest{ProductMatch: "javascript", Quantity: 4}, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, data := doRequest(t, env.app, http.MethodPost, "/api/sales", tc.in)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, decode[dto.ErrorResponse](t, data).Code)
		})
	}
	assert.Empty(t, env.store.Sales())

	resp, _ := doRequest(t, env.app, http.MethodGet, "/api/sales?period=decade", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCustomers(t *testing.T) {
	env := buildTestApp(t)

	resp, data := doRequest(t, env.app, http.MethodPost, "/api/customers", dto.CreateCustomerRequest{Name: "Ravi", Email: "ravi@example.com"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(data))
	assert.Equal(t, entity.StatusActive, decode[entity.Customer](t, data).Status)

	resp, _ = doRequest(t, env.app, http.MethodPost, "/api/customers", dto.CreateCustomerRequest{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	_, data = doRequest(t, env.app, http.MethodGet, "/api/customers", nil)
	assert.Len(t, decode[[]entity.Customer](t, data), 1)
}

func TestActivities_LimitePorDefecto(t *testing.T) {
	env := buildTestApp(t)
	for range 12 {
		_, err := env.store.RecordActivity(context.Background(), entity.ActivityInfo, "ping", "")
		require.NoError(t, err)
	}
	_, data := doRequest(t, env.app, http.MethodGet, "/api/activities", nil)
	assert.Len(t, decode[[]entity.Activity](t, data), 10)

	_, data = doRequest(t, env.app, http.MethodGet, "/api/activities?limit=500", nil)
	assert.Len(t, decode[[]entity.Activity](t, data), 17)
}

// ──────────────────────────────────────────────────────────────────────────────
// Metrics / Export / Health
// ──────────────────────────────────────────────────────────────────────────────

func TestMetrics_Endpoints(t *testing.T) {
	env := buildTestApp(t)

	_, data := doRequest(t, env.app, http.MethodGet, "/api/metrics/summary", nil)
	sum := decode[dto.DashboardSummaryDTO](t, data)
	assert.Equal(t, 5, sum.TotalProducts)
	assert.Equal(t, 2, sum.LowStockItems)
	assert.Equal(t, 4, sum.TotalCategories)

	_, data = doRequest(t, env.app, http.MethodGet, "/api/metrics/sales-by-day?days=7", nil)
	assert.Len(t, decode[[]dto.DailySalesDTO](t, data), 7)

	resp, _ := doRequest(t, env.app, http.MethodGet, "/api/metrics/sales-by-day?days=0", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	_, data = doRequest(t, env.app, http.MethodGet, "/api/metrics/top-products", nil)
	assert.Empty(t, decode[[]dto.TopProductDTO](t, data))

	_, data = doRequest(t, env.app, http.MethodGet, "/api/metrics/inventory-value?category=Books", nil)
	iv := decode[dto.InventoryValueDTO](t, data)
	assert.Equal(t, 1, iv.ProductCount)
	assert.True(t, iv.TotalValue.Equal(decimal.RequireFromString("2397")))

	resp, _ = doRequest(t, env.app, http.MethodGet, "/api/metrics/sales-in-period?period=year", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestExport_Descargas(t *testing.T) {
	env := buildTestApp(t)

	resp, data := doRequest(t, env.app, http.MethodGet, "/api/export", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "inventory-sales-data-")
	full := decode[dto.FullExport](t, data)
	assert.Len(t, full.Inventory, 5)
	assert.NotNil(t, full.Sales)

	resp, data = doRequest(t, env.app, http.MethodGet, "/api/export/inventory", nil)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "inventory-export-")
	assert.Len(t, decode[dto.InventoryExport](t, data).Suppliers, 5)

	resp, _ = doRequest(t, env.app, http.MethodGet, "/api/export/sales", nil)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "sales-export-")

	resp, data = doRequest(t, env.app, http.MethodGet, "/api/export/inventory.pdf", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

// Caso: el almacenamiento falla; la venta se aplica igual y /health informa la degradación.
func TestHealth_PersistenciaDegradada(t *testing.T) {
	env := buildTestApp(t)

	_, data := doRequest(t, env.app, http.MethodGet, "/health", nil)
	assert.Equal(t, "ok", decode[apphttp.HealthResponse](t, data).Persistence)

	env.kv.FailSet(persistence.KeySales, errors.New("quota exceeded"))
	resp, _ := doRequest(t, env.app, http.MethodPost, "/api/sales", dto.RecordSaleRequest{ProductMatch: "garden", Quantity: 1})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Len(t, env.store.Sales(), 1)

	_, data = doRequest(t, env.app, http.MethodGet, "/health", nil)
	health := decode[apphttp.HealthResponse](t, data)
	assert.Equal(t, "degraded", health.Persistence)
	assert.Contains(t, health.PersistenceWarning, "quota exceeded")
	assert.Equal(t, "memory", health.Storage)
}

func TestPrometheus_Y_RutaInexistente(t *testing.T) {
	env := buildTestApp(t)

	resp, data := doRequest(t, env.app, http.MethodGet, "/api/nope", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, data).Code)

	doRequest(t, env.app, http.MethodGet, "/api/products", nil)
	resp, data = doRequest(t, env.app, http.MethodGet, "/metrics", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), "inventory_tracker_http_requests_total")
}
