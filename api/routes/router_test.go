package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/pharmacy-pos-backend/internal/inventory"
	"github.com/angelmondragon/pharmacy-pos-backend/internal/sales"
	"github.com/angelmondragon/pharmacy-pos-backend/pkg/config"
	"github.com/angelmondragon/pharmacy-pos-backend/pkg/db/dbtest"
	"github.com/angelmondragon/pharmacy-pos-backend/pkg/logger"
	"github.com/angelmondragon/pharmacy-pos-backend/pkg/metrics"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func testConfig() *config.Config {
	return &config.Config{
		App:  config.AppConfig{Env: config.AppEnvDev},
		HTTP: config.HTTPConfig{CORSOrigins: []string{"http://localhost:5500"}},
	}
}

func newTestRouter(t *testing.T, dbErr error) http.Handler {
	t.Helper()
	client := dbtest.NewSQLite(t)
	reg := prometheus.NewRegistry()

	inv, err := inventory.NewService(inventory.NewRepository(client.DB()), client)
	require.NoError(t, err)
	sal, err := sales.NewService(sales.ServiceParams{
		Repo:    sales.NewRepository(client.DB()),
		Tx:      client,
		Metrics: metrics.NewSalesMetrics(reg),
	})
	require.NoError(t, err)

	return NewRouter(
		testConfig(),
		logger.Nop(),
		stubPinger{err: dbErr},
		nil,
		metrics.NewHTTPMetrics(reg),
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		inv,
		sal,
	)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouterEndToEnd(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := do(t, router, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Pharmacy POS Backend is running!", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	rec = do(t, router, http.MethodPost, "/products", `{"name":"Paracetamol","price":5.00,"stock":10}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, router, http.MethodGet, "/products/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodPost, "/sales", `{"product_id":1,"quantity":3}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var receipt map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&receipt))
	assert.EqualValues(t, 15, receipt["total_price"])
	assert.EqualValues(t, 7, receipt["remaining_stock"])

	rec = do(t, router, http.MethodGet, "/products", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var products []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&products))
	require.Len(t, products, 1)
	assert.EqualValues(t, 7, products[0]["stock"])

	rec = do(t, router, http.MethodGet, "/sales", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var history []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&history))
	assert.Len(t, history, 1)

	rec = do(t, router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `pos_sales_total{outcome="committed"} 1`)
	assert.Contains(t, rec.Body.String(), `http_requests_total`)
}

func TestRouterNotFoundIsJSON(t *testing.T) {
	router := newTestRouter(t, nil)
	rec := do(t, router, http.MethodGet, "/nope", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"route not found","code":"NOT_FOUND"}`, rec.Body.String())
}

func TestRouterHealth(t *testing.T) {
	rec := do(t, newTestRouter(t, nil), http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, newTestRouter(t, errors.New("db down")), http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = do(t, newTestRouter(t, errors.New("db down")), http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterCORSPreflight(t *testing.T) {
	router := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodOptions, "/sales", nil)
	req.Header.Set("Origin", "http://localhost:5500")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:5500", rec.Header().Get("Access-Control-Allow-Origin"))
}
