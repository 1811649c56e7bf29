package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxuryconcept/storefront-backend/internal/access"
	"github.com/luxuryconcept/storefront-backend/internal/catalog"
	"github.com/luxuryconcept/storefront-backend/internal/orders"
	"github.com/luxuryconcept/storefront-backend/internal/waitlist"
	"github.com/luxuryconcept/storefront-backend/pkg/config"
	"github.com/luxuryconcept/storefront-backend/pkg/db/dbtest"
	"github.com/luxuryconcept/storefront-backend/pkg/logger"
	"github.com/luxuryconcept/storefront-backend/pkg/metrics"
)

const testAdminKey = "open-sesame"

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

func testConfig() *config.Config {
	return &config.Config{
		App:   config.AppConfig{Env: config.AppEnvDev},
		Admin: config.AdminConfig{Key: testAdminKey, Header: "X-Admin-Key"},
		Waitlist: config.WaitlistConfig{
			RateLimitWindow: time.Minute,
			RateLimitIP:     10,
			RateLimitEmail:  3,
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := testConfig()
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
	client := dbtest.NewSQLite(t)
	reg := prometheus.NewRegistry()
	storeMetrics := metrics.NewStoreMetrics(reg)

	productRepo := catalog.NewRepository(client.DB())
	catalogService, err := catalog.NewService(productRepo, client, logg)
	require.NoError(t, err)
	ordersService, err := orders.NewService(orders.NewRepository(client.DB()), productRepo, client, logg, storeMetrics)
	require.NoError(t, err)
	waitlistService, err := waitlist.NewService(waitlist.NewRepository(client.DB()), logg, storeMetrics)
	require.NoError(t, err)

	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		nil,
		access.NewStaticSecret(cfg.Admin.Key),
		catalogService,
		ordersService,
		waitlistService,
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		metrics.NewHTTPMetrics(reg),
	)
}

func do(t *testing.T, h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func admin() map[string]string {
	return map[string]string{"X-Admin-Key": testAdminKey}
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Error.Code
}

func TestCheckoutFlow(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/admin/products", `{"name":"Test Chair","price":1000,"category":"Chairs"}`, admin())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID int64 `json:"id"`
	}
	decodeData(t, rec, &created)
	require.Positive(t, created.ID)

	order := `{"customer_name":"Ada","customer_email":"ada@example.com","customer_phone":"555","customer_address":"1 Main St",` +
		`"items":[{"product_id":` + jsonInt(created.ID) + `,"quantity":2,"unit_price":1000}],"total_amount":2000}`
	rec = do(t, h, http.MethodPost, "/api/orders", order, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var placed struct {
		Success bool  `json:"success"`
		OrderID int64 `json:"orderId"`
	}
	decodeData(t, rec, &placed)
	assert.True(t, placed.Success)
	assert.Positive(t, placed.OrderID)

	rec = do(t, h, http.MethodGet, "/api/admin/orders", "", admin())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var listed []struct {
		ID           int64  `json:"id"`
		Status       string `json:"status"`
		ItemsSummary string `json:"items_summary"`
	}
	decodeData(t, rec, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, placed.OrderID, listed[0].ID)
	assert.Equal(t, "pending", listed[0].Status)
	assert.Equal(t, "Test Chair (x2)", listed[0].ItemsSummary)
}

func TestStaleCartRejected(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/admin/products", `{"name":"Sofa","price":500}`, admin())
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID int64 `json:"id"`
	}
	decodeData(t, rec, &created)

	order := `{"customer_name":"Ada","customer_email":"ada@example.com",` +
		`"items":[{"product_id":` + jsonInt(created.ID) + `,"quantity":1,"unit_price":450}],"total_amount":450}`
	rec = do(t, h, http.MethodPost, "/api/orders", order, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))

	rec = do(t, h, http.MethodGet, "/api/admin/orders", "", admin())
	var listed []json.RawMessage
	decodeData(t, rec, &listed)
	assert.Empty(t, listed)
}

func TestAdminRoutesRejectWrongSecret(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/admin/products", `{"name":"Lamp","price":80}`, admin())
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID int64 `json:"id"`
	}
	decodeData(t, rec, &created)
	path := "/api/products/" + jsonInt(created.ID)

	rec = do(t, h, http.MethodDelete, "/api/admin/products/"+jsonInt(created.ID), "", map[string]string{"X-Admin-Key": "wrong"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(t, rec))

	rec = do(t, h, http.MethodGet, "/api/admin/orders", "", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, h, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var product struct {
		Name string `json:"name"`
	}
	decodeData(t, rec, &product)
	assert.Equal(t, "Lamp", product.Name)

	rec = do(t, h, http.MethodDelete, "/api/admin/products/"+jsonInt(created.ID), "", admin())
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateMissingProduct(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPut, "/api/admin/products/999", `{"name":"Ghost","price":1}`, admin())
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, rec))
}

func TestUpdateAcceptsFetchedProduct(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/admin/products", `{"name":"Chair","price":100,"additional_images":["a.jpg"]}`, admin())
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID int64 `json:"id"`
	}
	decodeData(t, rec, &created)
	path := "/api/products/" + jsonInt(created.ID)

	rec = do(t, h, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var product map[string]any
	decodeData(t, rec, &product)
	require.Contains(t, product, "id")

	product["name"] = "Chair II"
	product["price"] = 120
	product["id"] = created.ID + 1000
	body, err := json.Marshal(product)
	require.NoError(t, err)

	rec = do(t, h, http.MethodPut, "/api/admin/products/"+jsonInt(created.ID), string(body), admin())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated struct {
		ID               int64    `json:"id"`
		Name             string   `json:"name"`
		Price            float64  `json:"price"`
		AdditionalImages []string `json:"additional_images"`
	}
	decodeData(t, rec, &updated)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Chair II", updated.Name)
	assert.Equal(t, float64(120), updated.Price)
	assert.Equal(t, []string{"a.jpg"}, updated.AdditionalImages)

	rec = do(t, h, http.MethodGet, "/api/products/"+jsonInt(created.ID+1000), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetProductUnparseableID(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/products/abc", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, rec))
}

func TestWaitlistDuplicate(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/waitlist", `{"email":"a@b.com"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/waitlist", `{"email":"A@B.com"}`, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", errorCode(t, rec))

	rec = do(t, h, http.MethodPost, "/api/waitlist", `{}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, config.AppEnvDev, rec.Header().Get("X-Storefront-Env"))

	rec = do(t, h, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `storefront_http_requests_total{method="GET",route="/api/products",status="200"} 1`)
}

func jsonInt(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}
