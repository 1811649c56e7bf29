package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxuryconcept/storefront-backend/internal/catalog"
	"github.com/luxuryconcept/storefront-backend/internal/orders"
	"github.com/luxuryconcept/storefront-backend/pkg/config"
	pkgerrors "github.com/luxuryconcept/storefront-backend/pkg/errors"
	"github.com/luxuryconcept/storefront-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func withIDParam(req *http.Request, id string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

type stubCatalog struct {
	catalog.Service
	created  catalog.ProductInput
	updated  int64
	getErr   error
	delErr   error
	products []catalog.ProductDTO
}

func (s *stubCatalog) ListProducts(context.Context) ([]catalog.ProductDTO, error) {
	return s.products, nil
}

func (s *stubCatalog) GetProduct(_ context.Context, id int64) (*catalog.ProductDTO, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return &catalog.ProductDTO{ID: id, Name: "Chair", Price: decimal.NewFromInt(1000), AdditionalImages: []string{}}, nil
}

func (s *stubCatalog) CreateProduct(_ context.Context, in catalog.ProductInput) (int64, error) {
	s.created = in
	return 7, nil
}

func (s *stubCatalog) UpdateProduct(_ context.Context, id int64, _ catalog.ProductInput) error {
	s.updated = id
	return nil
}

func (s *stubCatalog) DeleteProduct(context.Context, int64) error {
	return s.delErr
}

type stubOrders struct {
	got orders.PlaceOrderInput
	err error
}

func (s *stubOrders) PlaceOrder(_ context.Context, in orders.PlaceOrderInput) (int64, error) {
	s.got = in
	if s.err != nil {
		return 0, s.err
	}
	return 42, nil
}

func (s *stubOrders) ListOrdersWithSummary(context.Context) ([]orders.OrderSummary, error) {
	return []orders.OrderSummary{{ID: 1, ItemsSummary: "Chair (x2)"}}, nil
}

type stubWaitlist struct {
	email string
	err   error
}

func (s *stubWaitlist) Join(_ context.Context, email string) error {
	s.email = email
	return s.err
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, dest))
}

func TestGetProduct(t *testing.T) {
	logg := testLogger()

	t.Run("found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		GetProduct(&stubCatalog{}, logg).ServeHTTP(rec, withIDParam(httptest.NewRequest(http.MethodGet, "/api/products/3", nil), "3"))
		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]any
		decodeData(t, rec, &body)
		assert.Equal(t, float64(3), body["id"])
		assert.Equal(t, float64(1000), body["price"])
	})

	t.Run("not found", func(t *testing.T) {
		svc := &stubCatalog{getErr: pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")}
		rec := httptest.NewRecorder()
		GetProduct(svc, logg).ServeHTTP(rec, withIDParam(httptest.NewRequest(http.MethodGet, "/api/products/3", nil), "3"))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unparseable id is not found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		GetProduct(&stubCatalog{}, logg).ServeHTTP(rec, withIDParam(httptest.NewRequest(http.MethodGet, "/api/products/abc", nil), "abc"))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), `"code":"NOT_FOUND"`)
	})

	t.Run("nil service", func(t *testing.T) {
		rec := httptest.NewRecorder()
		GetProduct(nil, logg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products/3", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestAdminCreateProduct(t *testing.T) {
	svc := &stubCatalog{}
	body := `{"name":" Test Chair ","price":1000,"category":"Living Room","additional_images":["a.jpg","b.jpg"]}`
	rec := httptest.NewRecorder()
	AdminCreateProduct(svc, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/products", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	var out map[string]int64
	decodeData(t, rec, &out)
	assert.Equal(t, int64(7), out["id"])
	assert.Equal(t, "Test Chair", svc.created.Name)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, svc.created.AdditionalImages)
	require.NotNil(t, svc.created.Price)
	assert.True(t, svc.created.Price.Equal(decimal.NewFromInt(1000)))
}

func TestAdminCreateProductRequiresNameAndPrice(t *testing.T) {
	rec := httptest.NewRecorder()
	AdminCreateProduct(&stubCatalog{}, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/products", strings.NewReader(`{"description":"x"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"price":"is required"`)
	assert.Contains(t, rec.Body.String(), `"name":"is required"`)
}

func TestAdminUpdateAndDeleteProduct(t *testing.T) {
	svc := &stubCatalog{}
	rec := httptest.NewRecorder()
	req := withIDParam(httptest.NewRequest(http.MethodPut, "/api/admin/products/9", strings.NewReader(`{"name":"New","price":5}`)), "9")
	AdminUpdateProduct(svc, testLogger()).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(9), svc.updated)
	assert.JSONEq(t, `{"data":{"success":true}}`, rec.Body.String())

	svc.delErr = pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
	rec = httptest.NewRecorder()
	AdminDeleteProduct(svc, testLogger()).ServeHTTP(rec, withIDParam(httptest.NewRequest(http.MethodDelete, "/api/admin/products/9", nil), "9"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPlaceOrder(t *testing.T) {
	svc := &stubOrders{}
	body := `{"customer_name":"Ada","customer_email":"ada@example.com","customer_phone":"555","customer_address":"1 Main",
		"items":[{"product_id":3,"quantity":2,"unit_price":1000}],"total_amount":2000}`
	rec := httptest.NewRecorder()
	PlaceOrder(svc, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"success":true,"orderId":42}}`, rec.Body.String())
	require.Len(t, svc.got.Items, 1)
	assert.Equal(t, int64(3), svc.got.Items[0].ProductID)
	assert.Equal(t, 2, svc.got.Items[0].Quantity)
	assert.True(t, svc.got.TotalAmount.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, "555", svc.got.Customer.Phone)
}

func TestPlaceOrderValidation(t *testing.T) {
	cases := map[string]string{
		"empty items":   `{"customer_name":"A","customer_email":"a@example.com","items":[],"total_amount":0}`,
		"zero quantity": `{"customer_name":"A","customer_email":"a@example.com","items":[{"product_id":1,"quantity":0}],"total_amount":0}`,
		"missing total": `{"customer_name":"A","customer_email":"a@example.com","items":[{"product_id":1,"quantity":1}]}`,
		"bad email":     `{"customer_name":"A","customer_email":"nope","items":[{"product_id":1,"quantity":1}],"total_amount":1}`,
		"unknown field": `{"customer_name":"A","customer_email":"a@example.com","items":[{"product_id":1,"quantity":1}],"total_amount":1,"coupon":"x"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			svc := &stubOrders{}
			rec := httptest.NewRecorder()
			PlaceOrder(svc, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body)))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, svc.got.Items, "service must not be called")
		})
	}
}

func TestPlaceOrderFailureIs500(t *testing.T) {
	svc := &stubOrders{err: pkgerrors.Wrap(pkgerrors.CodeInternal, errors.New("disk full"), "insert order")}
	body := `{"customer_name":"A","customer_email":"a@example.com","items":[{"product_id":1,"quantity":1}],"total_amount":1}`
	rec := httptest.NewRecorder()
	PlaceOrder(svc, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "disk full")
}

func TestAdminListOrders(t *testing.T) {
	rec := httptest.NewRecorder()
	AdminListOrders(&stubOrders{}, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var out []map[string]any
	decodeData(t, rec, &out)
	require.Len(t, out, 1)
	assert.Equal(t, "Chair (x2)", out[0]["items_summary"])
}

func TestJoinWaitlist(t *testing.T) {
	svc := &stubWaitlist{}
	rec := httptest.NewRecorder()
	JoinWaitlist(svc, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/waitlist", strings.NewReader(`{"email":"guest@example.com"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"success":true}}`, rec.Body.String())
	assert.Equal(t, "guest@example.com", svc.email)

	svc.err = pkgerrors.New(pkgerrors.CodeConflict, "Email already exists")
	rec = httptest.NewRecorder()
	JoinWaitlist(svc, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/waitlist", strings.NewReader(`{"email":"guest@example.com"}`)))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = httptest.NewRecorder()
	JoinWaitlist(svc, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/waitlist", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func TestHealthReady(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "dev"}}

	rec := httptest.NewRecorder()
	HealthReady(cfg, map[string]Pinger{"db": stubPinger{}, "redis": nil}, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dev", rec.Header().Get(envHeader))

	rec = httptest.NewRecorder()
	HealthReady(cfg, map[string]Pinger{"db": stubPinger{err: errors.New("down")}}, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"db":"down"`)

	rec = httptest.NewRecorder()
	HealthLive(cfg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
