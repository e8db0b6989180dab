package storefront

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wheelmaster/tireshop/config"
	"github.com/wheelmaster/tireshop/internal/catalog"
	"github.com/wheelmaster/tireshop/internal/domain"
	"github.com/wheelmaster/tireshop/internal/orders"
	"github.com/wheelmaster/tireshop/internal/repository"
	"github.com/wheelmaster/tireshop/internal/testutil"
	"github.com/wheelmaster/tireshop/internal/webserver"
)

type staticCatalog struct {
	products []domain.Product
	err      error
}

func (s staticCatalog) Load() ([]domain.Product, error) {
	return s.products, s.err
}

type stubPlacer struct {
	status orders.Status
	got    []orders.OrderRequest
}

func (p *stubPlacer) PlaceOrder(ctx context.Context, req orders.OrderRequest) orders.Result {
	p.got = append(p.got, req)
	return orders.Result{Status: p.status}
}

func sampleProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Mirage MR-166", Description: "summer", Price: decimal.RequireFromString("1056.00"), Width: 155, ImageURL: "https://example.com/1.jpg"},
		{ID: 2, Name: "TurboDrive V5", Description: "premium", Price: decimal.RequireFromString("1250.5"), Width: 165, ImageURL: "https://example.com/2.jpg"},
	}
}

func newServer(loader CatalogLoader, placer OrderPlacer) *webserver.Server {
	s := webserver.New(config.WebConfig{Host: "127.0.0.1", Port: 0})
	New(loader, placer).Register(s.Echo())
	return s
}

func do(s *webserver.Server, method, target string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	return rec
}

func validForm() url.Values {
	return url.Values{
		"quantity": {"2"},
		"name":     {"A"},
		"phone":    {"000"},
		"email":    {"a@x.com"},
	}
}

func TestIndex(t *testing.T) {
	s := newServer(staticCatalog{products: sampleProducts()}, &stubPlacer{})
	rec := do(s, http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Mirage MR-166")
	assert.Contains(t, body, "TurboDrive V5")
	assert.Contains(t, body, "1056.00 UAH")
	assert.Contains(t, body, "1250.50 UAH")
	assert.Contains(t, body, `href="/order/2"`)
	assert.Less(t, strings.Index(body, "Mirage MR-166"), strings.Index(body, "TurboDrive V5"))
}

func TestIndex_CatalogFailure(t *testing.T) {
	for name, err := range map[string]error{
		"missing":   errors.Wrap(catalog.ErrFileMissing, "products.json"),
		"malformed": errors.Wrap(catalog.ErrParse, "products.json"),
	} {
		t.Run(name, func(t *testing.T) {
			s := newServer(staticCatalog{err: err}, &stubPlacer{})
			assert.Equal(t, http.StatusInternalServerError, do(s, http.MethodGet, "/", nil).Code)
			assert.Equal(t, http.StatusInternalServerError, do(s, http.MethodGet, "/order/1", nil).Code)
		})
	}
}

func TestOrderPage(t *testing.T) {
	s := newServer(staticCatalog{products: sampleProducts()}, &stubPlacer{})
	rec := do(s, http.MethodGet, "/order/2", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "TurboDrive V5")
	assert.Contains(t, rec.Body.String(), `action="/order/2"`)
	assert.Contains(t, rec.Body.String(), `name="quantity"`)
}

func TestOrderPage_NotFound(t *testing.T) {
	placer := &stubPlacer{status: orders.StatusPlaced}
	s := newServer(staticCatalog{products: sampleProducts()}, placer)

	for _, target := range []string{"/order/99", "/order/abc", "/order/1.5", "/order/-1"} {
		for _, method := range []string{http.MethodGet, http.MethodPost} {
			rec := do(s, method, target, validForm())
			assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s", method, target)
			assert.Equal(t, "Product not found", rec.Body.String())
		}
	}
	assert.Empty(t, placer.got)
}

func TestPlaceOrder_StatusMapping(t *testing.T) {
	cases := []struct {
		status orders.Status
		code   int
		text   string
	}{
		{orders.StatusPlaced, http.StatusOK, "Order accepted"},
		{orders.StatusInvalid, http.StatusBadRequest, "check the order form"},
		{orders.StatusSchemaViolation, http.StatusConflict, "cannot be ordered"},
		{orders.StatusConnectionFailure, http.StatusServiceUnavailable, "Database problem occurred"},
	}
	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			placer := &stubPlacer{status: tc.status}
			s := newServer(staticCatalog{products: sampleProducts()}, placer)

			rec := do(s, http.MethodPost, "/order/1", validForm())
			assert.Equal(t, tc.code, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.text)
			require.Len(t, placer.got, 1)
			assert.Equal(t, orders.OrderRequest{ProductID: 1, Quantity: 2, CustomerName: "A", Phone: "000", Email: "a@x.com"}, placer.got[0])
		})
	}
}

func TestPlaceOrder_BadForm(t *testing.T) {
	placer := &stubPlacer{status: orders.StatusPlaced}
	s := newServer(staticCatalog{products: sampleProducts()}, placer)

	for name, mutate := range map[string]func(url.Values){
		"non-integer quantity": func(v url.Values) { v.Set("quantity", "two") },
		"hex quantity":         func(v url.Values) { v.Set("quantity", "0x10") },
		"underscored quantity": func(v url.Values) { v.Set("quantity", "1_000") },
		"fractional quantity":  func(v url.Values) { v.Set("quantity", "2.5") },
		"exponent quantity":    func(v url.Values) { v.Set("quantity", "1e3") },
		"missing quantity":     func(v url.Values) { v.Del("quantity") },
		"missing email":        func(v url.Values) { v.Del("email") },
	} {
		t.Run(name, func(t *testing.T) {
			form := validForm()
			mutate(form)
			rec := do(s, http.MethodPost, "/order/1", form)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
	assert.Empty(t, placer.got)
}

func TestPlaceOrder_QuantityIsDecimal(t *testing.T) {
	for raw, want := range map[string]int{
		"010": 10,
		"09":  9,
		" 3 ": 3,
		"+4":  4,
		"2":   2,
	} {
		t.Run(raw, func(t *testing.T) {
			placer := &stubPlacer{status: orders.StatusPlaced}
			s := newServer(staticCatalog{products: sampleProducts()}, placer)

			form := validForm()
			form.Set("quantity", raw)
			rec := do(s, http.MethodPost, "/order/1", form)
			assert.Equal(t, http.StatusOK, rec.Code)
			require.Len(t, placer.got, 1)
			assert.Equal(t, want, placer.got[0].Quantity)
		})
	}
}

func TestParseQuantity(t *testing.T) {
	got, err := parseQuantity("-007")
	require.NoError(t, err)
	assert.Equal(t, -7, got)

	got, err = parseQuantity("000")
	require.NoError(t, err)
	assert.Zero(t, got)

	for _, raw := range []string{"", "0x10", "0o7", "0b1", "1_000", "2.0", "12345678901234567890123"} {
		_, err := parseQuantity(raw)
		assert.Error(t, err, raw)
	}
}

func TestPlaceOrder_EndToEnd(t *testing.T) {
	db := testutil.NewMigratedDB(t)
	testutil.CreateProduct(t, db, "Mirage MR-166", "1056.00")
	writer := orders.NewWriter(repository.NewGormOrderRepository(db))
	s := newServer(staticCatalog{products: sampleProducts()}, writer)

	rec := do(s, http.MethodPost, "/order/1", validForm())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Order accepted")

	// product 2 is in the catalog document but was never seeded
	rec = do(s, http.MethodPost, "/order/2", validForm())
	assert.Equal(t, http.StatusConflict, rec.Code)

	form := validForm()
	form.Set("quantity", "0")
	rec = do(s, http.MethodPost, "/order/1", form)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// larger than the quantity column holds: bad input, not a database outage
	form.Set("quantity", "3000000000")
	rec = do(s, http.MethodPost, "/order/1", form)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var stored []domain.Order
	require.NoError(t, db.Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.Equal(t, 2, stored[0].Quantity)
}
