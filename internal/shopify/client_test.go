package shopify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storebridge/pkg/config"
)

func testConfig() config.Config {
	return config.Config{
		ShopURL:         "demo.myshopify.com",
		APIVersion:      "2023-01",
		AccessToken:     "shpat_test",
		UpstreamTimeout: 2 * time.Second,
	}
}

// testClient points a real client at the given test server with fast retries.
func testClient(srv *httptest.Server, cfg config.Config) *Client {
	c := New(cfg, zap.NewNop().Sugar())
	c.baseURL = srv.URL
	c.http = srv.Client()
	c.retryWaitMin = time.Millisecond
	c.retryWaitMax = 5 * time.Millisecond
	return c
}

func TestAPIBaseURL(t *testing.T) {
	assert.Equal(t, "https://demo.myshopify.com/admin/api/2023-01", apiBaseURL("demo.myshopify.com", "2023-01"))
	assert.Equal(t, "https://demo.myshopify.com/admin/api/2024-04", apiBaseURL("https://demo.myshopify.com/", "2024-04"))
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 1, clampLimit(0))
	assert.Equal(t, 1, clampLimit(-3))
	assert.Equal(t, 10, clampLimit(10))
	assert.Equal(t, 250, clampLimit(9999))
}

func TestProducts_RequestShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products.json", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("limit"))
		assert.Equal(t, "shpat_test", r.Header.Get("X-Shopify-Access-Token"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products":[{"id":1,"title":"One"},{"id":2,"title":"Two"}]}`))
	}))
	defer srv.Close()

	c := testClient(srv, testConfig())
	products, err := c.Products(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, "Two", products[1].Title)
}

func TestBasicAuthFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "key", user)
		assert.Equal(t, "secret", pass)
		_, _ = w.Write([]byte(`{"shop":{"id":1,"name":"Demo"}}`))
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.AccessToken = ""
	cfg.APIKey = "key"
	cfg.Password = "secret"

	c := testClient(srv, cfg)
	shop, err := c.CurrentShop(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Demo", shop.Name)
}

func TestProductByID_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/42.json", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := testClient(srv, testConfig())
	_, err := c.ProductByID(context.Background(), "42")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRetryOnServerError(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"orders":[{"id":5,"order_number":1005}]}`))
	}))
	defer srv.Close()

	c := testClient(srv, testConfig())
	orders, err := c.Orders(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 1005, orders[0].OrderNumber)
	assert.Equal(t, int32(2), hits.Load())
}

func TestNoRetryOnClientError(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := testClient(srv, testConfig())
	_, err := c.Customers(context.Background(), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Equal(t, int32(1), hits.Load())
}

func TestUpstreamTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(500 * time.Millisecond):
		}
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.UpstreamTimeout = 30 * time.Millisecond
	c := testClient(srv, cfg)
	c.timeout = cfg.UpstreamTimeout

	_, err := c.Products(context.Background(), 5)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestOrdersRequestsAnyStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "any", r.URL.Query().Get("status"))
		_, _ = w.Write([]byte(`{"orders":[]}`))
	}))
	defer srv.Close()

	c := testClient(srv, testConfig())
	orders, err := c.Orders(context.Background(), 3)
	require.NoError(t, err)
	assert.Empty(t, orders)
}
