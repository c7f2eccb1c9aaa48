package bridge

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storebridge/internal/shopify"
)

// fakeStore is a canned StoreClient. err, when set, fails every call.
type fakeStore struct {
	products  []shopify.Product
	customers []shopify.Customer
	orders    []shopify.Order
	shop      shopify.Shop
	err       error

	calls int
}

func (f *fakeStore) Products(_ context.Context, limit int) ([]shopify.Product, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.products) {
		return f.products[:limit], nil
	}
	return f.products, nil
}

func (f *fakeStore) ProductByID(_ context.Context, id string) (shopify.Product, error) {
	f.calls++
	if f.err != nil {
		return shopify.Product{}, f.err
	}
	for _, p := range f.products {
		if fmt.Sprint(p.ID) == id {
			return p, nil
		}
	}
	return shopify.Product{}, shopify.ErrNotFound
}

func (f *fakeStore) Customers(_ context.Context, limit int) ([]shopify.Customer, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.customers) {
		return f.customers[:limit], nil
	}
	return f.customers, nil
}

func (f *fakeStore) CustomerByID(_ context.Context, id string) (shopify.Customer, error) {
	f.calls++
	if f.err != nil {
		return shopify.Customer{}, f.err
	}
	for _, c := range f.customers {
		if fmt.Sprint(c.ID) == id {
			return c, nil
		}
	}
	return shopify.Customer{}, shopify.ErrNotFound
}

func (f *fakeStore) Orders(_ context.Context, limit int) ([]shopify.Order, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.orders) {
		return f.orders[:limit], nil
	}
	return f.orders, nil
}

func (f *fakeStore) CurrentShop(_ context.Context) (shopify.Shop, error) {
	f.calls++
	if f.err != nil {
		return shopify.Shop{}, f.err
	}
	return f.shop, nil
}

func testLogger() *zap.SugaredLogger { return zap.NewNop().Sugar() }

func fixtureProducts(n int) []shopify.Product {
	products := make([]shopify.Product, 0, n)
	for i := 1; i <= n; i++ {
		products = append(products, shopify.Product{
			ID:          int64(i),
			Title:       fmt.Sprintf("Product %d", i),
			Vendor:      "Acme",
			ProductType: "Gadget",
			Tags:        "plain",
			Variants:    []shopify.Variant{{ID: int64(i * 100), Title: "Default", Price: "10.00", SKU: fmt.Sprintf("P%d", i)}},
			Images:      []shopify.Image{{ID: int64(i * 1000), Src: fmt.Sprintf("https://cdn/%d.png", i), Position: 1}},
		})
	}
	return products
}

func TestListProducts_LimitAndOwnership(t *testing.T) {
	store := &fakeStore{products: fixtureProducts(5)}
	svc := NewService(store, testLogger())

	views, err := svc.ListProducts(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, views, 3)

	// Original order, each product carrying only its own sub-records.
	for i, v := range views {
		assert.Equal(t, int64(i+1), v.ID)
		require.Len(t, v.Variants, 1)
		assert.Equal(t, int64((i+1)*100), v.Variants[0].ID)
		require.Len(t, v.Images, 1)
		assert.Equal(t, int64((i+1)*1000), v.Images[0].ID)
	}
}

func TestGetProduct_NotFoundYieldsEmptyMapping(t *testing.T) {
	store := &fakeStore{products: fixtureProducts(1)}
	svc := NewService(store, testLogger())

	result, err := svc.GetProduct(context.Background(), "999")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, result)
}

func TestGetProduct_Found(t *testing.T) {
	store := &fakeStore{products: fixtureProducts(2)}
	svc := NewService(store, testLogger())

	result, err := svc.GetProduct(context.Background(), "2")
	require.NoError(t, err)
	view, ok := result.(ProductView)
	require.True(t, ok)
	assert.Equal(t, int64(2), view.ID)
}

func TestSearchProducts_TitleMatchCaseInsensitive(t *testing.T) {
	products := fixtureProducts(50)
	products[24].Title = "Alpha Widget"
	store := &fakeStore{products: products}
	svc := NewService(store, testLogger())

	matches, err := svc.SearchProducts(context.Background(), "alpha", 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Alpha Widget", matches[0].Title)
}

func TestSearchProducts_TagsOnlyMatch(t *testing.T) {
	products := fixtureProducts(50)
	products[7].Tags = "seasonal, ALPHA, clearance"
	store := &fakeStore{products: products}
	svc := NewService(store, testLogger())

	matches, err := svc.SearchProducts(context.Background(), "alpha", 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, products[7].ID, matches[0].ID)
}

func TestSearchProducts_StopsAtLimit(t *testing.T) {
	// Every fixture product matches on vendor "Acme".
	store := &fakeStore{products: fixtureProducts(50)}
	svc := NewService(store, testLogger())

	matches, err := svc.SearchProducts(context.Background(), "acme", 4)
	require.NoError(t, err)
	require.Len(t, matches, 4)
	// Working-set order preserved.
	assert.Equal(t, int64(1), matches[0].ID)
	assert.Equal(t, int64(4), matches[3].ID)
}

func TestSearchProducts_SingularImageField(t *testing.T) {
	store := &fakeStore{products: fixtureProducts(3)}
	svc := NewService(store, testLogger())

	matches, err := svc.SearchProducts(context.Background(), "product 2", 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.NotNil(t, matches[0].Image)
	assert.Equal(t, "https://cdn/2.png", matches[0].Image.Src)
}

func TestSearchProducts_FetchesFixedWorkingSet(t *testing.T) {
	store := &fakeStore{products: fixtureProducts(5)}
	svc := NewService(store, testLogger())

	_, err := svc.SearchProducts(context.Background(), "acme", 2)
	require.NoError(t, err)
	assert.Equal(t, 1, store.calls)
}

func TestUpstreamErrorKinds(t *testing.T) {
	svc := NewService(&fakeStore{err: errors.New("connection refused")}, testLogger())
	_, err := svc.ListProducts(context.Background(), 10)
	var be *Error
	require.ErrorAs(t, err, &be)
	assert.Equal(t, KindUpstreamError, be.Kind)

	svc = NewService(&fakeStore{err: shopify.ErrTimeout}, testLogger())
	_, err = svc.ListOrders(context.Background(), 10)
	require.ErrorAs(t, err, &be)
	assert.Equal(t, KindUpstreamTimeout, be.Kind)
}

func TestStoreInfo(t *testing.T) {
	store := &fakeStore{shop: shopify.Shop{ID: 1, Name: "Demo", Currency: "USD"}}
	svc := NewService(store, testLogger())

	view, err := svc.StoreInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Demo", view.Name)
	assert.Equal(t, "USD", view.Currency)
}
