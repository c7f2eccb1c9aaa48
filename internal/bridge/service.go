// internal/bridge/service.go
package bridge

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"storebridge/internal/shopify"
)

// searchPageSize is the bounded working set fetched before client-side
// filtering. The Admin API's own search is too limited for substring
// matching across fields, so matching happens here.
const searchPageSize = 50

// StoreClient is the read-only slice of the upstream client the bridge
// consumes. Kept narrow so tests can stand in a fake.
type StoreClient interface {
	Products(ctx context.Context, limit int) ([]shopify.Product, error)
	ProductByID(ctx context.Context, id string) (shopify.Product, error)
	Customers(ctx context.Context, limit int) ([]shopify.Customer, error)
	CustomerByID(ctx context.Context, id string) (shopify.Customer, error)
	Orders(ctx context.Context, limit int) ([]shopify.Order, error)
	CurrentShop(ctx context.Context) (shopify.Shop, error)
}

// Service implements the seven bridge operations: fetch from the store,
// reshape to views. No caching, no cross-request state.
type Service struct {
	store StoreClient
	log   *zap.SugaredLogger
}

func NewService(store StoreClient, log *zap.SugaredLogger) *Service {
	return &Service{store: store, log: log}
}

func (s *Service) ListProducts(ctx context.Context, limit int) ([]ProductView, error) {
	products, err := s.store.Products(ctx, limit)
	if err != nil {
		return nil, s.upstream("list products", err)
	}
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, productView(p))
	}
	return views, nil
}

// GetProduct returns the product view, or an empty mapping when the id
// does not exist upstream.
func (s *Service) GetProduct(ctx context.Context, id string) (any, error) {
	p, err := s.store.ProductByID(ctx, id)
	if errors.Is(err, shopify.ErrNotFound) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, s.upstream("get product", err)
	}
	return productView(p), nil
}

func (s *Service) ListCustomers(ctx context.Context, limit int) ([]CustomerView, error) {
	customers, err := s.store.Customers(ctx, limit)
	if err != nil {
		return nil, s.upstream("list customers", err)
	}
	views := make([]CustomerView, 0, len(customers))
	for _, c := range customers {
		views = append(views, customerView(c))
	}
	return views, nil
}

func (s *Service) GetCustomer(ctx context.Context, id string) (any, error) {
	c, err := s.store.CustomerByID(ctx, id)
	if errors.Is(err, shopify.ErrNotFound) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, s.upstream("get customer", err)
	}
	return customerView(c), nil
}

func (s *Service) ListOrders(ctx context.Context, limit int) ([]OrderView, error) {
	orders, err := s.store.Orders(ctx, limit)
	if err != nil {
		return nil, s.upstream("list orders", err)
	}
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, orderView(o))
	}
	return views, nil
}

// SearchProducts fetches the working set and matches the query
// case-insensitively against title, vendor, product type and tags, in the
// order the upstream returned the page. Collection stops once limit
// matches are found; limit <= 0 means unbounded.
func (s *Service) SearchProducts(ctx context.Context, query string, limit int) ([]SearchProductView, error) {
	products, err := s.store.Products(ctx, searchPageSize)
	if err != nil {
		return nil, s.upstream("search products", err)
	}
	q := strings.ToLower(query)
	matches := make([]SearchProductView, 0)
	for _, p := range products {
		if !matchesQuery(p, q) {
			continue
		}
		matches = append(matches, searchProductView(p))
		if limit > 0 && len(matches) >= limit {
			break
		}
	}
	return matches, nil
}

func matchesQuery(p shopify.Product, q string) bool {
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Vendor), q) ||
		strings.Contains(strings.ToLower(p.ProductType), q) ||
		strings.Contains(strings.ToLower(p.Tags), q)
}

func (s *Service) StoreInfo(ctx context.Context) (ShopView, error) {
	shop, err := s.store.CurrentShop(ctx)
	if err != nil {
		return ShopView{}, s.upstream("store info", err)
	}
	return shopView(shop), nil
}

// upstream converts a client failure into the per-request error taxonomy.
// The timeout sentinel keeps its own kind so callers can tell a hung
// upstream from a broken one.
func (s *Service) upstream(op string, err error) error {
	s.log.Errorw("upstream call failed", "op", op, "err", err)
	if errors.Is(err, shopify.ErrTimeout) {
		return UpstreamTimeout(err)
	}
	return UpstreamError(err)
}
