// internal/bridge/methods.go
package bridge

import "context"

// NewMethodRegistry binds the seven bridge operations into the single
// method table both transports dispatch through.
func NewMethodRegistry(svc *Service) *Registry {
	reg := NewRegistry()

	limitParam := Param{Name: "limit", Type: ParamInt, Default: 10, Description: "maximum number of records to return"}

	reg.Register(Method{
		Name:    "list_products",
		Summary: "List products from the store",
		Params:  []Param{limitParam},
		Handler: func(ctx context.Context, args map[string]any) (any, error) {
			return svc.ListProducts(ctx, args["limit"].(int))
		},
	})
	reg.Register(Method{
		Name:    "get_product",
		Summary: "Get one product by id",
		Params:  []Param{{Name: "id", Type: ParamString, Required: true, Description: "product id"}},
		Handler: func(ctx context.Context, args map[string]any) (any, error) {
			return svc.GetProduct(ctx, args["id"].(string))
		},
	})
	reg.Register(Method{
		Name:    "list_customers",
		Summary: "List customers from the store",
		Params:  []Param{limitParam},
		Handler: func(ctx context.Context, args map[string]any) (any, error) {
			return svc.ListCustomers(ctx, args["limit"].(int))
		},
	})
	reg.Register(Method{
		Name:    "get_customer",
		Summary: "Get one customer by id",
		Params:  []Param{{Name: "id", Type: ParamString, Required: true, Description: "customer id"}},
		Handler: func(ctx context.Context, args map[string]any) (any, error) {
			return svc.GetCustomer(ctx, args["id"].(string))
		},
	})
	reg.Register(Method{
		Name:    "list_orders",
		Summary: "List orders from the store",
		Params:  []Param{limitParam},
		Handler: func(ctx context.Context, args map[string]any) (any, error) {
			return svc.ListOrders(ctx, args["limit"].(int))
		},
	})
	reg.Register(Method{
		Name:    "search_products",
		Summary: "Search products by title, vendor, product type or tags",
		Params: []Param{
			{Name: "query", Type: ParamString, Required: true, Description: "search term"},
			limitParam,
		},
		Handler: func(ctx context.Context, args map[string]any) (any, error) {
			return svc.SearchProducts(ctx, args["query"].(string), args["limit"].(int))
		},
	})
	reg.Register(Method{
		Name:    "get_store_info",
		Summary: "Get store metadata",
		Handler: func(ctx context.Context, args map[string]any) (any, error) {
			return svc.StoreInfo(ctx)
		},
	})

	return reg
}
