// internal/bridge/views.go
package bridge

import (
	"time"

	"storebridge/internal/shopify"
)

// Response views. Pure reshaping of wire records: nested collections keep
// the order the upstream returned them and are always present (empty slice
// or empty mapping, never a missing key). Timestamps render as RFC 3339 in
// UTC regardless of the upstream's zone offset.

type ProductView struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	ProductType string        `json:"product_type"`
	Vendor      string        `json:"vendor"`
	Tags        string        `json:"tags"`
	CreatedAt   string        `json:"created_at"`
	UpdatedAt   string        `json:"updated_at"`
	Variants    []VariantView `json:"variants"`
	Images      []ImageView   `json:"images"`
}

type VariantView struct {
	ID                int64  `json:"id"`
	Title             string `json:"title"`
	Price             string `json:"price"`
	SKU               string `json:"sku"`
	InventoryQuantity int    `json:"inventory_quantity"`
}

type ImageView struct {
	ID       int64  `json:"id"`
	Src      string `json:"src"`
	Position int    `json:"position"`
}

// SearchProductView is the search result shape. It intentionally differs
// from ProductView: no timestamps, and only the first image under the
// singular "image" key (kept for compatibility with existing clients).
type SearchProductView struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	ProductType string        `json:"product_type"`
	Vendor      string        `json:"vendor"`
	Tags        string        `json:"tags"`
	Variants    []VariantView `json:"variants"`
	Image       *ImageSrcView `json:"image,omitempty"`
}

type ImageSrcView struct {
	Src string `json:"src"`
}

type CustomerView struct {
	ID          int64         `json:"id"`
	Email       string        `json:"email"`
	FirstName   string        `json:"first_name"`
	LastName    string        `json:"last_name"`
	OrdersCount int           `json:"orders_count"`
	TotalSpent  string        `json:"total_spent"`
	CreatedAt   string        `json:"created_at"`
	Addresses   []AddressView `json:"addresses"`
}

type AddressView struct {
	Address1 string `json:"address1"`
	City     string `json:"city"`
	Province string `json:"province"`
	Country  string `json:"country"`
	Zip      string `json:"zip"`
}

type ShippingAddressView struct {
	Name     string `json:"name"`
	Address1 string `json:"address1"`
	City     string `json:"city"`
	Province string `json:"province"`
	Country  string `json:"country"`
	Zip      string `json:"zip"`
}

type OrderCustomerView struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// OrderView's customer and shipping_address render as {} when the order
// carries no snapshot, so both keys are typed any and filled by orderView.
type OrderView struct {
	ID                int64          `json:"id"`
	OrderNumber       int            `json:"order_number"`
	Email             string         `json:"email"`
	CreatedAt         string         `json:"created_at"`
	TotalPrice        string         `json:"total_price"`
	SubtotalPrice     string         `json:"subtotal_price"`
	TotalTax          string         `json:"total_tax"`
	Currency          string         `json:"currency"`
	FinancialStatus   string         `json:"financial_status"`
	FulfillmentStatus string         `json:"fulfillment_status"`
	Customer          any            `json:"customer"`
	ShippingAddress   any            `json:"shipping_address"`
	LineItems         []LineItemView `json:"line_items"`
}

type LineItemView struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
	SKU       string `json:"sku"`
	ProductID int64  `json:"product_id"`
	VariantID int64  `json:"variant_id"`
}

type ShopView struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Domain        string `json:"domain"`
	Province      string `json:"province"`
	Country       string `json:"country"`
	Address1      string `json:"address1"`
	Zip           string `json:"zip"`
	City          string `json:"city"`
	Phone         string `json:"phone"`
	CreatedAt     string `json:"created_at"`
	ShopOwner     string `json:"shop_owner"`
	PlanName      string `json:"plan_name"`
	HasStorefront bool   `json:"has_storefront"`
	MoneyFormat   string `json:"money_format"`
	WeightUnit    string `json:"weight_unit"`
	PrimaryLocale string `json:"primary_locale"`
	CountryName   string `json:"country_name"`
	Currency      string `json:"currency"`
	Timezone      string `json:"timezone"`
}

func productView(p shopify.Product) ProductView {
	variants := make([]VariantView, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, VariantView{
			ID:                v.ID,
			Title:             v.Title,
			Price:             v.Price,
			SKU:               v.SKU,
			InventoryQuantity: v.InventoryQuantity,
		})
	}
	images := make([]ImageView, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, ImageView{ID: img.ID, Src: img.Src, Position: img.Position})
	}
	return ProductView{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.BodyHTML,
		ProductType: p.ProductType,
		Vendor:      p.Vendor,
		Tags:        p.Tags,
		CreatedAt:   fmtTime(p.CreatedAt),
		UpdatedAt:   fmtTime(p.UpdatedAt),
		Variants:    variants,
		Images:      images,
	}
}

func searchProductView(p shopify.Product) SearchProductView {
	variants := make([]VariantView, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, VariantView{
			ID:                v.ID,
			Title:             v.Title,
			Price:             v.Price,
			SKU:               v.SKU,
			InventoryQuantity: v.InventoryQuantity,
		})
	}
	view := SearchProductView{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.BodyHTML,
		ProductType: p.ProductType,
		Vendor:      p.Vendor,
		Tags:        p.Tags,
		Variants:    variants,
	}
	if len(p.Images) > 0 {
		view.Image = &ImageSrcView{Src: p.Images[0].Src}
	}
	return view
}

func customerView(c shopify.Customer) CustomerView {
	addresses := make([]AddressView, 0, len(c.Addresses))
	for _, a := range c.Addresses {
		addresses = append(addresses, AddressView{
			Address1: a.Address1,
			City:     a.City,
			Province: a.Province,
			Country:  a.Country,
			Zip:      a.Zip,
		})
	}
	return CustomerView{
		ID:          c.ID,
		Email:       c.Email,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		OrdersCount: c.OrdersCount,
		TotalSpent:  c.TotalSpent,
		CreatedAt:   fmtTime(c.CreatedAt),
		Addresses:   addresses,
	}
}

func orderView(o shopify.Order) OrderView {
	items := make([]LineItemView, 0, len(o.LineItems))
	for _, li := range o.LineItems {
		items = append(items, LineItemView{
			ID:        li.ID,
			Title:     li.Title,
			Quantity:  li.Quantity,
			Price:     li.Price,
			SKU:       li.SKU,
			ProductID: li.ProductID,
			VariantID: li.VariantID,
		})
	}
	var customer any = map[string]any{}
	if o.Customer != nil {
		customer = OrderCustomerView{
			ID:        o.Customer.ID,
			Email:     o.Customer.Email,
			FirstName: o.Customer.FirstName,
			LastName:  o.Customer.LastName,
		}
	}
	var shipping any = map[string]any{}
	if o.ShippingAddress != nil {
		shipping = ShippingAddressView{
			Name:     o.ShippingAddress.Name,
			Address1: o.ShippingAddress.Address1,
			City:     o.ShippingAddress.City,
			Province: o.ShippingAddress.Province,
			Country:  o.ShippingAddress.Country,
			Zip:      o.ShippingAddress.Zip,
		}
	}
	return OrderView{
		ID:                o.ID,
		OrderNumber:       o.OrderNumber,
		Email:             o.Email,
		CreatedAt:         fmtTime(o.CreatedAt),
		TotalPrice:        o.TotalPrice,
		SubtotalPrice:     o.SubtotalPrice,
		TotalTax:          o.TotalTax,
		Currency:          o.Currency,
		FinancialStatus:   o.FinancialStatus,
		FulfillmentStatus: o.FulfillmentStatus,
		Customer:          customer,
		ShippingAddress:   shipping,
		LineItems:         items,
	}
}

func shopView(s shopify.Shop) ShopView {
	return ShopView{
		ID:            s.ID,
		Name:          s.Name,
		Email:         s.Email,
		Domain:        s.Domain,
		Province:      s.Province,
		Country:       s.Country,
		Address1:      s.Address1,
		Zip:           s.Zip,
		City:          s.City,
		Phone:         s.Phone,
		CreatedAt:     fmtTime(s.CreatedAt),
		ShopOwner:     s.ShopOwner,
		PlanName:      s.PlanName,
		HasStorefront: s.HasStorefront,
		MoneyFormat:   s.MoneyFormat,
		WeightUnit:    s.WeightUnit,
		PrimaryLocale: s.PrimaryLocale,
		CountryName:   s.CountryName,
		Currency:      s.Currency,
		Timezone:      s.Timezone,
	}
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
