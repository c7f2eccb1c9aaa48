// internal/shopify/types.go
package shopify

import "time"

// Wire records for the Shopify REST Admin API. Every optional field the
// bridge reads is declared here; nothing is probed at runtime. Identifiers
// are int64 as the Admin API returns them, money amounts stay
// decimal-as-string.

type Product struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	BodyHTML    string    `json:"body_html"`
	ProductType string    `json:"product_type"`
	Vendor      string    `json:"vendor"`
	Tags        string    `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Variants    []Variant `json:"variants"`
	Images      []Image   `json:"images"`
}

type Variant struct {
	ID                int64  `json:"id"`
	Title             string `json:"title"`
	Price             string `json:"price"`
	SKU               string `json:"sku"`
	InventoryQuantity int    `json:"inventory_quantity"`
}

type Image struct {
	ID       int64  `json:"id"`
	Src      string `json:"src"`
	Position int    `json:"position"`
}

type Customer struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	OrdersCount int       `json:"orders_count"`
	TotalSpent  string    `json:"total_spent"`
	CreatedAt   time.Time `json:"created_at"`
	Addresses   []Address `json:"addresses"`
}

type Address struct {
	Name     string `json:"name"`
	Address1 string `json:"address1"`
	City     string `json:"city"`
	Province string `json:"province"`
	Country  string `json:"country"`
	Zip      string `json:"zip"`
}

type Order struct {
	ID                int64      `json:"id"`
	OrderNumber       int        `json:"order_number"`
	Email             string     `json:"email"`
	CreatedAt         time.Time  `json:"created_at"`
	TotalPrice        string     `json:"total_price"`
	SubtotalPrice     string     `json:"subtotal_price"`
	TotalTax          string     `json:"total_tax"`
	Currency          string     `json:"currency"`
	FinancialStatus   string     `json:"financial_status"`
	FulfillmentStatus string     `json:"fulfillment_status"`
	Customer          *Customer  `json:"customer"`
	ShippingAddress   *Address   `json:"shipping_address"`
	LineItems         []LineItem `json:"line_items"`
}

type LineItem struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
	SKU       string `json:"sku"`
	ProductID int64  `json:"product_id"`
	VariantID int64  `json:"variant_id"`
}

type Shop struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Domain        string    `json:"domain"`
	Province      string    `json:"province"`
	Country       string    `json:"country"`
	Address1      string    `json:"address1"`
	Zip           string    `json:"zip"`
	City          string    `json:"city"`
	Phone         string    `json:"phone"`
	CreatedAt     time.Time `json:"created_at"`
	ShopOwner     string    `json:"shop_owner"`
	PlanName      string    `json:"plan_name"`
	HasStorefront bool      `json:"has_storefront"`
	MoneyFormat   string    `json:"money_format"`
	WeightUnit    string    `json:"weight_unit"`
	PrimaryLocale string    `json:"primary_locale"`
	CountryName   string    `json:"country_name"`
	Currency      string    `json:"currency"`
	Timezone      string    `json:"timezone"`
}
