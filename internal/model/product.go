package model

import "time"

// Product is a catalog item (connectors, modules, dev boards — anything sold
// as-is rather than quoted).
type Product struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	SKU           string            `json:"sku"`
	Category      string            `json:"category"`
	Price         Money             `json:"price"`
	ImageURL      string            `json:"image,omitempty"`
	Description   string            `json:"description,omitempty"`
	InStock       bool              `json:"in_stock"`
	StockQuantity int               `json:"stock_quantity"`
	Specifications map[string]string `json:"specifications,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// ProductPatch holds the fields an admin can update on a product.
type ProductPatch struct {
	Name          *string
	Category      *string
	Price         *Money
	ImageURL      *string
	Description   *string
	InStock       *bool
	StockQuantity *int
}

// ProductListOptions carries filter and pagination parameters for the
// catalog list.
type ProductListOptions struct {
	Category string
	Limit    int
	Offset   int
}
