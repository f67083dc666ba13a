package model

import "time"

// OrderItem is a cart line frozen into an order at checkout. Price is the
// snapshot carried over from the cart, never recomputed.
type OrderItem struct {
	ProductRef    string `json:"product_id"`
	Name          string `json:"product_name"`
	SKU           string `json:"product_sku"`
	UnitPrice     Money  `json:"price"`
	Quantity      int    `json:"quantity"`
	Total         Money  `json:"total"`
	DesignFileURL string `json:"design_file_url,omitempty"`
}

// Address is a shipping address captured at checkout.
type Address struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company,omitempty"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2,omitempty"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
	Country   string `json:"country"`
	Phone     string `json:"phone,omitempty"`
}

// Order statuses, in the usual forward progression. Cancelled can be set
// from any non-terminal status by an admin.
const (
	OrderPending    = "pending"
	OrderConfirmed  = "confirmed"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

type Order struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id"`
	Items     []*OrderItem `json:"items"`
	Subtotal  Money        `json:"subtotal"`
	Status    string       `json:"status"`
	Shipping  Address      `json:"shipping_address"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// OrderListOptions carries filter and pagination parameters for order lists.
type OrderListOptions struct {
	UserID string // empty for the admin all-orders list
	Status string
	Limit  int
	Offset int
}
