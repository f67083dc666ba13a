package model

import "time"

// Enquiry is a design or product enquiry submitted from the storefront.
type Enquiry struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"` // "design" | "product"
	UserID    string    `json:"user_id,omitempty"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	ProductID string    `json:"product_id,omitempty"` // product enquiries only
	Message   string    `json:"message"`
	FileURL   string    `json:"file_url,omitempty"` // design enquiries: uploaded spec/gerber
	Status    string    `json:"status"`             // "new" | "in_progress" | "resolved"
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EnquiryListOptions carries filter and pagination parameters for the admin
// enquiry list.
type EnquiryListOptions struct {
	Kind   string // "", "design", "product"
	Status string // "", "new", "in_progress", "resolved"
	Limit  int
	Offset int
}
