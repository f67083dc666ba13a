package model

import "time"

// SyncState reports which side of the cart persistence pair is authoritative.
type SyncState string

const (
	// SyncSynced: the remote commerce API accepted the last operation; the
	// local cache is a plain mirror.
	SyncSynced SyncState = "synced"
	// SyncDegraded: the remote store was unreachable; the cart reflects the
	// local cache only and deltas may be discarded once the remote is back.
	SyncDegraded SyncState = "degraded"
)

// CartItem is one cart line. UnitPrice is a snapshot captured when the item
// was added; later catalog or cost-table changes never reprice it.
type CartItem struct {
	ItemID      string    `json:"item_id"`
	ProductRef  string    `json:"product_id"`
	DisplayName string    `json:"name"`
	SKU         string    `json:"sku"`
	UnitPrice   Money     `json:"price"`
	Quantity    int       `json:"quantity"`
	ImageURL    string    `json:"image,omitempty"`
	InStock     bool      `json:"in_stock"`
	// Quote holds the full quotation for configurator-built items; nil for
	// catalog products.
	Quote *Quote `json:"quote,omitempty"`
	// DesignFileURL is the opaque reference returned by the upload
	// collaborator (gerber/BOM archive), if any.
	DesignFileURL string    `json:"design_file_url,omitempty"`
	AddedAt       time.Time `json:"added_at"`
}

// Cart is one user's cart. Items are ordered and keyed by unique ItemID;
// quantity is always >= 1 (updates to <= 0 remove the line).
type Cart struct {
	UserID           string      `json:"user_id"`
	Items            []*CartItem `json:"items"`
	SyncState        SyncState   `json:"sync_state"`
	LastRemoteSyncAt *time.Time  `json:"last_remote_sync_at,omitempty"`
}

// Find returns the item with the given id, or nil.
func (c *Cart) Find(itemID string) *CartItem {
	for _, it := range c.Items {
		if it.ItemID == itemID {
			return it
		}
	}
	return nil
}

// TotalItems returns the summed quantity across all lines.
func (c *Cart) TotalItems() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// TotalPrice returns the cart total from the snapshotted unit prices.
func (c *Cart) TotalPrice() Money {
	var total Money
	for _, it := range c.Items {
		total += it.UnitPrice * Money(it.Quantity)
	}
	return total
}
