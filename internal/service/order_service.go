package service

import (
	"context"
	"errors"

	"github.com/glonix/backend/internal/model"
)

// ErrEmptyCart is returned when checkout is attempted with no cart lines.
var ErrEmptyCart = errors.New("cart is empty")

// ErrCartNotSynced is returned when checkout is attempted while the cart is
// in degraded mode. Orders are only cut from the authoritative remote cart,
// never from a local fallback that may be stale.
var ErrCartNotSynced = errors.New("cart not synced with server")

// OrderService は注文に関するビジネスロジックのインターフェース
type OrderService interface {
	// Checkout freezes the user's current cart into an order, clears the
	// cart and resets the funnel stage.
	Checkout(ctx context.Context, userID string, shipping model.Address) (*model.Order, error)
	Get(ctx context.Context, userID, orderID string) (*model.Order, error)
	ListForUser(ctx context.Context, userID string, opts model.OrderListOptions) ([]*model.Order, error)
	// ListAll is the admin all-orders view.
	ListAll(ctx context.Context, opts model.OrderListOptions) ([]*model.Order, error)
	// UpdateStatus moves an order along its lifecycle (admin only).
	UpdateStatus(ctx context.Context, orderID, status string) error
}
