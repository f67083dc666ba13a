package service

import (
	"context"

	"github.com/glonix/backend/internal/model"
)

// CartService はカートの読み書きを司るインターフェース。
// リモートのコマース API を正とし、ローカルキャッシュへのフォールバックで
// 劣化モードを提供する（リコンサイラ）。
type CartService interface {
	// GetSnapshot returns the current cart. Remote wins whenever reachable;
	// otherwise the last cached snapshot is returned marked Degraded.
	GetSnapshot(ctx context.Context, userID string) (*model.Cart, error)
	// AddItem appends a price-snapshotted line and advances the user's
	// funnel stage to CartAdded.
	AddItem(ctx context.Context, userID string, item *model.CartItem) (*model.Cart, error)
	// UpdateQuantity sets a line's quantity; qty <= 0 removes the line.
	UpdateQuantity(ctx context.Context, userID string, itemID string, qty int) (*model.Cart, error)
	// RemoveItem deletes a line.
	RemoveItem(ctx context.Context, userID string, itemID string) (*model.Cart, error)
	// Clear empties the cart (remote and cache).
	Clear(ctx context.Context, userID string) error
}
