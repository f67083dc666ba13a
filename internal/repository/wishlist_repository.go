package repository

import (
	"context"

	"github.com/glonix/backend/internal/model"
)

// WishlistRepository はウィッシュリスト永続化のインターフェース
type WishlistRepository interface {
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) error
	ListProducts(ctx context.Context, userID string) ([]*model.Product, error)
}
