package service

import (
	"context"

	"github.com/glonix/backend/internal/model"
)

// WishlistService はウィッシュリスト機能に関するビジネスロジックのインターフェース
type WishlistService interface {
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) error
	ListProducts(ctx context.Context, userID string) ([]*model.Product, error)
}
