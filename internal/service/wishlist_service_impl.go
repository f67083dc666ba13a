package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/glonix/backend/internal/model"
	"github.com/glonix/backend/internal/repository"
)

// WishlistServiceImpl は WishlistService の実装
type WishlistServiceImpl struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

// NewWishlistService は WishlistServiceImpl を生成する（DI: 各 Repository を注入）
func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) WishlistService {
	return &WishlistServiceImpl{wishlistRepo: wishlistRepo, productRepo: productRepo}
}

// Add は商品をウィッシュリストに登録する（冪等）
func (s *WishlistServiceImpl) Add(ctx context.Context, userID, productID string) error {
	// 実在する商品のみ登録できる
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("wishlist: product %s not found", productID)
		}
		return err
	}
	return s.wishlistRepo.Add(ctx, userID, productID)
}

// Remove は商品をウィッシュリストから外す（冪等）
func (s *WishlistServiceImpl) Remove(ctx context.Context, userID, productID string) error {
	return s.wishlistRepo.Remove(ctx, userID, productID)
}

// ListProducts はユーザーのウィッシュリストの商品一覧を返す
func (s *WishlistServiceImpl) ListProducts(ctx context.Context, userID string) ([]*model.Product, error) {
	return s.wishlistRepo.ListProducts(ctx, userID)
}
