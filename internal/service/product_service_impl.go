package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/glonix/backend/internal/model"
	"github.com/glonix/backend/internal/repository"
)

// ProductServiceImpl は ProductService の実装
type ProductServiceImpl struct {
	productRepo repository.ProductRepository
}

// NewProductService は ProductServiceImpl を生成する（DI: ProductRepository を注入）
func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &ProductServiceImpl{productRepo: productRepo}
}

// Get は ID で商品を取得する
func (s *ProductServiceImpl) Get(ctx context.Context, id string) (*model.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// List はカタログ商品の一覧を返す
func (s *ProductServiceImpl) List(ctx context.Context, opts model.ProductListOptions) ([]*model.Product, error) {
	if opts.Limit <= 0 || opts.Limit > 100 {
		opts.Limit = 50
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	return s.productRepo.List(ctx, opts)
}

// Create は商品を作成する（管理者用）
func (s *ProductServiceImpl) Create(ctx context.Context, p *model.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("product: name required")
	}
	if strings.TrimSpace(p.SKU) == "" {
		return fmt.Errorf("product: sku required")
	}
	if p.Price < 0 {
		return fmt.Errorf("product: price must not be negative")
	}
	return s.productRepo.Create(ctx, p)
}

// Update は商品を部分更新する（管理者用）
func (s *ProductServiceImpl) Update(ctx context.Context, id string, patch model.ProductPatch) (*model.Product, error) {
	if patch.Price != nil && *patch.Price < 0 {
		return nil, fmt.Errorf("product: price must not be negative")
	}
	return s.productRepo.Update(ctx, id, patch)
}

// Delete は商品を削除する（管理者用）
func (s *ProductServiceImpl) Delete(ctx context.Context, id string) error {
	return s.productRepo.Delete(ctx, id)
}
