package service

import (
	"context"

	"github.com/glonix/backend/internal/model"
)

// ProductService はカタログ商品に関するビジネスロジックのインターフェース
type ProductService interface {
	Get(ctx context.Context, id string) (*model.Product, error)
	List(ctx context.Context, opts model.ProductListOptions) ([]*model.Product, error)
	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, id string, patch model.ProductPatch) (*model.Product, error)
	Delete(ctx context.Context, id string) error
}
