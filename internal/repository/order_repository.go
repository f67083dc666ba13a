package repository

import (
	"context"

	"github.com/glonix/backend/internal/model"
)

// OrderRepository は注文永続化のインターフェース
type OrderRepository interface {
	Create(ctx context.Context, o *model.Order) error
	FindByID(ctx context.Context, id string) (*model.Order, error)
	List(ctx context.Context, opts model.OrderListOptions) ([]*model.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
