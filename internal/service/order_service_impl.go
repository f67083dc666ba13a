package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/glonix/backend/internal/funnel"
	"github.com/glonix/backend/internal/model"
	"github.com/glonix/backend/internal/repository"
)

// OrderServiceImpl は OrderService の実装
type OrderServiceImpl struct {
	orderRepo repository.OrderRepository
	cart      CartService
	funnel    *funnel.Tracker
}

// NewOrderService は OrderServiceImpl を生成する（DI: OrderRepository / cart / funnel を注入）
func NewOrderService(orderRepo repository.OrderRepository, cart CartService, tracker *funnel.Tracker) OrderService {
	return &OrderServiceImpl{orderRepo: orderRepo, cart: cart, funnel: tracker}
}

var orderStatuses = map[string]bool{
	model.OrderPending:    true,
	model.OrderConfirmed:  true,
	model.OrderProcessing: true,
	model.OrderShipped:    true,
	model.OrderDelivered:  true,
	model.OrderCancelled:  true,
}

// Checkout は現在のカートを注文として確定する。
// カート行のスナップショット価格をそのまま凍結し、再計算はしない。
func (s *OrderServiceImpl) Checkout(ctx context.Context, userID string, shipping model.Address) (*model.Order, error) {
	if strings.TrimSpace(shipping.Address1) == "" || strings.TrimSpace(shipping.City) == "" {
		return nil, fmt.Errorf("order: shipping address required")
	}

	cart, err := s.cart.GetSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart.SyncState == model.SyncDegraded {
		return nil, ErrCartNotSynced
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	order := &model.Order{
		UserID:   userID,
		Items:    make([]*model.OrderItem, 0, len(cart.Items)),
		Status:   model.OrderPending,
		Shipping: shipping,
	}
	for _, it := range cart.Items {
		order.Items = append(order.Items, &model.OrderItem{
			ProductRef:    it.ProductRef,
			Name:          it.DisplayName,
			SKU:           it.SKU,
			UnitPrice:     it.UnitPrice,
			Quantity:      it.Quantity,
			Total:         it.UnitPrice * model.Money(it.Quantity),
			DesignFileURL: it.DesignFileURL,
		})
		order.Subtotal += it.UnitPrice * model.Money(it.Quantity)
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	// Cart and funnel cleanup after the order row exists. Failures here are
	// logged, not surfaced; the order is already placed.
	if err := s.cart.Clear(ctx, userID); err != nil {
		slog.Warn("post-checkout cart clear failed", "user_id", userID, "order_id", order.ID, "error", err)
	}
	if err := s.funnel.Reset(ctx, userID, model.FunnelNotVisited); err != nil {
		slog.Warn("post-checkout funnel reset failed", "user_id", userID, "order_id", order.ID, "error", err)
	}

	slog.Info("order placed", "order_id", order.ID, "user_id", userID, "subtotal", order.Subtotal.String())
	return order, nil
}

// Get はユーザー自身の注文を取得する
func (s *OrderServiceImpl) Get(ctx context.Context, userID, orderID string) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	// 他人の注文は存在しないものとして扱う
	if order.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return order, nil
}

// ListForUser はユーザー自身の注文履歴を返す
func (s *OrderServiceImpl) ListForUser(ctx context.Context, userID string, opts model.OrderListOptions) ([]*model.Order, error) {
	opts.UserID = userID
	return s.list(ctx, opts)
}

// ListAll は全注文の一覧を返す（管理者用）
func (s *OrderServiceImpl) ListAll(ctx context.Context, opts model.OrderListOptions) ([]*model.Order, error) {
	opts.UserID = ""
	return s.list(ctx, opts)
}

func (s *OrderServiceImpl) list(ctx context.Context, opts model.OrderListOptions) ([]*model.Order, error) {
	if opts.Limit <= 0 || opts.Limit > 100 {
		opts.Limit = 50
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	return s.orderRepo.List(ctx, opts)
}

// UpdateStatus は注文ステータスを更新する（管理者用）
func (s *OrderServiceImpl) UpdateStatus(ctx context.Context, orderID, status string) error {
	if !orderStatuses[status] {
		return fmt.Errorf("order: invalid status %q", status)
	}
	return s.orderRepo.UpdateStatus(ctx, orderID, status)
}
