package service

import (
	"context"
	"errors"
	"testing"

	"github.com/glonix/backend/internal/funnel"
	"github.com/glonix/backend/internal/model"
	"github.com/glonix/backend/internal/repository"
)

// ---------------------------------------------------------------------------
// mockOrderRepository — in-memory stub for testing
// ---------------------------------------------------------------------------

type mockOrderRepository struct {
	createFunc       func(ctx context.Context, o *model.Order) error
	findByIDFunc     func(ctx context.Context, id string) (*model.Order, error)
	listFunc         func(ctx context.Context, opts model.OrderListOptions) ([]*model.Order, error)
	updateStatusFunc func(ctx context.Context, id, status string) error
}

func (m *mockOrderRepository) Create(ctx context.Context, o *model.Order) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, o)
	}
	o.ID = "order-1"
	return nil
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockOrderRepository) List(ctx context.Context, opts model.OrderListOptions) ([]*model.Order, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

func shippingAddress() model.Address {
	return model.Address{
		FirstName: "Erika",
		LastName:  "Tanaka",
		Address1:  "12 MG Road",
		City:      "Bengaluru",
		State:     "KA",
		ZipCode:   "560001",
		Country:   "IN",
	}
}

// checkoutFixture wires an order service on top of a real cart reconciler
// backed by the in-memory commerce fake.
func checkoutFixture(orderRepo repository.OrderRepository) (*fakeCommerceStore, *funnel.Tracker, CartService, OrderService) {
	store := newFakeStore()
	tracker := funnel.NewTracker(store)
	cart := NewCartService(store, newMemCache(), tracker)
	return store, tracker, cart, NewOrderService(orderRepo, cart, tracker)
}

// ---------------------------------------------------------------------------
// Checkout tests
// ---------------------------------------------------------------------------

func TestOrderService_Checkout_FreezesCartPrices(t *testing.T) {
	var created *model.Order
	orderRepo := &mockOrderRepository{
		createFunc: func(ctx context.Context, o *model.Order) error {
			created = o
			o.ID = "order-1"
			return nil
		},
	}
	store, tracker, cart, svc := checkoutFixture(orderRepo)
	ctx := context.Background()

	item := catalogItem("a")
	item.UnitPrice = model.Rupees(300)
	item.Quantity = 4
	if _, err := cart.AddItem(ctx, "u1", item); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	order, err := svc.Checkout(ctx, "u1", shippingAddress())
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	if created == nil {
		t.Fatal("expected order to be persisted")
	}
	if order.Subtotal != model.Rupees(1200) {
		t.Errorf("expected subtotal 1200.00, got %s", order.Subtotal)
	}
	if len(order.Items) != 1 || order.Items[0].Total != model.Rupees(1200) {
		t.Errorf("unexpected order lines: %+v", order.Items)
	}
	if order.Status != model.OrderPending {
		t.Errorf("expected pending status, got %q", order.Status)
	}

	// Checkout empties the cart and resets the funnel stage.
	if len(store.carts["u1"]) != 0 {
		t.Error("cart must be cleared after checkout")
	}
	if stage := tracker.Get("u1"); stage != model.FunnelNotVisited {
		t.Errorf("expected funnel reset to NotVisited, got %v", stage)
	}
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	_, _, _, svc := checkoutFixture(&mockOrderRepository{})
	if _, err := svc.Checkout(context.Background(), "u1", shippingAddress()); !errors.Is(err, ErrEmptyCart) {
		t.Errorf("expected ErrEmptyCart, got %v", err)
	}
}

func TestOrderService_Checkout_DegradedCartRefused(t *testing.T) {
	store, _, cart, svc := checkoutFixture(&mockOrderRepository{})
	ctx := context.Background()

	if _, err := cart.AddItem(ctx, "u1", catalogItem("a")); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	store.setUnreachable(true)

	if _, err := svc.Checkout(ctx, "u1", shippingAddress()); !errors.Is(err, ErrCartNotSynced) {
		t.Errorf("expected ErrCartNotSynced while the remote is down, got %v", err)
	}
}

func TestOrderService_Checkout_MissingAddress(t *testing.T) {
	_, _, cart, svc := checkoutFixture(&mockOrderRepository{})
	ctx := context.Background()
	_, _ = cart.AddItem(ctx, "u1", catalogItem("a"))

	if _, err := svc.Checkout(ctx, "u1", model.Address{}); err == nil {
		t.Error("expected error for missing shipping address")
	}
}

func TestOrderService_Checkout_CreateFailureLeavesCart(t *testing.T) {
	orderRepo := &mockOrderRepository{
		createFunc: func(ctx context.Context, o *model.Order) error {
			return errors.New("db write failed")
		},
	}
	store, _, cart, svc := checkoutFixture(orderRepo)
	ctx := context.Background()
	_, _ = cart.AddItem(ctx, "u1", catalogItem("a"))

	if _, err := svc.Checkout(ctx, "u1", shippingAddress()); err == nil {
		t.Fatal("expected checkout error")
	}
	// The cart is only cleared after the order row exists.
	if len(store.carts["u1"]) != 1 {
		t.Error("cart must survive a failed checkout")
	}
}

// ---------------------------------------------------------------------------
// Get / List / UpdateStatus tests
// ---------------------------------------------------------------------------

func TestOrderService_Get_OwnershipEnforced(t *testing.T) {
	orderRepo := &mockOrderRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Order, error) {
			return &model.Order{ID: id, UserID: "u1"}, nil
		},
	}
	_, _, _, svc := checkoutFixture(&mockOrderRepository{})
	svc = NewOrderService(orderRepo, nil, funnel.NewTracker(&nopStatusStore{}))

	if _, err := svc.Get(context.Background(), "u1", "order-1"); err != nil {
		t.Errorf("owner must see the order: %v", err)
	}
	if _, err := svc.Get(context.Background(), "u2", "order-1"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("foreign order must read as not found, got %v", err)
	}
}

func TestOrderService_ListForUser_ScopesToUser(t *testing.T) {
	var got model.OrderListOptions
	orderRepo := &mockOrderRepository{
		listFunc: func(ctx context.Context, opts model.OrderListOptions) ([]*model.Order, error) {
			got = opts
			return nil, nil
		},
	}
	svc := NewOrderService(orderRepo, nil, funnel.NewTracker(&nopStatusStore{}))

	// Even a caller-supplied UserID is overwritten with the session user.
	_, err := svc.ListForUser(context.Background(), "u1", model.OrderListOptions{UserID: "someone-else"})
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if got.UserID != "u1" {
		t.Errorf("expected list scoped to u1, got %q", got.UserID)
	}
}

func TestOrderService_UpdateStatus_RejectsUnknown(t *testing.T) {
	svc := NewOrderService(&mockOrderRepository{}, nil, funnel.NewTracker(&nopStatusStore{}))
	if err := svc.UpdateStatus(context.Background(), "order-1", "teleported"); err == nil {
		t.Error("expected error for unknown status")
	}
	if err := svc.UpdateStatus(context.Background(), "order-1", model.OrderShipped); err != nil {
		t.Errorf("shipped should be accepted: %v", err)
	}
}
