package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/glonix/backend/internal/cache"
	"github.com/glonix/backend/internal/funnel"
	"github.com/glonix/backend/internal/model"
	"github.com/glonix/backend/pkg/commerce"
)

// CartServiceImpl は CartService の実装。
//
// Every mutation is attempted against the remote store first; on success the
// cache is overwritten with the authoritative result. When the remote is
// unreachable the mutation is applied optimistically to the cached snapshot
// and the cart is returned marked Degraded. There is no durable outbox: the
// next successful remote call treats the server cart as authoritative, so a
// degraded-mode delta can be discarded on reconnect. That trade-off is
// deliberate and surfaced through SyncState rather than hidden.
type CartServiceImpl struct {
	store  commerce.Client
	cache  cache.CartCache
	funnel *funnel.Tracker

	// Per-user mutation locks: concurrent mutations for one user are
	// serialized (no lost updates); different users never share a lock.
	mu    sync.Mutex
	locks map[string]*sync.Mutex

	// Concurrent snapshot reads for one user collapse into a single remote
	// fetch.
	group singleflight.Group
}

// NewCartService は CartServiceImpl を生成する（DI: store / cache / funnel を注入）
func NewCartService(store commerce.Client, c cache.CartCache, tracker *funnel.Tracker) CartService {
	return &CartServiceImpl{
		store:  store,
		cache:  c,
		funnel: tracker,
		locks:  make(map[string]*sync.Mutex),
	}
}

func (s *CartServiceImpl) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

func (s *CartServiceImpl) syncedCart(ctx context.Context, userID string, items []*model.CartItem) *model.Cart {
	if err := s.cache.Save(ctx, userID, items); err != nil {
		slog.Warn("cart cache save failed", "user_id", userID, "error", err)
	}
	now := time.Now().UTC()
	return &model.Cart{
		UserID:           userID,
		Items:            items,
		SyncState:        model.SyncSynced,
		LastRemoteSyncAt: &now,
	}
}

func (s *CartServiceImpl) degradedCart(userID string, items []*model.CartItem) *model.Cart {
	if items == nil {
		items = []*model.CartItem{}
	}
	return &model.Cart{
		UserID:    userID,
		Items:     items,
		SyncState: model.SyncDegraded,
	}
}

// loadCached returns the last cached snapshot, or an empty list when none
// exists.
func (s *CartServiceImpl) loadCached(ctx context.Context, userID string) []*model.CartItem {
	items, err := s.cache.Load(ctx, userID)
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			slog.Warn("cart cache load failed", "user_id", userID, "error", err)
		}
		return []*model.CartItem{}
	}
	return items
}

// degradable reports whether the remote failure may fall back to the local
// cache. Auth failures never degrade: an anonymous cart must not be
// persisted as if it belonged to a user. Remote validation rejections are
// surfaced for correction, not papered over.
func degradable(err error) bool {
	return !errors.Is(err, commerce.ErrUnauthorized) && !errors.Is(err, commerce.ErrRejected)
}

func (s *CartServiceImpl) GetSnapshot(ctx context.Context, userID string) (*model.Cart, error) {
	if userID == "" {
		return nil, commerce.ErrUnauthorized
	}
	v, err, _ := s.group.Do(userID, func() (any, error) {
		items, err := s.store.FetchCart(ctx, userID)
		if err != nil {
			if !degradable(err) {
				return nil, err
			}
			slog.Warn("cart fetch degraded to cache", "user_id", userID, "error", err)
			return s.degradedCart(userID, s.loadCached(ctx, userID)), nil
		}
		return s.syncedCart(ctx, userID, items), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.Cart), nil
}

func (s *CartServiceImpl) AddItem(ctx context.Context, userID string, item *model.CartItem) (*model.Cart, error) {
	if userID == "" {
		return nil, commerce.ErrUnauthorized
	}
	if item == nil || item.ProductRef == "" {
		return nil, fmt.Errorf("cart: item product reference required")
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	if item.ItemID == "" {
		item.ItemID = uuid.New().String()
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now().UTC()
	}

	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	result, err := s.store.AddItem(ctx, userID, item)
	if err != nil {
		if !degradable(err) {
			return nil, err
		}
		slog.Warn("cart add degraded to cache", "user_id", userID, "error", err)
		items := applyAdd(s.loadCached(ctx, userID), item)
		if err := s.cache.Save(ctx, userID, items); err != nil {
			slog.Warn("cart cache save failed", "user_id", userID, "error", err)
		}
		s.advanceFunnel(ctx, userID)
		return s.degradedCart(userID, items), nil
	}

	cart := s.syncedCart(ctx, userID, result)
	s.advanceFunnel(ctx, userID)
	return cart, nil
}

func (s *CartServiceImpl) advanceFunnel(ctx context.Context, userID string) {
	if err := s.funnel.Advance(ctx, userID, model.FunnelCartAdded); err != nil {
		slog.Warn("funnel advance failed", "user_id", userID, "error", err)
	}
}

func (s *CartServiceImpl) UpdateQuantity(ctx context.Context, userID string, itemID string, qty int) (*model.Cart, error) {
	if qty <= 0 {
		// Quantity updates to zero or below are removals.
		return s.RemoveItem(ctx, userID, itemID)
	}
	if userID == "" {
		return nil, commerce.ErrUnauthorized
	}

	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	current, err := s.store.FetchCart(ctx, userID)
	if err == nil {
		updated, found := applyQuantity(current, itemID, qty)
		if !found {
			return nil, fmt.Errorf("cart: item %s not found", itemID)
		}
		result, uerr := s.store.UpdateItems(ctx, userID, updated)
		if uerr == nil {
			return s.syncedCart(ctx, userID, result), nil
		}
		err = uerr
	}
	if !degradable(err) {
		return nil, err
	}

	slog.Warn("cart quantity update degraded to cache", "user_id", userID, "error", err)
	items, found := applyQuantity(s.loadCached(ctx, userID), itemID, qty)
	if !found {
		return nil, fmt.Errorf("cart: item %s not found", itemID)
	}
	if err := s.cache.Save(ctx, userID, items); err != nil {
		slog.Warn("cart cache save failed", "user_id", userID, "error", err)
	}
	return s.degradedCart(userID, items), nil
}

func (s *CartServiceImpl) RemoveItem(ctx context.Context, userID string, itemID string) (*model.Cart, error) {
	if userID == "" {
		return nil, commerce.ErrUnauthorized
	}

	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	result, err := s.store.RemoveItem(ctx, userID, itemID)
	if err != nil {
		if !degradable(err) {
			return nil, err
		}
		slog.Warn("cart remove degraded to cache", "user_id", userID, "error", err)
		items := applyRemove(s.loadCached(ctx, userID), itemID)
		if err := s.cache.Save(ctx, userID, items); err != nil {
			slog.Warn("cart cache save failed", "user_id", userID, "error", err)
		}
		return s.degradedCart(userID, items), nil
	}
	return s.syncedCart(ctx, userID, result), nil
}

func (s *CartServiceImpl) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return commerce.ErrUnauthorized
	}

	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	if err := s.store.ClearCart(ctx, userID); err != nil {
		if !degradable(err) {
			return err
		}
		slog.Warn("cart clear degraded to cache", "user_id", userID, "error", err)
	}
	if err := s.cache.Clear(ctx, userID); err != nil {
		return fmt.Errorf("cart: clear cache for %s: %w", userID, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Local mutation helpers (optimistic apply for degraded mode)
// ---------------------------------------------------------------------------

// applyAdd merges a catalog line onto an existing one for the same product
// (quote-built lines are always distinct), otherwise appends.
func applyAdd(items []*model.CartItem, item *model.CartItem) []*model.CartItem {
	if item.Quote == nil {
		for _, it := range items {
			if it.Quote == nil && it.ProductRef == item.ProductRef {
				it.Quantity += item.Quantity
				return items
			}
		}
	}
	return append(items, item)
}

func applyQuantity(items []*model.CartItem, itemID string, qty int) ([]*model.CartItem, bool) {
	for _, it := range items {
		if it.ItemID == itemID {
			it.Quantity = qty
			return items, true
		}
	}
	return items, false
}

func applyRemove(items []*model.CartItem, itemID string) []*model.CartItem {
	kept := make([]*model.CartItem, 0, len(items))
	for _, it := range items {
		if it.ItemID != itemID {
			kept = append(kept, it)
		}
	}
	return kept
}
