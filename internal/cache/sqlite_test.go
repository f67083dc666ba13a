package cache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/glonix/backend/internal/model"
)

func newTestCache(t *testing.T) *SQLiteCache {
	t.Helper()
	c, err := NewSQLite(filepath.Join(t.TempDir(), "cart_cache.db"))
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func testItems() []*model.CartItem {
	return []*model.CartItem{
		{
			ItemID:      "item-1",
			ProductRef:  "prod-1",
			DisplayName: "2-Layer PCB 10pcs",
			SKU:         "FAB-2L",
			UnitPrice:   model.Rupees(1800),
			Quantity:    10,
			InStock:     true,
			AddedAt:     time.Now().UTC().Truncate(time.Second),
		},
		{
			ItemID:      "item-2",
			ProductRef:  "prod-2",
			DisplayName: "USB-C Breakout",
			SKU:         "GLX-041",
			UnitPrice:   model.Rupees(249),
			Quantity:    2,
			InStock:     true,
		},
	}
}

func TestSQLiteCache_LoadMissing(t *testing.T) {
	c := newTestCache(t)
	_, err := c.Load(context.Background(), "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteCache_SaveLoadRoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Save(ctx, "u1", testItems()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	items, err := c.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ItemID != "item-1" || items[0].UnitPrice != model.Rupees(1800) {
		t.Errorf("first item corrupted: %+v", items[0])
	}
	if items[1].Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", items[1].Quantity)
	}
}

// Save replaces the whole snapshot; no stale lines survive.
func TestSQLiteCache_SaveOverwrites(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	_ = c.Save(ctx, "u1", testItems())
	if err := c.Save(ctx, "u1", testItems()[:1]); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	items, err := c.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("expected 1 item after overwrite, got %d", len(items))
	}
}

func TestSQLiteCache_NamespacedPerUser(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	_ = c.Save(ctx, "u1", testItems())
	if _, err := c.Load(ctx, "u2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected u2 isolated from u1, got %v", err)
	}
}

func TestSQLiteCache_Clear(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	_ = c.Save(ctx, "u1", testItems())
	if err := c.Clear(ctx, "u1"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := c.Load(ctx, "u1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after Clear, got %v", err)
	}
	// Clear is idempotent.
	if err := c.Clear(ctx, "u1"); err != nil {
		t.Errorf("second Clear failed: %v", err)
	}
}

// The cache is the degraded-mode fallback across restarts: a new handle on
// the same file must see the snapshot.
func TestSQLiteCache_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cart_cache.db")
	ctx := context.Background()

	c1, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	if err := c1.Save(ctx, "u1", testItems()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	_ = c1.Close()

	c2, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer c2.Close()
	items, err := c2.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("Load after reopen failed: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("expected 2 items after reopen, got %d", len(items))
	}
}

func TestSQLiteCache_SaveNilAsEmpty(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Save(ctx, "u1", nil); err != nil {
		t.Fatalf("Save(nil) failed: %v", err)
	}
	items, err := c.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty cart, got %d items", len(items))
	}
}
