package service

import (
	"context"
	"errors"
	"testing"

	"github.com/glonix/backend/internal/funnel"
	"github.com/glonix/backend/internal/model"
	"github.com/glonix/backend/internal/pricing"
)

type nopStatusStore struct{ calls int }

func (n *nopStatusStore) UpdateFunnelStatus(_ context.Context, _ string, _ model.FunnelState) error {
	n.calls++
	return nil
}

func fabricationQuoteRequest() *model.QuoteRequest {
	return &model.QuoteRequest{
		Line:     model.LineFabrication,
		Quantity: 10,
		Options: map[model.OptionName]string{
			model.OptLayers:        "2",
			model.OptThickness:     "1.6",
			model.OptSoldermask:    "Green",
			model.OptSurfaceFinish: "HASL",
			model.OptViaCovering:   "Tented",
		},
	}
}

func TestQuoteService_AdvancesFunnelToVisited(t *testing.T) {
	store := &nopStatusStore{}
	tracker := funnel.NewTracker(store)
	svc := NewQuoteService(pricing.NewEngine(), tracker)

	q, err := svc.Quote(context.Background(), "u1", fabricationQuoteRequest())
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}
	if q.TotalPrice != model.Rupees(18000) {
		t.Errorf("expected 18000.00, got %s", q.TotalPrice)
	}
	if got := tracker.Get("u1"); got != model.FunnelVisited {
		t.Errorf("expected Visited, got %v", got)
	}
	if store.calls != 1 {
		t.Errorf("expected 1 status persist, got %d", store.calls)
	}
}

func TestQuoteService_AnonymousSkipsFunnel(t *testing.T) {
	store := &nopStatusStore{}
	svc := NewQuoteService(pricing.NewEngine(), funnel.NewTracker(store))

	if _, err := svc.Quote(context.Background(), "", fabricationQuoteRequest()); err != nil {
		t.Fatalf("Quote failed: %v", err)
	}
	if store.calls != 0 {
		t.Errorf("anonymous quote must not persist a funnel status, got %d calls", store.calls)
	}
}

func TestQuoteService_InvalidRequestDoesNotAdvance(t *testing.T) {
	store := &nopStatusStore{}
	tracker := funnel.NewTracker(store)
	svc := NewQuoteService(pricing.NewEngine(), tracker)

	req := fabricationQuoteRequest()
	req.Options[model.OptLayers] = "16"
	_, err := svc.Quote(context.Background(), "u1", req)

	var verr *pricing.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if got := tracker.Get("u1"); got != model.FunnelNotVisited {
		t.Errorf("failed quote must not advance the funnel, got %v", got)
	}
}

func TestQuoteService_FunnelPersistFailureDoesNotFailQuote(t *testing.T) {
	store := newFakeStore()
	store.unreachable = true
	svc := NewQuoteService(pricing.NewEngine(), funnel.NewTracker(store))

	// The quote itself is local and already computed; a status persist
	// failure is logged, not propagated.
	if _, err := svc.Quote(context.Background(), "u1", fabricationQuoteRequest()); err != nil {
		t.Fatalf("Quote failed: %v", err)
	}
}

func TestQuoteService_CartItem(t *testing.T) {
	svc := NewQuoteService(pricing.NewEngine(), funnel.NewTracker(&nopStatusStore{}))

	q, err := svc.Quote(context.Background(), "", fabricationQuoteRequest())
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}
	item := svc.CartItem(q, "https://files.example.com/gerber.zip")
	if item.ItemID == "" {
		t.Error("expected generated item id")
	}
	if item.ProductRef != "quote-fabrication" {
		t.Errorf("unexpected product ref %q", item.ProductRef)
	}
	if item.Quantity != 1 || item.UnitPrice != q.TotalPrice {
		t.Errorf("quote line must be a single line at the batch total: qty=%d price=%s", item.Quantity, item.UnitPrice)
	}
	if item.Quote == nil || item.Quote.Quantity != 10 {
		t.Error("expected the full quote to ride on the line")
	}
	if item.DesignFileURL != "https://files.example.com/gerber.zip" {
		t.Errorf("unexpected design file url %q", item.DesignFileURL)
	}
}
