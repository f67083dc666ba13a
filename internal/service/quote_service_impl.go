package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/glonix/backend/internal/funnel"
	"github.com/glonix/backend/internal/model"
	"github.com/glonix/backend/internal/pricing"
)

// QuoteServiceImpl は QuoteService の実装。
type QuoteServiceImpl struct {
	engine *pricing.Engine
	funnel *funnel.Tracker
}

// NewQuoteService は QuoteServiceImpl を生成する（DI: engine / funnel を注入）
func NewQuoteService(engine *pricing.Engine, tracker *funnel.Tracker) QuoteService {
	return &QuoteServiceImpl{engine: engine, funnel: tracker}
}

func (s *QuoteServiceImpl) Quote(ctx context.Context, userID string, req *model.QuoteRequest) (*model.Quote, error) {
	q, err := s.engine.Quote(*req)
	if err != nil {
		return nil, err
	}
	// Pricing succeeded: the user has meaningfully engaged with the
	// configurator. Persistence failures are logged, not surfaced; the
	// quote itself is already computed.
	if userID != "" {
		if err := s.funnel.Advance(ctx, userID, model.FunnelVisited); err != nil {
			slog.Warn("funnel advance failed", "user_id", userID, "error", err)
		}
	}
	return q, nil
}

// CartItem turns a quote into a single cart line priced at the batch total.
// Per-unit and batch components are kept in the attached breakdown, so the
// line's unit price is the full quoted amount with quantity 1.
func (s *QuoteServiceImpl) CartItem(q *model.Quote, designFileURL string) *model.CartItem {
	name := "Custom PCB Fabrication"
	if q.Line == model.LineAssembly {
		name = "Custom PCB Assembly"
	}
	return &model.CartItem{
		ItemID:        uuid.New().String(),
		ProductRef:    "quote-" + string(q.Line),
		DisplayName:   name,
		UnitPrice:     q.TotalPrice,
		Quantity:      1,
		InStock:       true,
		Quote:         q,
		DesignFileURL: designFileURL,
		AddedAt:       time.Now().UTC(),
	}
}
