package service

import (
	"context"

	"github.com/glonix/backend/internal/model"
)

// QuoteService は見積計算を司るインターフェース。
type QuoteService interface {
	// Quote prices a fabrication or assembly request against the current
	// cost tables. A successful quote advances the user's funnel stage to
	// Visited (anonymous requests, empty userID, skip the funnel).
	Quote(ctx context.Context, userID string, req *model.QuoteRequest) (*model.Quote, error)
	// CartItem converts a quote into a cart line carrying the full
	// breakdown and an optional uploaded design file reference.
	CartItem(q *model.Quote, designFileURL string) *model.CartItem
}
