package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glonix/backend/internal/model"
	"github.com/glonix/backend/internal/pricing"
	"github.com/glonix/backend/pkg/auth"
)

// ---------------------------------------------------------------------------
// mockQuoteService — QuoteService のモック
// ---------------------------------------------------------------------------

type mockQuoteService struct {
	quoteFunc    func(ctx context.Context, userID string, req *model.QuoteRequest) (*model.Quote, error)
	cartItemFunc func(q *model.Quote, designFileURL string) *model.CartItem
}

func (m *mockQuoteService) Quote(ctx context.Context, userID string, req *model.QuoteRequest) (*model.Quote, error) {
	if m.quoteFunc != nil {
		return m.quoteFunc(ctx, userID, req)
	}
	return &model.Quote{}, nil
}

func (m *mockQuoteService) CartItem(q *model.Quote, designFileURL string) *model.CartItem {
	if m.cartItemFunc != nil {
		return m.cartItemFunc(q, designFileURL)
	}
	return &model.CartItem{}
}

// ---------------------------------------------------------------------------
// POST /api/quote
// ---------------------------------------------------------------------------

func TestQuoteHandler_Quote_Success(t *testing.T) {
	var capturedUserID string
	mock := &mockQuoteService{
		quoteFunc: func(ctx context.Context, userID string, req *model.QuoteRequest) (*model.Quote, error) {
			capturedUserID = userID
			return &model.Quote{
				Line:       model.LineFabrication,
				Quantity:   req.Quantity,
				TotalPrice: model.Rupees(18000),
			}, nil
		},
	}
	h := NewQuoteHandler(mock)

	body := `{"line":"fabrication","quantity":10,"options":{"layers":"4"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/quote", strings.NewReader(body))
	req = req.WithContext(auth.WithUserID(req.Context(), "user-1"))
	rec := httptest.NewRecorder()
	h.Quote(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d — body: %s", rec.Code, rec.Body.String())
	}
	if capturedUserID != "user-1" {
		t.Errorf("expected userID=user-1, got %q", capturedUserID)
	}

	var resp struct {
		Quote *model.Quote `json:"quote"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Quote.TotalPrice != model.Rupees(18000) {
		t.Errorf("expected total 1800000 paise, got %d", resp.Quote.TotalPrice)
	}
}

func TestQuoteHandler_Quote_AnonymousAllowed(t *testing.T) {
	var capturedUserID string
	mock := &mockQuoteService{
		quoteFunc: func(ctx context.Context, userID string, req *model.QuoteRequest) (*model.Quote, error) {
			capturedUserID = userID
			return &model.Quote{Line: req.Line}, nil
		},
	}
	h := NewQuoteHandler(mock)

	body := `{"line":"assembly","quantity":5,"options":{}}`
	req := httptest.NewRequest(http.MethodPost, "/api/quote", strings.NewReader(body))
	// No auth in context
	rec := httptest.NewRecorder()
	h.Quote(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for anonymous quote, got %d", rec.Code)
	}
	if capturedUserID != "" {
		t.Errorf("expected empty userID for anonymous request, got %q", capturedUserID)
	}
}

func TestQuoteHandler_Quote_InvalidConfiguration(t *testing.T) {
	mock := &mockQuoteService{
		quoteFunc: func(ctx context.Context, userID string, req *model.QuoteRequest) (*model.Quote, error) {
			return nil, &pricing.ValidationError{MissingOrInvalid: []string{"layers", "soldermask=Chartreuse"}}
		},
	}
	h := NewQuoteHandler(mock)

	body := `{"line":"fabrication","quantity":10,"options":{"soldermask":"Chartreuse"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/quote", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Quote(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	var resp struct {
		Error  string   `json:"error"`
		Fields []string `json:"fields"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != "invalid_configuration" {
		t.Errorf("expected error=invalid_configuration, got %q", resp.Error)
	}
	if len(resp.Fields) != 2 {
		t.Errorf("expected 2 problem fields, got %v", resp.Fields)
	}
}

func TestQuoteHandler_Quote_InvalidJSON(t *testing.T) {
	mock := &mockQuoteService{}
	h := NewQuoteHandler(mock)

	req := httptest.NewRequest(http.MethodPost, "/api/quote", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Quote(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed body, got %d", rec.Code)
	}
}

func TestQuoteHandler_Quote_ServiceError(t *testing.T) {
	mock := &mockQuoteService{
		quoteFunc: func(ctx context.Context, userID string, req *model.QuoteRequest) (*model.Quote, error) {
			return nil, errors.New("cost table corrupted")
		},
	}
	h := NewQuoteHandler(mock)

	body := `{"line":"fabrication","quantity":10,"options":{}}`
	req := httptest.NewRequest(http.MethodPost, "/api/quote", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Quote(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 on service error, got %d", rec.Code)
	}
}

func TestQuoteHandler_Quote_ContentType(t *testing.T) {
	mock := &mockQuoteService{}
	h := NewQuoteHandler(mock)

	body := `{"line":"fabrication","quantity":10,"options":{}}`
	req := httptest.NewRequest(http.MethodPost, "/api/quote", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Quote(rec, req)

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type=application/json, got %q", ct)
	}
}
