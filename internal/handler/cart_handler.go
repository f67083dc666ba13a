package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/glonix/backend/internal/model"
	"github.com/glonix/backend/internal/pricing"
	"github.com/glonix/backend/internal/service"
	"github.com/glonix/backend/pkg/auth"
	"github.com/glonix/backend/pkg/commerce"
)

// CartHandler はカートの HTTP ハンドラ。
// 劣化モード（リモート到達不可）のカートも 200 で返し、sync_state で
// 区別する。認証エラーだけが 401 になる。
type CartHandler struct {
	cartService  service.CartService
	quoteService service.QuoteService
}

// NewCartHandler は CartHandler を生成する
func NewCartHandler(cartService service.CartService, quoteService service.QuoteService) *CartHandler {
	return &CartHandler{cartService: cartService, quoteService: quoteService}
}

func writeCartError(w http.ResponseWriter, err error, op string, userID string) {
	switch {
	case errors.Is(err, commerce.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, commerce.ErrRejected):
		writeError(w, http.StatusUnprocessableEntity, "rejected_by_server")
	default:
		slog.Error(op+" failed", "error", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error")
	}
}

// Get は GET /api/cart を処理する（認証必須）
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	cart, err := h.cartService.GetSnapshot(r.Context(), userID)
	if err != nil {
		writeCartError(w, err, "cart get", userID)
		return
	}
	writeJSON(w, map[string]*model.Cart{"cart": cart})
}

// AddItem は POST /api/cart/items を処理する（認証必須）
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var item model.CartItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if item.ProductRef == "" {
		writeError(w, http.StatusBadRequest, "product_id_required")
		return
	}

	cart, err := h.cartService.AddItem(r.Context(), userID, &item)
	if err != nil {
		writeCartError(w, err, "cart add", userID)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]*model.Cart{"cart": cart})
}

// quoteItemRequest is the expected JSON body for POST /api/cart/quote: a
// quote configuration plus the uploaded design file reference, if any.
type quoteItemRequest struct {
	model.QuoteRequest
	DesignFileURL string `json:"design_file_url"`
}

// AddQuoteItem は POST /api/cart/quote を処理する（認証必須）。
// 構成をサーバ側で価格計算し、その見積をスナップショットとして載せた
// カート行を追加する。クライアントが価格を自己申告する余地はない。
func (h *CartHandler) AddQuoteItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req quoteItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	quote, err := h.quoteService.Quote(r.Context(), userID, &req.QuoteRequest)
	if err != nil {
		var verr *pricing.ValidationError
		if errors.As(err, &verr) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error":  "invalid_configuration",
				"fields": verr.MissingOrInvalid,
			})
			return
		}
		slog.Error("quote for cart failed", "error", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}

	item := h.quoteService.CartItem(quote, req.DesignFileURL)
	cart, err := h.cartService.AddItem(r.Context(), userID, item)
	if err != nil {
		writeCartError(w, err, "cart quote add", userID)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]*model.Cart{"cart": cart})
}

// quantityRequest is the expected JSON body for PUT /api/cart/items/{id}.
type quantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateQuantity は PUT /api/cart/items/{id} を処理する（認証必須）。
// quantity <= 0 は行削除と同じ。
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	itemID := r.PathValue("id")
	if itemID == "" {
		writeError(w, http.StatusBadRequest, "id_required")
		return
	}

	var req quantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	cart, err := h.cartService.UpdateQuantity(r.Context(), userID, itemID, req.Quantity)
	if err != nil {
		writeCartError(w, err, "cart quantity update", userID)
		return
	}
	writeJSON(w, map[string]*model.Cart{"cart": cart})
}

// RemoveItem は DELETE /api/cart/items/{id} を処理する（認証必須）
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	itemID := r.PathValue("id")
	if itemID == "" {
		writeError(w, http.StatusBadRequest, "id_required")
		return
	}

	cart, err := h.cartService.RemoveItem(r.Context(), userID, itemID)
	if err != nil {
		writeCartError(w, err, "cart remove", userID)
		return
	}
	writeJSON(w, map[string]*model.Cart{"cart": cart})
}

// Clear は DELETE /api/cart を処理する（認証必須）
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.cartService.Clear(r.Context(), userID); err != nil {
		writeCartError(w, err, "cart clear", userID)
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}
