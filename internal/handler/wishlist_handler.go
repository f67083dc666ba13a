package handler

import (
	"log/slog"
	"net/http"

	"github.com/glonix/backend/internal/model"
	"github.com/glonix/backend/internal/service"
	"github.com/glonix/backend/pkg/auth"
)

// WishlistHandler はウィッシュリスト機能の HTTP ハンドラ
type WishlistHandler struct {
	wishlistService service.WishlistService
}

// NewWishlistHandler は WishlistHandler を生成する
func NewWishlistHandler(wishlistService service.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

// Add は POST /api/products/{id}/wishlist を処理する（認証必須・冪等）
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	productID := r.PathValue("id")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "id_required")
		return
	}

	if err := h.wishlistService.Add(r.Context(), userID, productID); err != nil {
		slog.Error("wishlist add failed", "error", err, "product_id", productID, "user_id", userID)
		writeError(w, http.StatusBadRequest, "add_failed")
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

// Remove は DELETE /api/products/{id}/wishlist を処理する（認証必須・冪等）
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	productID := r.PathValue("id")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "id_required")
		return
	}

	if err := h.wishlistService.Remove(r.Context(), userID, productID); err != nil {
		slog.Error("wishlist remove failed", "error", err, "product_id", productID, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

// List は GET /api/me/wishlist を処理する（認証必須）
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	products, err := h.wishlistService.ListProducts(r.Context(), userID)
	if err != nil {
		slog.Error("wishlist list failed", "error", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}

	// nil スライスを空配列として返す
	if products == nil {
		products = []*model.Product{}
	}
	writeJSON(w, map[string][]*model.Product{"products": products})
}
