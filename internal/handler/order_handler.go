package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/glonix/backend/internal/model"
	"github.com/glonix/backend/internal/repository"
	"github.com/glonix/backend/internal/service"
	"github.com/glonix/backend/pkg/auth"
	"github.com/glonix/backend/pkg/commerce"
)

// OrderHandler は注文の HTTP ハンドラ
type OrderHandler struct {
	orderService service.OrderService
}

// NewOrderHandler は OrderHandler を生成する
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// checkoutRequest is the expected JSON body for POST /api/orders.
type checkoutRequest struct {
	Shipping model.Address `json:"shipping_address"`
}

// Checkout は POST /api/orders を処理する（認証必須）
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	order, err := h.orderService.Checkout(r.Context(), userID, req.Shipping)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			writeError(w, http.StatusUnprocessableEntity, "cart_empty")
		case errors.Is(err, service.ErrCartNotSynced):
			// The authoritative cart store is unreachable. The client should
			// retry once connectivity is back rather than order blind.
			writeError(w, http.StatusServiceUnavailable, "cart_not_synced")
		case errors.Is(err, commerce.ErrUnauthorized):
			writeError(w, http.StatusUnauthorized, "unauthorized")
		default:
			slog.Error("checkout failed", "error", err, "user_id", userID)
			writeError(w, http.StatusInternalServerError, "checkout_failed")
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]*model.Order{"order": order})
}

// List は GET /api/orders を処理する（認証必須、自分の注文のみ）
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit, offset := parsePagination(r, 20)
	orders, err := h.orderService.ListForUser(r.Context(), userID, model.OrderListOptions{
		Status: r.URL.Query().Get("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		slog.Error("order list failed", "error", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	if orders == nil {
		orders = []*model.Order{}
	}
	writeJSON(w, map[string][]*model.Order{"orders": orders})
}

// Get は GET /api/orders/{id} を処理する（認証必須、自分の注文のみ）
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id_required")
		return
	}

	order, err := h.orderService.Get(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order_not_found")
			return
		}
		slog.Error("order get failed", "error", err, "order_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	writeJSON(w, map[string]*model.Order{"order": order})
}

// AdminList は GET /api/admin/orders を処理する（管理者専用）
func (h *OrderHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r, 20)
	orders, err := h.orderService.ListAll(r.Context(), model.OrderListOptions{
		Status: r.URL.Query().Get("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		slog.Error("admin order list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	if orders == nil {
		orders = []*model.Order{}
	}
	writeJSON(w, map[string][]*model.Order{"orders": orders})
}

// AdminUpdateStatus は PUT /api/admin/orders/{id}/status を処理する（管理者専用）
func (h *OrderHandler) AdminUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id_required")
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	if err := h.orderService.UpdateStatus(r.Context(), id, req.Status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order_not_found")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid_status")
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}
