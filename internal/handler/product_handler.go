package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/glonix/backend/internal/model"
	"github.com/glonix/backend/internal/repository"
	"github.com/glonix/backend/internal/service"
)

// ProductHandler はカタログ商品の HTTP ハンドラ
type ProductHandler struct {
	productService service.ProductService
}

// NewProductHandler は ProductHandler を生成する
func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func parsePagination(r *http.Request, defaultLimit int) (limit, offset int) {
	limit, offset = defaultLimit, 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

// List は GET /api/products を処理する（公開）
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r, 50)
	opts := model.ProductListOptions{
		Category: r.URL.Query().Get("category"),
		Limit:    limit,
		Offset:   offset,
	}

	products, err := h.productService.List(r.Context(), opts)
	if err != nil {
		slog.Error("product list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	if products == nil {
		products = []*model.Product{}
	}
	writeJSON(w, map[string][]*model.Product{"products": products})
}

// Get は GET /api/products/{id} を処理する（公開）
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id_required")
		return
	}

	product, err := h.productService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product_not_found")
			return
		}
		slog.Error("product get failed", "error", err, "product_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	writeJSON(w, map[string]*model.Product{"product": product})
}

// AdminCreate は POST /api/admin/products を処理する（管理者専用）
func (h *ProductHandler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	var product model.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	if err := h.productService.Create(r.Context(), &product); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			writeError(w, http.StatusConflict, "sku_taken")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid_input")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]*model.Product{"product": &product})
}

// adminProductPatch is the expected JSON body for PATCH /api/admin/products/{id}.
// Absent fields are left unchanged.
type adminProductPatch struct {
	Name          *string      `json:"name"`
	Category      *string      `json:"category"`
	Price         *model.Money `json:"price"`
	ImageURL      *string      `json:"image"`
	Description   *string      `json:"description"`
	InStock       *bool        `json:"in_stock"`
	StockQuantity *int         `json:"stock_quantity"`
}

// AdminUpdate は PATCH /api/admin/products/{id} を処理する（管理者専用）
func (h *ProductHandler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id_required")
		return
	}

	var req adminProductPatch
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	product, err := h.productService.Update(r.Context(), id, model.ProductPatch{
		Name:          req.Name,
		Category:      req.Category,
		Price:         req.Price,
		ImageURL:      req.ImageURL,
		Description:   req.Description,
		InStock:       req.InStock,
		StockQuantity: req.StockQuantity,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product_not_found")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid_input")
		return
	}
	writeJSON(w, map[string]*model.Product{"product": product})
}

// AdminDelete は DELETE /api/admin/products/{id} を処理する（管理者専用）
func (h *ProductHandler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id_required")
		return
	}

	if err := h.productService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product_not_found")
			return
		}
		slog.Error("product delete failed", "error", err, "product_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}
