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
)

const maxEnquiryMessageLength = 5000

// EnquiryHandler handles enquiry submission and admin listing.
type EnquiryHandler struct {
	enquiryService service.EnquiryService
}

// NewEnquiryHandler creates an EnquiryHandler with the given service.
func NewEnquiryHandler(enquiryService service.EnquiryService) *EnquiryHandler {
	return &EnquiryHandler{enquiryService: enquiryService}
}

// enquiryRequest is the expected JSON body for POST /api/enquiries.
type enquiryRequest struct {
	Kind      string `json:"kind"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	ProductID string `json:"product_id"`
	Message   string `json:"message"`
	FileURL   string `json:"file_url"`
}

// Submit handles POST /api/enquiries. Works for both anonymous visitors and
// logged-in users; a session, when present, is attached to the enquiry.
func (h *EnquiryHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req enquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "email_required")
		return
	}
	if len([]rune(req.Message)) > maxEnquiryMessageLength {
		writeError(w, http.StatusBadRequest, "message_too_long")
		return
	}

	userID, _ := auth.UserIDFromContext(r.Context())
	e := &model.Enquiry{
		Kind:      req.Kind,
		UserID:    userID,
		Email:     req.Email,
		Name:      req.Name,
		Phone:     req.Phone,
		ProductID: req.ProductID,
		Message:   req.Message,
		FileURL:   req.FileURL,
	}

	if err := h.enquiryService.Submit(r.Context(), e); err != nil {
		slog.Warn("enquiry rejected", "error", err)
		writeError(w, http.StatusBadRequest, "invalid_input")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]*model.Enquiry{"enquiry": e})
}

// adminEnquiryListResponse is the JSON response for GET /api/admin/enquiries.
type adminEnquiryListResponse struct {
	Enquiries []*model.Enquiry `json:"enquiries"`
}

// AdminList handles GET /api/admin/enquiries (admin-only).
// Supports query params: kind (all/design/product), status, limit, offset.
func (h *EnquiryHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r, 20)
	opts := model.EnquiryListOptions{
		Kind:   r.URL.Query().Get("kind"),
		Status: r.URL.Query().Get("status"),
		Limit:  limit,
		Offset: offset,
	}

	enquiries, err := h.enquiryService.List(r.Context(), opts)
	if err != nil {
		slog.Error("enquiry list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}
	if enquiries == nil {
		enquiries = []*model.Enquiry{}
	}
	writeJSON(w, adminEnquiryListResponse{Enquiries: enquiries})
}

// statusRequest is the expected JSON body for PUT /api/admin/enquiries/{id}/status.
type statusRequest struct {
	Status string `json:"status"`
}

// AdminUpdateStatus handles PUT /api/admin/enquiries/{id}/status (admin-only).
func (h *EnquiryHandler) AdminUpdateStatus(w http.ResponseWriter, r *http.Request) {
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

	if err := h.enquiryService.UpdateStatus(r.Context(), id, req.Status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "enquiry_not_found")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid_status")
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}
