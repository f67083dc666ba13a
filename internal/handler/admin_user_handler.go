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

// AdminUserHandler は管理者向けユーザー管理の HTTP ハンドラ
type AdminUserHandler struct {
	adminUserService service.AdminUserService
}

// NewAdminUserHandler は AdminUserHandler を生成する
func NewAdminUserHandler(adminUserService service.AdminUserService) *AdminUserHandler {
	return &AdminUserHandler{adminUserService: adminUserService}
}

// List は GET /api/admin/users を処理する（管理者専用）。
// funnel_status (0/1/2) で絞り込める: 見積だけして買わなかった客、
// カートに入れたまま放置の客を営業がフォローするための一覧。
func (h *AdminUserHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r, 20)
	opts := model.UserListOptions{Limit: limit, Offset: offset}

	if fs := r.URL.Query().Get("funnel_status"); fs != "" {
		n, err := strconv.Atoi(fs)
		if err != nil || !model.FunnelState(n).Valid() {
			writeError(w, http.StatusBadRequest, "invalid_funnel_status")
			return
		}
		stage := model.FunnelState(n)
		opts.FunnelStatus = &stage
	}

	users, err := h.adminUserService.ListUsers(r.Context(), opts)
	if err != nil {
		slog.Error("admin user list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	if users == nil {
		users = []*model.User{}
	}
	writeJSON(w, map[string][]*model.User{"users": users})
}

// Get は GET /api/admin/users/{id} を処理する（管理者専用）
func (h *AdminUserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id_required")
		return
	}

	user, err := h.adminUserService.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user_not_found")
			return
		}
		slog.Error("admin user get failed", "error", err, "user_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	writeJSON(w, map[string]*model.User{"user": user})
}

// activeRequest is the expected JSON body for PUT /api/admin/users/{id}/active.
type activeRequest struct {
	Active bool `json:"active"`
}

// SetActive は PUT /api/admin/users/{id}/active を処理する（管理者専用）
func (h *AdminUserHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id_required")
		return
	}

	var req activeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	if err := h.adminUserService.SetUserActive(r.Context(), id, req.Active); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user_not_found")
			return
		}
		slog.Error("set user active failed", "error", err, "user_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

// funnelStageRequest is the expected JSON body for PUT /api/admin/users/{id}/funnel-stage.
type funnelStageRequest struct {
	Stage int `json:"stage"`
}

// SetFunnelStage は PUT /api/admin/users/{id}/funnel-stage を処理する
// （管理者専用）。通常の単調増加ルールを迂回してステージを強制設定する。
func (h *AdminUserHandler) SetFunnelStage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id_required")
		return
	}

	var req funnelStageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	stage := model.FunnelState(req.Stage)
	if !stage.Valid() {
		writeError(w, http.StatusBadRequest, "invalid_stage")
		return
	}

	if err := h.adminUserService.SetFunnelStage(r.Context(), id, stage); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user_not_found")
			return
		}
		slog.Error("set funnel stage failed", "error", err, "user_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}
