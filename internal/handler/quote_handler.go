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
)

// QuoteHandler は見積計算の HTTP ハンドラ
type QuoteHandler struct {
	quoteService service.QuoteService
}

// NewQuoteHandler は QuoteHandler を生成する
func NewQuoteHandler(quoteService service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// Quote は POST /api/quote を処理する。
// 認証は任意: ログイン済みならファネルステージが進む。
func (h *QuoteHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req model.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	userID, _ := auth.UserIDFromContext(r.Context())
	quote, err := h.quoteService.Quote(r.Context(), userID, &req)
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
		slog.Error("quote failed", "error", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}

	writeJSON(w, map[string]*model.Quote{"quote": quote})
}
