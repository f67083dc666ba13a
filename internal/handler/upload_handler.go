package handler

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/glonix/backend/internal/storage"
	"github.com/glonix/backend/pkg/auth"
)

const maxDesignFileSize = 50 << 20 // 50 MB: gerber archives and BOMs get big

// Design archives and documents only. The file service re-validates on its
// side; this is the first gate.
var allowedDesignTypes = map[string]string{
	"application/zip":              ".zip",
	"application/x-zip-compressed": ".zip",
	"application/gzip":             ".tar.gz",
	"application/pdf":              ".pdf",
	"text/csv":                     ".csv",
	"application/octet-stream":     ".bin",
}

// UploadHandler は設計ファイル（ガーバー・BOM 等）のアップロードを処理する
type UploadHandler struct {
	storage storage.Storage
}

// NewUploadHandler は UploadHandler を生成する
func NewUploadHandler(store storage.Storage) *UploadHandler {
	return &UploadHandler{storage: store}
}

// Upload は POST /api/uploads/design を処理する（認証必須）。
// 返される file_url は見積カート行や問い合わせにそのまま添付できる。
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	if err := r.ParseMultipartForm(maxDesignFileSize); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "file_too_large"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "file_required"})
		return
	}
	defer file.Close()

	if header.Size > maxDesignFileSize {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "file_too_large"})
		return
	}

	ct := header.Header.Get("Content-Type")
	ext, ok := allowedDesignTypes[ct]
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_content_type"})
		return
	}
	// Keep a recognizable name when the original already has the extension.
	if base := strings.ToLower(header.Filename); strings.HasSuffix(base, ext) {
		ext = ""
	}

	b := make([]byte, 16)
	_, _ = rand.Read(b)
	name := hex.EncodeToString(b)
	if ext == "" {
		name = name + "-" + path.Base(header.Filename)
	} else {
		name = name + ext
	}
	key := path.Join("designs", userID, name)

	fileURL, err := h.storage.Save(r.Context(), key, file, ct)
	if err != nil {
		slog.Error("design upload failed", "error", err, "user_id", userID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "upload_failed"})
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{"file_url": fileURL})
}
