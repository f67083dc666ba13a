package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/glonix/backend/internal/model"
	"github.com/glonix/backend/internal/repository"
	"github.com/glonix/backend/internal/service"
	"github.com/glonix/backend/pkg/auth"
)

// AuthHandler は認証関連の HTTP ハンドラ
type AuthHandler struct {
	authService   service.AuthService
	sessionSecret []byte
}

// NewAuthHandler は AuthHandler を生成する（DI: AuthService を注入）
func NewAuthHandler(authService service.AuthService, sessionSecret string) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		sessionSecret: auth.SessionSecretBytes(sessionSecret),
	}
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, userID string) {
	token := auth.CreateSessionToken(userID, h.sessionSecret)
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName(),
		Value:    token,
		Path:     "/",
		MaxAge:   60 * 60 * 24 * 7, // 7 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   os.Getenv("ENV") == "production",
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
	})
}

// registerRequest is the expected JSON body for POST /api/auth/register.
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Company  string `json:"company"`
	Phone    string `json:"phone"`
}

// Register は POST /api/auth/register を処理する
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	user, err := h.authService.Register(r.Context(), &service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Company:  req.Company,
		Phone:    req.Phone,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "email_taken")
			return
		}
		slog.Warn("registration rejected", "error", err)
		writeError(w, http.StatusBadRequest, "invalid_input")
		return
	}

	h.setSessionCookie(w, user.ID)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]*model.User{"user": user})
}

// loginRequest is the expected JSON body for POST /api/auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login は POST /api/auth/login を処理する
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "invalid_credentials")
		case errors.Is(err, service.ErrAccountDisabled):
			writeError(w, http.StatusForbidden, "account_disabled")
		default:
			slog.Error("login failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal_error")
		}
		return
	}

	h.setSessionCookie(w, user.ID)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]*model.User{"user": user})
}

// Logout は POST /api/auth/logout を処理する
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Me は GET /api/me を処理する（認証必須）
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.authService.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user_not_found")
			return
		}
		slog.Error("me lookup failed", "error", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]*model.User{"user": user})
}

// profileRequest is the expected JSON body for PUT /api/me.
type profileRequest struct {
	FullName string `json:"full_name"`
	Company  string `json:"company"`
	Phone    string `json:"phone"`
}

// UpdateProfile は PUT /api/me を処理する（認証必須）
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	user := &model.User{
		ID:       userID,
		FullName: req.FullName,
		Company:  req.Company,
		Phone:    req.Phone,
	}
	if err := h.authService.UpdateProfile(r.Context(), user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user_not_found")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid_input")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
