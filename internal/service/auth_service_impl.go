package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/glonix/backend/internal/funnel"
	"github.com/glonix/backend/internal/model"
	"github.com/glonix/backend/internal/repository"
)

// AuthServiceImpl は AuthService の実装
type AuthServiceImpl struct {
	userRepo repository.UserRepository
	funnel   *funnel.Tracker
}

// NewAuthService は AuthServiceImpl を生成する（DI: UserRepository / funnel を注入）
func NewAuthService(userRepo repository.UserRepository, tracker *funnel.Tracker) AuthService {
	return &AuthServiceImpl{userRepo: userRepo, funnel: tracker}
}

// Register は新規ユーザーを作成する
func (s *AuthServiceImpl) Register(ctx context.Context, input *RegisterInput) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("auth: invalid email")
	}
	if len(input.Password) < 8 {
		return nil, fmt.Errorf("auth: password must be at least 8 characters")
	}
	if strings.TrimSpace(input.FullName) == "" {
		return nil, fmt.Errorf("auth: name required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(input.FullName),
		Company:      strings.TrimSpace(input.Company),
		Phone:        strings.TrimSpace(input.Phone),
		Role:         "customer",
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		slog.Error("create user failed", "error", err)
		return nil, fmt.Errorf("create user: %w", err)
	}
	slog.Info("new user registered", "user_id", user.ID)
	return user, nil
}

// Login はメールアドレスとパスワードでユーザーを認証する
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrAccountDisabled
	}

	// Warm the in-memory funnel stage from the stored one so a returning
	// customer's stage survives restarts.
	s.funnel.Seed(u.ID, u.FunnelStatus)
	return u, nil
}

// GetUser は ID でユーザーを取得する
func (s *AuthServiceImpl) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// UpdateProfile は氏名・会社名・電話番号を更新する
func (s *AuthServiceImpl) UpdateProfile(ctx context.Context, user *model.User) error {
	if strings.TrimSpace(user.FullName) == "" {
		return fmt.Errorf("auth: name required")
	}
	return s.userRepo.UpdateProfile(ctx, user)
}
