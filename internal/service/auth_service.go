package service

import (
	"context"
	"errors"

	"github.com/glonix/backend/internal/model"
)

// ErrInvalidCredentials is returned on a failed login. The same error covers
// unknown email and wrong password so the response cannot be used to probe
// for registered addresses.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrEmailTaken is returned when registering with an address that already
// has an account.
var ErrEmailTaken = errors.New("email already registered")

// ErrAccountDisabled is returned when a deactivated user tries to log in.
var ErrAccountDisabled = errors.New("account disabled")

// RegisterInput は新規登録フォームの入力
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Company  string
	Phone    string
}

// AuthService は認証に関するビジネスロジックのインターフェース
type AuthService interface {
	Register(ctx context.Context, input *RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	UpdateProfile(ctx context.Context, user *model.User) error
}
