package repository

import (
	"context"

	"github.com/glonix/backend/internal/model"
)

// DB は DB 接続の生存確認を行うインターフェース
type DB interface {
	Ping(ctx context.Context) error
}

// UserRepository はユーザー永続化のインターフェース
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	UpdateProfile(ctx context.Context, user *model.User) error
	UpdateFunnelStatus(ctx context.Context, id string, status model.FunnelState) error
	SetActive(ctx context.Context, id string, active bool) error
	List(ctx context.Context, opts model.UserListOptions) ([]*model.User, error)
}
