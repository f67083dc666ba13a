package service

import (
	"context"

	"github.com/glonix/backend/internal/funnel"
	"github.com/glonix/backend/internal/model"
	"github.com/glonix/backend/internal/repository"
)

// AdminUserService provides admin-only user management operations. The
// funnel-stage filter backs the sales follow-up views: who priced a board
// but never added it, who carted but never ordered.
type AdminUserService interface {
	ListUsers(ctx context.Context, opts model.UserListOptions) ([]*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	SetUserActive(ctx context.Context, id string, active bool) error
	// SetFunnelStage forces a user's funnel stage, bypassing the monotonic
	// rule (admin correction).
	SetFunnelStage(ctx context.Context, id string, stage model.FunnelState) error
}

type adminUserService struct {
	userRepo repository.UserRepository
	funnel   *funnel.Tracker
}

// NewAdminUserService creates an AdminUserService.
func NewAdminUserService(userRepo repository.UserRepository, tracker *funnel.Tracker) AdminUserService {
	return &adminUserService{userRepo: userRepo, funnel: tracker}
}

func (s *adminUserService) ListUsers(ctx context.Context, opts model.UserListOptions) ([]*model.User, error) {
	if opts.Limit <= 0 || opts.Limit > 100 {
		opts.Limit = 50
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	return s.userRepo.List(ctx, opts)
}

func (s *adminUserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

func (s *adminUserService) SetUserActive(ctx context.Context, id string, active bool) error {
	return s.userRepo.SetActive(ctx, id, active)
}

func (s *adminUserService) SetFunnelStage(ctx context.Context, id string, stage model.FunnelState) error {
	// Reset goes through the tracker so the in-memory stage and the stored
	// one move together.
	return s.funnel.Reset(ctx, id, stage)
}
