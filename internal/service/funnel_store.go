package service

import (
	"context"
	"log/slog"

	"github.com/glonix/backend/internal/funnel"
	"github.com/glonix/backend/internal/model"
	"github.com/glonix/backend/internal/repository"
)

// funnelStore persists funnel stages to the local users table and mirrors
// them to the remote commerce API. The local write is authoritative; the
// remote mirror is best effort (the commerce side only uses it for its own
// sales dashboards).
type funnelStore struct {
	users  repository.UserRepository
	remote funnel.StatusStore // nil disables mirroring
}

// NewFunnelStore wires the funnel tracker to the users table, optionally
// mirroring stage changes to a remote store.
func NewFunnelStore(users repository.UserRepository, remote funnel.StatusStore) funnel.StatusStore {
	return &funnelStore{users: users, remote: remote}
}

func (s *funnelStore) UpdateFunnelStatus(ctx context.Context, userID string, status model.FunnelState) error {
	if err := s.users.UpdateFunnelStatus(ctx, userID, status); err != nil {
		return err
	}
	if s.remote != nil {
		if err := s.remote.UpdateFunnelStatus(ctx, userID, status); err != nil {
			slog.Warn("funnel status mirror failed", "user_id", userID, "status", int(status), "error", err)
		}
	}
	return nil
}
