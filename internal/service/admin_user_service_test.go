package service

import (
	"context"
	"testing"

	"github.com/glonix/backend/internal/funnel"
	"github.com/glonix/backend/internal/model"
)

func TestAdminUserService_ListUsers_FunnelFilterPassedThrough(t *testing.T) {
	var got model.UserListOptions
	mock := &mockUserRepository{
		listFunc: func(ctx context.Context, opts model.UserListOptions) ([]*model.User, error) {
			got = opts
			return nil, nil
		},
	}
	svc := NewAdminUserService(mock, funnel.NewTracker(&nopStatusStore{}))

	stage := model.FunnelVisited
	_, err := svc.ListUsers(context.Background(), model.UserListOptions{FunnelStatus: &stage})
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if got.FunnelStatus == nil || *got.FunnelStatus != model.FunnelVisited {
		t.Errorf("expected funnel filter Visited, got %v", got.FunnelStatus)
	}
	if got.Limit != 50 {
		t.Errorf("expected default limit 50, got %d", got.Limit)
	}
}

func TestAdminUserService_SetFunnelStage_ForcesRegression(t *testing.T) {
	var persisted []model.FunnelState
	mock := &mockUserRepository{
		updateFunnelFunc: func(ctx context.Context, id string, status model.FunnelState) error {
			persisted = append(persisted, status)
			return nil
		},
	}
	tracker := funnel.NewTracker(NewFunnelStore(mock, nil))
	svc := NewAdminUserService(mock, tracker)
	ctx := context.Background()

	tracker.Seed("u1", model.FunnelCartAdded)

	// Admin correction may lower the stage, which a normal advance cannot.
	if err := svc.SetFunnelStage(ctx, "u1", model.FunnelVisited); err != nil {
		t.Fatalf("SetFunnelStage failed: %v", err)
	}
	if stage := tracker.Get("u1"); stage != model.FunnelVisited {
		t.Errorf("expected forced stage Visited, got %v", stage)
	}
	if len(persisted) != 1 || persisted[0] != model.FunnelVisited {
		t.Errorf("expected one persisted stage Visited, got %v", persisted)
	}
}

func TestAdminUserService_SetUserActive(t *testing.T) {
	var gotID string
	var gotActive bool
	mock := &mockUserRepository{
		setActiveFunc: func(ctx context.Context, id string, active bool) error {
			gotID, gotActive = id, active
			return nil
		},
	}
	svc := NewAdminUserService(mock, funnel.NewTracker(&nopStatusStore{}))

	if err := svc.SetUserActive(context.Background(), "u1", false); err != nil {
		t.Fatalf("SetUserActive failed: %v", err)
	}
	if gotID != "u1" || gotActive {
		t.Errorf("expected deactivation of u1, got id=%q active=%v", gotID, gotActive)
	}
}
