// Package funnel tracks each user's purchase-intent stage
// (NotVisited/Visited/CartAdded). The tracker owns the transition rules;
// storage lives behind the StatusStore collaborator (the remote commerce
// API's fabrication-status endpoint).
package funnel

import (
	"context"
	"fmt"
	"sync"

	"github.com/glonix/backend/internal/model"
)

// StatusStore persists a user's funnel stage.
type StatusStore interface {
	UpdateFunnelStatus(ctx context.Context, userID string, status model.FunnelState) error
}

// Tracker applies the monotonic funnel contract: a non-forced Advance sets
// max(current, to); only forced advances (checkout start, admin corrections)
// may lower the stage. All transitions for one user are serialized.
type Tracker struct {
	store StatusStore

	mu     sync.Mutex
	states map[string]model.FunnelState
	locks  map[string]*sync.Mutex
}

func NewTracker(store StatusStore) *Tracker {
	return &Tracker{
		store:  store,
		states: make(map[string]model.FunnelState),
		locks:  make(map[string]*sync.Mutex),
	}
}

func (t *Tracker) userLock(userID string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()
	l, ok := t.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		t.locks[userID] = l
	}
	return l
}

// Seed initializes the in-memory stage from a loaded user record without
// touching the store. It never lowers an already-tracked stage.
func (t *Tracker) Seed(userID string, state model.FunnelState) {
	if !state.Valid() {
		return
	}
	l := t.userLock(userID)
	l.Lock()
	defer l.Unlock()

	t.mu.Lock()
	if cur, ok := t.states[userID]; !ok || state > cur {
		t.states[userID] = state
	}
	t.mu.Unlock()
}

// Get returns the tracked stage for the user (NotVisited when unknown).
func (t *Tracker) Get(userID string) model.FunnelState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.states[userID]
}

// Advance moves the user's stage to max(current, to) and persists the
// result. The stage never silently regresses: lowering requires force.
func (t *Tracker) Advance(ctx context.Context, userID string, to model.FunnelState) error {
	return t.advance(ctx, userID, to, false)
}

// Reset forces the stage to the given value unconditionally (checkout start
// resets to NotVisited; an admin "move back" action may set any stage).
func (t *Tracker) Reset(ctx context.Context, userID string, to model.FunnelState) error {
	return t.advance(ctx, userID, to, true)
}

func (t *Tracker) advance(ctx context.Context, userID string, to model.FunnelState, force bool) error {
	if !to.Valid() {
		return fmt.Errorf("funnel: invalid state %d", to)
	}
	l := t.userLock(userID)
	l.Lock()
	defer l.Unlock()

	t.mu.Lock()
	cur := t.states[userID]
	next := to
	if !force && cur > to {
		next = cur
	}
	t.states[userID] = next
	t.mu.Unlock()

	if next == cur && !force {
		// No transition, nothing to persist.
		return nil
	}
	if err := t.store.UpdateFunnelStatus(ctx, userID, next); err != nil {
		return fmt.Errorf("funnel: persist status for %s: %w", userID, err)
	}
	return nil
}
