// Package cache is the local, per-user mirror of cart contents. It is a
// degraded-mode fallback and a copy only — once the remote commerce API is
// reachable it is never treated as a second source of truth.
package cache

import (
	"context"
	"errors"

	"github.com/glonix/backend/internal/model"
)

// ErrNotFound is returned by Load when no cart has been cached for the user.
var ErrNotFound = errors.New("cache: cart not found")

// CartCache stores one entry per user under the key "cart_{userId}". Save
// overwrites the whole snapshot atomically; there are no partial writes and
// no network calls.
type CartCache interface {
	Load(ctx context.Context, userID string) ([]*model.CartItem, error)
	Save(ctx context.Context, userID string, items []*model.CartItem) error
	Clear(ctx context.Context, userID string) error
}
