// Package commerce provides a lightweight client for the remote commerce
// API that owns the authoritative cart and the per-user fabrication status.
// Uses raw HTTP calls (no SDK) to minimize external dependencies.
package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/glonix/backend/internal/model"
)

var (
	// ErrUnreachable covers network failures, timeouts and 5xx responses.
	// Callers degrade to the local cache instead of failing hard.
	ErrUnreachable = errors.New("commerce: remote unreachable")
	// ErrUnauthorized is returned when no user identity is supplied or the
	// remote rejects the credentials. Never degraded to local-only.
	ErrUnauthorized = errors.New("commerce: unauthorized")
	// ErrRejected is a remote validation failure (e.g. the product no
	// longer exists). Distinct from both auth and reachability failures.
	ErrRejected = errors.New("commerce: request rejected")
)

// Client is the interface to the remote cart store and funnel persistence.
// All cart operations are scoped to an authenticated user; an empty userID
// fails with ErrUnauthorized before any network call.
type Client interface {
	// FetchCart returns the authoritative cart contents for the user.
	FetchCart(ctx context.Context, userID string) ([]*model.CartItem, error)
	// AddItem appends (or merges) one line and returns the updated cart.
	AddItem(ctx context.Context, userID string, item *model.CartItem) ([]*model.CartItem, error)
	// UpdateItems replaces the full cart contents and returns the result.
	UpdateItems(ctx context.Context, userID string, items []*model.CartItem) ([]*model.CartItem, error)
	// RemoveItem deletes one line and returns the updated cart.
	RemoveItem(ctx context.Context, userID string, itemID string) ([]*model.CartItem, error)
	// ClearCart empties the user's cart.
	ClearCart(ctx context.Context, userID string) error
	// UpdateFunnelStatus persists the user's funnel stage
	// (PUT /auth/fabrication-status).
	UpdateFunnelStatus(ctx context.Context, userID string, status model.FunnelState) error
}

// RealClient calls the commerce API over HTTP with a service bearer key and
// a per-request user scope header.
type RealClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a RealClient. The timeout bounds every call; a timeout
// is indistinguishable from an unreachable remote by design.
func NewClient(baseURL, apiKey string, timeout time.Duration) *RealClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RealClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// cartEnvelope is the wire shape of cart-bearing responses.
type cartEnvelope struct {
	Cart struct {
		Items []*model.CartItem `json:"items"`
	} `json:"cart"`
}

func (c *RealClient) do(ctx context.Context, method, path, userID string, body any) (*http.Response, error) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("commerce: encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("commerce: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-User-ID", userID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Timeouts, DNS failures, refused connections: all unreachable.
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		resp.Body.Close()
		return nil, ErrUnauthorized
	case resp.StatusCode >= 500:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: status %d", ErrUnreachable, resp.StatusCode)
	case resp.StatusCode >= 400:
		var errResp struct {
			Detail string `json:"detail"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrRejected, errResp.Detail)
	}
	return resp, nil
}

// decodeCart reads a cart envelope. An unparsable body from an otherwise
// healthy remote is treated as unreachable — prefer degraded availability
// over guessing at a merge.
func decodeCart(resp *http.Response) ([]*model.CartItem, error) {
	defer resp.Body.Close()
	var env cartEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: decode cart: %v", ErrUnreachable, err)
	}
	if env.Cart.Items == nil {
		return []*model.CartItem{}, nil
	}
	return env.Cart.Items, nil
}

func (c *RealClient) FetchCart(ctx context.Context, userID string) ([]*model.CartItem, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	resp, err := c.do(ctx, http.MethodGet, "/cart", userID, nil)
	if err != nil {
		return nil, err
	}
	return decodeCart(resp)
}

func (c *RealClient) AddItem(ctx context.Context, userID string, item *model.CartItem) ([]*model.CartItem, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	resp, err := c.do(ctx, http.MethodPost, "/cart/add", userID, item)
	if err != nil {
		return nil, err
	}
	return decodeCart(resp)
}

func (c *RealClient) UpdateItems(ctx context.Context, userID string, items []*model.CartItem) ([]*model.CartItem, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	if items == nil {
		items = []*model.CartItem{}
	}
	body := map[string]any{"items": items}
	resp, err := c.do(ctx, http.MethodPut, "/cart/update", userID, body)
	if err != nil {
		return nil, err
	}
	return decodeCart(resp)
}

// RemoveItem has no dedicated remote endpoint: the cart is fetched, the line
// filtered out, and the remainder written back as a full replace.
func (c *RealClient) RemoveItem(ctx context.Context, userID string, itemID string) ([]*model.CartItem, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	items, err := c.FetchCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	kept := make([]*model.CartItem, 0, len(items))
	for _, it := range items {
		if it.ItemID != itemID {
			kept = append(kept, it)
		}
	}
	return c.UpdateItems(ctx, userID, kept)
}

func (c *RealClient) ClearCart(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrUnauthorized
	}
	resp, err := c.do(ctx, http.MethodDelete, "/cart/clear", userID, nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *RealClient) UpdateFunnelStatus(ctx context.Context, userID string, status model.FunnelState) error {
	if userID == "" {
		return ErrUnauthorized
	}
	body := map[string]any{"user_id": userID, "status": int(status)}
	resp, err := c.do(ctx, http.MethodPut, "/auth/fabrication-status", userID, body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}
