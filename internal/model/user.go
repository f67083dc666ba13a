package model

import "time"

// FunnelState is the per-user purchase-intent stage used for sales follow-up.
// Under normal browsing it only moves forward (0→1→2); it is lowered only by
// an explicit reset (checkout start, admin correction).
type FunnelState int

const (
	FunnelNotVisited FunnelState = 0 // never priced anything
	FunnelVisited    FunnelState = 1 // calculated a quote
	FunnelCartAdded  FunnelState = 2 // added an item to the cart
)

// Valid reports whether s is one of the three defined stages.
func (s FunnelState) Valid() bool {
	return s >= FunnelNotVisited && s <= FunnelCartAdded
}

func (s FunnelState) String() string {
	switch s {
	case FunnelNotVisited:
		return "not_visited"
	case FunnelVisited:
		return "visited"
	case FunnelCartAdded:
		return "cart_added"
	default:
		return "unknown"
	}
}

type User struct {
	ID           string      `json:"id"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	FullName     string      `json:"full_name"`
	Company      string      `json:"company,omitempty"`
	Phone        string      `json:"phone,omitempty"`
	Role         string      `json:"role"` // "customer" | "admin"
	IsActive     bool        `json:"is_active"`
	FunnelStatus FunnelState `json:"fabrication_status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

// UserListOptions carries filter and pagination parameters for the admin
// user list.
type UserListOptions struct {
	// FunnelStatus filters by funnel stage when non-nil (sales follow-up
	// lists: visited customers, cart customers).
	FunnelStatus *FunnelState
	Limit        int
	Offset       int
}
