package service

import (
	"context"

	"github.com/glonix/backend/internal/model"
)

// EnquiryService defines the business logic for design and product enquiries.
type EnquiryService interface {
	// Submit stores a new enquiry. The e.ID and timestamps will be populated
	// by the implementation.
	Submit(ctx context.Context, e *model.Enquiry) error

	// List returns enquiries according to the given options (admin view).
	List(ctx context.Context, opts model.EnquiryListOptions) ([]*model.Enquiry, error)

	// UpdateStatus moves an enquiry between new / in_progress / resolved.
	UpdateStatus(ctx context.Context, id, status string) error
}
