package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/glonix/backend/internal/model"
	"github.com/glonix/backend/internal/repository"
)

// enquiryServiceImpl is the production implementation of EnquiryService.
type enquiryServiceImpl struct {
	repo repository.EnquiryRepository
}

// NewEnquiryService creates an EnquiryService backed by the given repository.
func NewEnquiryService(repo repository.EnquiryRepository) EnquiryService {
	return &enquiryServiceImpl{repo: repo}
}

var enquiryStatuses = map[string]bool{
	"new":         true,
	"in_progress": true,
	"resolved":    true,
}

// Submit stores a new enquiry. It sets the status to "new" before persisting.
// Design enquiries must carry a message or an uploaded file; product
// enquiries must reference a product.
func (s *enquiryServiceImpl) Submit(ctx context.Context, e *model.Enquiry) error {
	if strings.TrimSpace(e.Email) == "" {
		return fmt.Errorf("enquiry: email required")
	}
	switch e.Kind {
	case "design":
		if strings.TrimSpace(e.Message) == "" && e.FileURL == "" {
			return fmt.Errorf("enquiry: message or design file required")
		}
	case "product":
		if e.ProductID == "" {
			return fmt.Errorf("enquiry: product reference required")
		}
	default:
		return fmt.Errorf("enquiry: unknown kind %q", e.Kind)
	}
	e.Status = "new"
	return s.repo.Save(ctx, e)
}

// List returns enquiries according to the given filter/pagination options.
func (s *enquiryServiceImpl) List(ctx context.Context, opts model.EnquiryListOptions) ([]*model.Enquiry, error) {
	if opts.Limit <= 0 || opts.Limit > 100 {
		opts.Limit = 50
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	return s.repo.List(ctx, opts)
}

// UpdateStatus changes the status of an enquiry.
func (s *enquiryServiceImpl) UpdateStatus(ctx context.Context, id string, status string) error {
	if !enquiryStatuses[status] {
		return fmt.Errorf("enquiry: invalid status %q", status)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}
