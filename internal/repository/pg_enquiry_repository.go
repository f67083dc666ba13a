package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/glonix/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EnquiryRepository defines the persistence interface for design and product
// enquiries. It is defined here (in repository) to avoid an import cycle with
// service.
type EnquiryRepository interface {
	Save(ctx context.Context, e *model.Enquiry) error
	FindByID(ctx context.Context, id string) (*model.Enquiry, error)
	List(ctx context.Context, opts model.EnquiryListOptions) ([]*model.Enquiry, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// PgEnquiryRepository is the PostgreSQL implementation of EnquiryRepository.
type PgEnquiryRepository struct {
	pool *pgxpool.Pool
}

// NewPgEnquiryRepository creates a PgEnquiryRepository backed by the given pool.
func NewPgEnquiryRepository(pool *pgxpool.Pool) *PgEnquiryRepository {
	return &PgEnquiryRepository{pool: pool}
}

// Ensure PgEnquiryRepository implements EnquiryRepository at compile time.
var _ EnquiryRepository = (*PgEnquiryRepository)(nil)

const enquirySelectCols = `id, kind, COALESCE(user_id::text, ''), email, name,
	COALESCE(phone, ''), COALESCE(product_id::text, ''), message,
	COALESCE(file_url, ''), status, created_at, updated_at`

func scanEnquiry(scan func(...any) error) (*model.Enquiry, error) {
	var e model.Enquiry
	if err := scan(
		&e.ID, &e.Kind, &e.UserID, &e.Email, &e.Name,
		&e.Phone, &e.ProductID, &e.Message,
		&e.FileURL, &e.Status, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// Save inserts a new enquiries row and populates e.ID and timestamps from the
// database RETURNING clause.
func (r *PgEnquiryRepository) Save(ctx context.Context, e *model.Enquiry) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO enquiries
		 (kind, user_id, email, name, phone, product_id, message, file_url, status)
		 VALUES ($1, NULLIF($2, '')::uuid, $3, $4, NULLIF($5, ''), NULLIF($6, '')::uuid,
		         $7, NULLIF($8, ''), $9)
		 RETURNING id, created_at, updated_at`,
		e.Kind, e.UserID, e.Email, e.Name, e.Phone, e.ProductID,
		e.Message, e.FileURL, e.Status,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

// FindByID returns one enquiry.
func (r *PgEnquiryRepository) FindByID(ctx context.Context, id string) (*model.Enquiry, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+enquirySelectCols+` FROM enquiries WHERE id = $1`, id)
	return scanEnquiry(row.Scan)
}

// List returns enquiries filtered by kind and status, paginated by
// limit/offset. Empty filters (or "all") match everything.
func (r *PgEnquiryRepository) List(ctx context.Context, opts model.EnquiryListOptions) ([]*model.Enquiry, error) {
	var conditions []string
	var args []any

	kind := strings.TrimSpace(opts.Kind)
	if kind != "" && kind != "all" {
		args = append(args, kind)
		conditions = append(conditions, "kind = $"+itoa(len(args)))
	}
	status := strings.TrimSpace(opts.Status)
	if status != "" && status != "all" {
		args = append(args, status)
		conditions = append(conditions, "status = $"+itoa(len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	limitArg := len(args) + 1
	offsetArg := len(args) + 2
	args = append(args, opts.Limit, opts.Offset)

	query := `SELECT ` + enquirySelectCols + ` FROM enquiries ` + where +
		` ORDER BY created_at DESC
		  LIMIT $` + itoa(limitArg) + ` OFFSET $` + itoa(offsetArg)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enquiries []*model.Enquiry
	for rows.Next() {
		e, err := scanEnquiry(rows.Scan)
		if err != nil {
			return nil, err
		}
		enquiries = append(enquiries, e)
	}
	return enquiries, rows.Err()
}

// UpdateStatus moves an enquiry between new / in_progress / resolved.
func (r *PgEnquiryRepository) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE enquiries SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// itoa converts a small positive integer to its string representation.
// Sufficient for query parameter indices (two digits at most).
func itoa(n int) string {
	if n < 10 {
		return string(rune('0' + n))
	}
	tens := n / 10
	ones := n % 10
	return string(rune('0'+tens)) + string(rune('0'+ones))
}
