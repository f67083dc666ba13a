package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/glonix/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgOrderRepository struct {
	pool *pgxpool.Pool
}

// NewPgOrderRepository returns a PostgreSQL-backed OrderRepository.
func NewPgOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &pgOrderRepository{pool: pool}
}

const orderSelectCols = `id, user_id, items, subtotal, status, shipping_address, created_at, updated_at`

// Order lines and the shipping address are frozen snapshots, so they are
// stored as JSONB documents rather than normalized rows.
func scanOrder(scan func(...any) error) (*model.Order, error) {
	var o model.Order
	var items, shipping []byte
	if err := scan(
		&o.ID, &o.UserID, &items, &o.Subtotal, &o.Status, &shipping,
		&o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(shipping, &o.Shipping); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *pgOrderRepository) Create(ctx context.Context, o *model.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return err
	}
	shipping, err := json.Marshal(o.Shipping)
	if err != nil {
		return err
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO orders (user_id, items, subtotal, status, shipping_address)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		o.UserID, items, o.Subtotal, o.Status, shipping,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
}

func (r *pgOrderRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+orderSelectCols+` FROM orders WHERE id = $1`, id)
	return scanOrder(row.Scan)
}

// List returns orders newest first. A non-empty UserID restricts to that
// customer (their order history); empty is the admin all-orders view.
func (r *pgOrderRepository) List(ctx context.Context, opts model.OrderListOptions) ([]*model.Order, error) {
	var conditions []string
	var args []any

	if opts.UserID != "" {
		args = append(args, opts.UserID)
		conditions = append(conditions, "user_id = $"+itoa(len(args)))
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

	query := `SELECT ` + orderSelectCols + ` FROM orders ` + where +
		` ORDER BY created_at DESC
		  LIMIT $` + itoa(limitArg) + ` OFFSET $` + itoa(offsetArg)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*model.Order
	for rows.Next() {
		o, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *pgOrderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
