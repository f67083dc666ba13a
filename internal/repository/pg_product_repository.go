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

// PgProductRepository は ProductRepository の PostgreSQL 実装
type PgProductRepository struct {
	pool *pgxpool.Pool
}

// NewPgProductRepository は PgProductRepository を生成する
func NewPgProductRepository(pool *pgxpool.Pool) *PgProductRepository {
	return &PgProductRepository{pool: pool}
}

var _ ProductRepository = (*PgProductRepository)(nil)

const productSelectCols = `id, name, sku, category, price, COALESCE(image_url, ''),
	COALESCE(description, ''), in_stock, stock_quantity, COALESCE(specifications, '{}'),
	created_at, updated_at`

func scanProduct(scan func(...any) error) (*model.Product, error) {
	var p model.Product
	var specs []byte
	if err := scan(
		&p.ID, &p.Name, &p.SKU, &p.Category, &p.Price, &p.ImageURL,
		&p.Description, &p.InStock, &p.StockQuantity, &specs,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if len(specs) > 0 {
		if err := json.Unmarshal(specs, &p.Specifications); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

// FindByID は ID で商品を取得する
func (r *PgProductRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+productSelectCols+` FROM products WHERE id = $1`, id)
	return scanProduct(row.Scan)
}

// List returns catalog products, optionally filtered by category.
func (r *PgProductRepository) List(ctx context.Context, opts model.ProductListOptions) ([]*model.Product, error) {
	var conditions []string
	var args []any

	category := strings.TrimSpace(opts.Category)
	if category != "" && category != "all" {
		args = append(args, category)
		conditions = append(conditions, "category = $1")
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	limitArg := len(args) + 1
	offsetArg := len(args) + 2
	args = append(args, opts.Limit, opts.Offset)

	query := `SELECT ` + productSelectCols + ` FROM products ` + where +
		` ORDER BY created_at DESC
		  LIMIT $` + itoa(limitArg) + ` OFFSET $` + itoa(offsetArg)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*model.Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Create は商品を作成する
func (r *PgProductRepository) Create(ctx context.Context, p *model.Product) error {
	specs, err := json.Marshal(p.Specifications)
	if err != nil {
		return err
	}
	err = r.pool.QueryRow(ctx,
		`INSERT INTO products
		 (name, sku, category, price, image_url, description, in_stock, stock_quantity, specifications)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		p.Name, p.SKU, p.Category, p.Price, p.ImageURL, p.Description,
		p.InStock, p.StockQuantity, specs,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil && strings.Contains(err.Error(), "duplicate key") {
		return ErrDuplicate
	}
	return err
}

// Update applies the non-nil fields of the patch and returns the updated row.
func (r *PgProductRepository) Update(ctx context.Context, id string, patch model.ProductPatch) (*model.Product, error) {
	var sets []string
	var args []any

	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, col+" = $"+itoa(len(args)))
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.Price != nil {
		add("price", *patch.Price)
	}
	if patch.ImageURL != nil {
		add("image_url", *patch.ImageURL)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.InStock != nil {
		add("in_stock", *patch.InStock)
	}
	if patch.StockQuantity != nil {
		add("stock_quantity", *patch.StockQuantity)
	}
	if len(sets) == 0 {
		return r.FindByID(ctx, id)
	}

	args = append(args, id)
	query := `UPDATE products SET ` + strings.Join(sets, ", ") +
		`, updated_at = NOW() WHERE id = $` + itoa(len(args)) +
		` RETURNING ` + productSelectCols

	row := r.pool.QueryRow(ctx, query, args...)
	return scanProduct(row.Scan)
}

// Delete は商品を削除する
func (r *PgProductRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
