package repository

import (
	"context"

	"github.com/glonix/backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgWishlistRepository は WishlistRepository の PostgreSQL 実装
type PgWishlistRepository struct {
	pool *pgxpool.Pool
}

// NewPgWishlistRepository は PgWishlistRepository を生成する
func NewPgWishlistRepository(pool *pgxpool.Pool) *PgWishlistRepository {
	return &PgWishlistRepository{pool: pool}
}

// Add はウィッシュリストに商品を登録する（冪等: 既に存在する場合は無視）
func (r *PgWishlistRepository) Add(ctx context.Context, userID, productID string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO wishlists (user_id, product_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, product_id) DO NOTHING`,
		userID, productID,
	)
	return err
}

// Remove はウィッシュリストから商品を外す（冪等: 存在しない場合は無視）
func (r *PgWishlistRepository) Remove(ctx context.Context, userID, productID string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM wishlists WHERE user_id = $1 AND product_id = $2`,
		userID, productID,
	)
	return err
}

// ListProducts はユーザーのウィッシュリストに入っている商品一覧を返す
func (r *PgWishlistRepository) ListProducts(ctx context.Context, userID string) ([]*model.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.id, p.name, p.sku, p.category, p.price, COALESCE(p.image_url, ''),
		        COALESCE(p.description, ''), p.in_stock, p.stock_quantity,
		        COALESCE(p.specifications, '{}'), p.created_at, p.updated_at
		 FROM products p
		 INNER JOIN wishlists w ON w.product_id = p.id
		 WHERE w.user_id = $1
		 ORDER BY w.created_at DESC`,
		userID,
	)
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
