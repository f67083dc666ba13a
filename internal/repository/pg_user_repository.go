package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/glonix/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgUserRepository は UserRepository の PostgreSQL 実装
type PgUserRepository struct {
	pool *pgxpool.Pool
}

// NewPgUserRepository は PgUserRepository を生成する
func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

// Ping は DB 接続を確認する（DB インターフェース実装）
func (r *PgUserRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

const userSelectCols = `id, email, password_hash, full_name, COALESCE(company, ''),
	COALESCE(phone, ''), role, is_active, fabrication_status, created_at, updated_at`

func scanUser(scan func(...any) error) (*model.User, error) {
	var u model.User
	if err := scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Company,
		&u.Phone, &u.Role, &u.IsActive, &u.FunnelStatus,
		&u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID は ID でユーザーを取得する
func (r *PgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userSelectCols+` FROM users WHERE id = $1`, id)
	return scanUser(row.Scan)
}

// FindByEmail はメールアドレスでユーザーを取得する
func (r *PgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userSelectCols+` FROM users WHERE email = $1`, email)
	return scanUser(row.Scan)
}

// Create はユーザーを作成する
func (r *PgUserRepository) Create(ctx context.Context, user *model.User) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, full_name, company, phone, role)
		 VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6)
		 RETURNING id, is_active, fabrication_status, created_at, updated_at`,
		user.Email, user.PasswordHash, user.FullName, user.Company, user.Phone, user.Role,
	).Scan(&user.ID, &user.IsActive, &user.FunnelStatus, &user.CreatedAt, &user.UpdatedAt)
	if err != nil && strings.Contains(err.Error(), "duplicate key") {
		return ErrDuplicate
	}
	return err
}

// UpdateProfile は氏名・会社名・電話番号を更新する
func (r *PgUserRepository) UpdateProfile(ctx context.Context, user *model.User) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users
		 SET full_name = $1, company = NULLIF($2, ''), phone = NULLIF($3, ''), updated_at = NOW()
		 WHERE id = $4`,
		user.FullName, user.Company, user.Phone, user.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateFunnelStatus は営業ファネルのステージ（fabrication_status）を更新する
func (r *PgUserRepository) UpdateFunnelStatus(ctx context.Context, id string, status model.FunnelState) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET fabrication_status = $1, updated_at = NOW() WHERE id = $2`,
		int(status), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetActive enables or disables a user account.
func (r *PgUserRepository) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET is_active = $1, updated_at = NOW() WHERE id = $2`,
		active, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns users ordered by created_at desc, optionally filtered by
// funnel stage (the sales team's "who priced but never bought" view).
func (r *PgUserRepository) List(ctx context.Context, opts model.UserListOptions) ([]*model.User, error) {
	var conditions []string
	var args []any

	if opts.FunnelStatus != nil {
		args = append(args, int(*opts.FunnelStatus))
		conditions = append(conditions, "fabrication_status = $1")
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	limitArg := len(args) + 1
	offsetArg := len(args) + 2
	args = append(args, opts.Limit, opts.Offset)

	query := `SELECT ` + userSelectCols + ` FROM users ` + where +
		` ORDER BY created_at DESC
		  LIMIT $` + itoa(limitArg) + ` OFFSET $` + itoa(offsetArg)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		u, err := scanUser(rows.Scan)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
