package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/glonix/backend/internal/model"
)

// SQLiteCache implements CartCache on an embedded SQLite database
// (modernc.org/sqlite, pure Go). The cache survives process restarts, which
// is what makes degraded mode useful across a redeploy.
type SQLiteCache struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the cache database at the given path and
// configures WAL mode.
func NewSQLite(dsn string) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cache: open: %w", err)
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("cache: exec %s: %w", pragma, err)
		}
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS cart_cache (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: migrate: %w", err)
	}
	return &SQLiteCache{db: db}, nil
}

func (c *SQLiteCache) Close() error {
	return c.db.Close()
}

func cartKey(userID string) string {
	return "cart_" + userID
}

func (c *SQLiteCache) Load(ctx context.Context, userID string) ([]*model.CartItem, error) {
	var raw string
	err := c.db.QueryRowContext(ctx,
		`SELECT value FROM cart_cache WHERE key = ?`, cartKey(userID),
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cache: load %s: %w", userID, err)
	}

	var items []*model.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("cache: decode %s: %w", userID, err)
	}
	return items, nil
}

// Save overwrites the user's snapshot. The value is the JSON array of cart
// items; a single upsert keeps the write atomic from the caller's view.
func (c *SQLiteCache) Save(ctx context.Context, userID string, items []*model.CartItem) error {
	if items == nil {
		items = []*model.CartItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", userID, err)
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT INTO cart_cache (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		cartKey(userID), string(raw), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("cache: save %s: %w", userID, err)
	}
	return nil
}

func (c *SQLiteCache) Clear(ctx context.Context, userID string) error {
	_, err := c.db.ExecContext(ctx,
		`DELETE FROM cart_cache WHERE key = ?`, cartKey(userID),
	)
	if err != nil {
		return fmt.Errorf("cache: clear %s: %w", userID, err)
	}
	return nil
}
