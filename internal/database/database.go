package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/wichananm65/cooknest/internal/banner"
	"github.com/wichananm65/cooknest/internal/menu"
)

// Open connects with the pgx stdlib driver and pings once.
func Open(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_idx ON users (lower(email))`,
	`CREATE TABLE IF NOT EXISTS food_items (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		price NUMERIC(10,2) NOT NULL,
		category TEXT,
		image TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS banner (
		banner_id SERIAL PRIMARY KEY,
		banner_img TEXT NOT NULL,
		banner_alt TEXT,
		kind TEXT NOT NULL DEFAULT 'banner',
		ord INT
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id SERIAL PRIMARY KEY,
		user_id INT NOT NULL,
		total_amount NUMERIC(10,2) NOT NULL,
		payment_method TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id SERIAL PRIMARY KEY,
		order_id INT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		food_item_id INT NOT NULL,
		food_name TEXT NOT NULL,
		price NUMERIC(10,2) NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS order_items_order_id_idx ON order_items (order_id)`,
}

// EnsureSchema creates the tables when they are missing. It never alters
// existing ones.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

const (
	countFoodsQuery   = `SELECT COUNT(*) FROM food_items`
	insertFoodQuery   = `INSERT INTO food_items (name, price, category, image) VALUES ($1, $2, $3, $4)`
	countBannersQuery = `SELECT COUNT(*) FROM banner`
	insertBannerQuery = `INSERT INTO banner (banner_img, banner_alt, kind, ord) VALUES ($1, $2, $3, $4)`
)

// Seed fills food_items and banner when they are empty. It returns how many
// rows were inserted into each.
func Seed(ctx context.Context, db *sql.DB, foods []menu.Food, banners []banner.Item) (int, int, error) {
	var nFoods, nBanners int

	var count int
	if err := db.QueryRowContext(ctx, countFoodsQuery).Scan(&count); err != nil {
		return 0, 0, fmt.Errorf("count foods: %w", err)
	}
	if count == 0 {
		for _, f := range foods {
			if _, err := db.ExecContext(ctx, insertFoodQuery, f.Name, f.Price, f.Category, f.Image); err != nil {
				return nFoods, 0, fmt.Errorf("seed food %q: %w", f.Name, err)
			}
			nFoods++
		}
	}

	if err := db.QueryRowContext(ctx, countBannersQuery).Scan(&count); err != nil {
		return nFoods, 0, fmt.Errorf("count banners: %w", err)
	}
	if count == 0 {
		for _, b := range banners {
			if _, err := db.ExecContext(ctx, insertBannerQuery, b.Image, b.Alt, b.Kind, b.Ord); err != nil {
				return nFoods, nBanners, fmt.Errorf("seed banner %q: %w", b.Image, err)
			}
			nBanners++
		}
	}
	return nFoods, nBanners, nil
}
