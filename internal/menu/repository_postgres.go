package menu

import (
	"context"
	"database/sql"
	"fmt"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	listFoodsQuery = `
		SELECT id, name, price, COALESCE(category, ''), COALESCE(image, '')
		FROM food_items
		ORDER BY id
	`
	deleteFoodsQuery = `DELETE FROM food_items`
	insertFoodQuery  = `INSERT INTO food_items (name, price, category, image) VALUES ($1, $2, $3, $4)`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]Food, error) {
	rows, err := r.db.QueryContext(ctx, listFoodsQuery)
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	defer rows.Close()

	out := make([]Food, 0)
	for rows.Next() {
		var f Food
		if err := rows.Scan(&f.ID, &f.Name, &f.Price, &f.Category, &f.Image); err != nil {
			return nil, fmt.Errorf("scan food: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// Reset swaps the menu inside one transaction. Existing order_items keep
// their copied names and prices.
func (r *PostgresRepository) Reset(ctx context.Context, foods []Food) (n int, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin menu reset: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, deleteFoodsQuery); err != nil {
		return 0, fmt.Errorf("clear menu: %w", err)
	}
	for _, f := range foods {
		if _, err = tx.ExecContext(ctx, insertFoodQuery, f.Name, f.Price, f.Category, f.Image); err != nil {
			return 0, fmt.Errorf("insert food %q: %w", f.Name, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit menu reset: %w", err)
	}
	return len(foods), nil
}
