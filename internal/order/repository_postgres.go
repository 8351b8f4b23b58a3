package order

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	insertOrderQuery = `
		INSERT INTO orders (user_id, total_amount, payment_method)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	insertItemQuery = `
		INSERT INTO order_items (order_id, food_item_id, food_name, price)
		VALUES ($1, $2, $3, $4)
	`
	listOrdersQuery = `
		SELECT id, user_id, total_amount, payment_method, created_at
		FROM orders
		ORDER BY created_at DESC, id DESC
	`
	listItemsQuery = `
		SELECT order_id, food_item_id, food_name, price
		FROM order_items
		WHERE order_id = ANY($1::int[])
		ORDER BY order_id, id
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create writes the order row and its item rows in one transaction, so a
// failing item insert leaves no order behind.
func (r *PostgresRepository) Create(ctx context.Context, ord Order) (created Order, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Order{}, fmt.Errorf("begin order transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	err = tx.QueryRowContext(ctx, insertOrderQuery, ord.UserID, ord.TotalAmount, ord.PaymentMethod).
		Scan(&ord.ID, &ord.CreatedAt)
	if err != nil {
		return Order{}, fmt.Errorf("insert order: %w", err)
	}

	for _, item := range ord.Items {
		if _, err = tx.ExecContext(ctx, insertItemQuery, ord.ID, item.FoodItemID, item.FoodName, item.FoodPrice); err != nil {
			return Order{}, fmt.Errorf("insert order item %q: %w", item.FoodName, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return Order{}, fmt.Errorf("commit order: %w", err)
	}
	return ord, nil
}

// List loads the orders, then all of their items with a single ANY($1)
// query, and groups the items in memory.
func (r *PostgresRepository) List(ctx context.Context) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, listOrdersQuery)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]Order, 0)
	index := map[int]int{}
	ids := make([]int64, 0)
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.PaymentMethod, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.Items = []Item{}
		index[o.ID] = len(orders)
		ids = append(ids, int64(o.ID))
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	itemRows, err := r.db.QueryContext(ctx, listItemsQuery, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var (
			orderID int
			item    Item
		)
		if err := itemRows.Scan(&orderID, &item.FoodItemID, &item.FoodName, &item.FoodPrice); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	return orders, nil
}
