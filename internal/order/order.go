package order

import (
	"time"

	"github.com/wichananm65/cooknest/internal/menu"
)

// Item is a line of an order: a snapshot of the menu entry at purchase time.
type Item struct {
	FoodItemID int     `json:"food_item_id"`
	FoodName   string  `json:"food_name"`
	FoodPrice  float64 `json:"food_price"`
}

// Order is one checkout. It is immutable once stored.
type Order struct {
	ID            int       `json:"id"`
	UserID        int       `json:"user_id"`
	TotalAmount   float64   `json:"total_amount"`
	PaymentMethod string    `json:"payment_method"`
	CreatedAt     time.Time `json:"created_at"`
	Items         []Item    `json:"items"`
}

// PlaceRequest is the body of POST /api/orders.
type PlaceRequest struct {
	UserID        int         `json:"userId"`
	Foods         []menu.Food `json:"foods"`
	Total         float64     `json:"total"`
	PaymentMethod string      `json:"paymentMethod"`
}

// Validate checks only what the endpoint guarantees: a user and at least one
// food. Prices and the payment method are taken as sent.
func (r PlaceRequest) Validate() error {
	if r.UserID <= 0 || len(r.Foods) == 0 {
		return ErrInvalidOrder
	}
	return nil
}

func itemsFromFoods(foods []menu.Food) []Item {
	items := make([]Item, 0, len(foods))
	for _, f := range foods {
		items = append(items, Item{FoodItemID: f.ID, FoodName: f.Name, FoodPrice: f.Price})
	}
	return items
}
