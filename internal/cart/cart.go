// Package cart is the client-side selection of foods awaiting payment.
package cart

import (
	"github.com/shopspring/decimal"
	"github.com/wichananm65/cooknest/internal/menu"
)

// Cart is an ordered set of foods keyed by id. Order follows selection.
// It is not safe for concurrent use; workflow.Controller guards it.
type Cart struct {
	items []menu.Food
}

func New() *Cart {
	return &Cart{}
}

// Toggle removes the food when its id is already selected and appends it
// otherwise. It reports whether the food is selected afterwards.
func (c *Cart) Toggle(f menu.Food) bool {
	for i, it := range c.items {
		if it.ID == f.ID {
			c.items = append(c.items[:i:i], c.items[i+1:]...)
			return false
		}
	}
	c.items = append(c.items, f)
	return true
}

func (c *Cart) Contains(id int) bool {
	for _, it := range c.items {
		if it.ID == id {
			return true
		}
	}
	return false
}

// Items returns a copy of the selection.
func (c *Cart) Items() []menu.Food {
	out := make([]menu.Food, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int { return len(c.items) }

func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }

func (c *Cart) Clear() { c.items = nil }

// Total is the sum of the selected prices.
func (c *Cart) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range c.items {
		sum = sum.Add(decimal.NewFromFloat(it.Price))
	}
	return sum
}
