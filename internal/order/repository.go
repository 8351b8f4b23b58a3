package order

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

var ErrInvalidOrder = errors.New("invalid order data")

// Repository defines persistence operations for orders.
type Repository interface {
	// Create stores the order and all of its items, or nothing at all.
	Create(ctx context.Context, ord Order) (Order, error)
	// List returns every order with its items, newest first.
	List(ctx context.Context) ([]Order, error)
}

type InMemoryRepository struct {
	mu     sync.RWMutex
	orders []Order
	nextID int
}

func NewInMemoryRepository(seed []Order) *InMemoryRepository {
	r := &InMemoryRepository{orders: make([]Order, 0, len(seed)), nextID: 1}
	for _, o := range seed {
		r.orders = append(r.orders, o)
		if o.ID >= r.nextID {
			r.nextID = o.ID + 1
		}
	}
	return r
}

func (r *InMemoryRepository) Create(_ context.Context, ord Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ord.ID = r.nextID
	r.nextID++
	if ord.CreatedAt.IsZero() {
		ord.CreatedAt = time.Now().UTC()
	}
	ord.Items = append([]Item{}, ord.Items...)
	r.orders = append(r.orders, ord)
	return ord, nil
}

func (r *InMemoryRepository) List(_ context.Context) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, 0, len(r.orders))
	for _, o := range r.orders {
		o.Items = append([]Item{}, o.Items...)
		out = append(out, o)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
