package menu

import (
	"context"
	"sync"
)

type Repository interface {
	List(ctx context.Context) ([]Food, error)
	// Reset replaces the whole menu and returns how many foods were stored.
	Reset(ctx context.Context, foods []Food) (int, error)
}

// InMemoryRepository is a simple in-memory implementation useful for tests and
// local runs.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Food
	nextID  int
}

func NewInMemoryRepository(seed []Food) *InMemoryRepository {
	r := &InMemoryRepository{}
	r.load(seed)
	return r
}

func (r *InMemoryRepository) load(foods []Food) {
	r.storage = make([]Food, 0, len(foods))
	r.nextID = 1
	for _, f := range foods {
		if f.ID >= r.nextID {
			r.nextID = f.ID + 1
		}
	}
	for _, f := range foods {
		if f.ID == 0 {
			f.ID = r.nextID
			r.nextID++
		}
		r.storage = append(r.storage, f)
	}
}

func (r *InMemoryRepository) List(_ context.Context) ([]Food, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Food, len(r.storage))
	copy(out, r.storage)
	return out, nil
}

func (r *InMemoryRepository) Reset(_ context.Context, foods []Food) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.load(foods)
	return len(r.storage), nil
}
