package banner

import (
	"context"
	"sort"
	"sync"
)

// Repository provides access to banner items.
type Repository interface {
	// List returns items of the given kind ordered by ord then id; an empty
	// kind returns all of them.
	List(ctx context.Context, kind string) ([]Item, error)
}

type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Item
}

func NewInMemoryRepository(seed []Item) *InMemoryRepository {
	items := make([]Item, 0, len(seed))
	for i, it := range seed {
		if it.ID == 0 {
			it.ID = i + 1
		}
		items = append(items, it)
	}
	return &InMemoryRepository{storage: items}
}

func (r *InMemoryRepository) List(_ context.Context, kind string) ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Item, 0, len(r.storage))
	for _, it := range r.storage {
		if kind == "" || it.Kind == kind {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Ord != out[j].Ord {
			return out[i].Ord < out[j].Ord
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
