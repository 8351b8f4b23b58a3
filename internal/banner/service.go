package banner

import (
	"context"
	"errors"
	"strings"
)

var ErrUnknownKind = errors.New("unknown banner kind")

// Service provides business logic for banners.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// List returns the items of one kind, or all of them for an empty kind.
func (s *Service) List(ctx context.Context, kind string) ([]Item, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind != "" && kind != KindBanner && kind != KindCarousel {
		return nil, ErrUnknownKind
	}
	return s.repo.List(ctx, kind)
}
