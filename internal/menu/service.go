package menu

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Food, error) {
	return s.repo.List(ctx)
}

// Reset replaces the menu; an empty slice clears it.
func (s *Service) Reset(ctx context.Context, foods []Food) (int, error) {
	return s.repo.Reset(ctx, foods)
}
