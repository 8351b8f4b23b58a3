package order

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
)

// Publisher is notified after an order has been stored.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, ord Order) error
}

// Service provides business logic for orders.
type Service struct {
	repo   Repository
	events Publisher
	log    *slog.Logger
}

// NewService wires the order service. events may be nil.
func NewService(r Repository, events Publisher, log *slog.Logger) *Service {
	return &Service{repo: r, events: events, log: log.With("component", "order")}
}

// Place stores the order atomically. The stored total is the sum of the item
// prices; a different client total is logged and ignored.
func (s *Service) Place(ctx context.Context, req PlaceRequest) (Order, error) {
	if err := req.Validate(); err != nil {
		return Order{}, err
	}

	items := itemsFromFoods(req.Foods)
	total := Total(items)
	if sent := decimal.NewFromFloat(req.Total); !sent.Equal(total) {
		s.log.Warn("client total differs from item sum",
			"user_id", req.UserID, "client_total", sent.String(), "computed_total", total.String())
	}

	created, err := s.repo.Create(ctx, Order{
		UserID:        req.UserID,
		TotalAmount:   total.InexactFloat64(),
		PaymentMethod: req.PaymentMethod,
		Items:         items,
	})
	if err != nil {
		return Order{}, err
	}
	s.log.Info("order placed", "order_id", created.ID, "user_id", created.UserID, "items", len(created.Items))

	if s.events != nil {
		if err := s.events.PublishOrderPlaced(ctx, created); err != nil {
			s.log.Error("publish order placed", "order_id", created.ID, "error", err)
		}
	}
	return created, nil
}

func (s *Service) List(ctx context.Context) ([]Order, error) {
	return s.repo.List(ctx)
}

// Total sums item prices without float drift.
func Total(items []Item) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(decimal.NewFromFloat(it.FoodPrice))
	}
	return sum
}
