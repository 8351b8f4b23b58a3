package order

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/cooknest/internal/user"
)

// Handler exposes order placement and history.
type Handler struct {
	service *Service
	log     *slog.Logger
}

func NewHandler(s *Service, log *slog.Logger) *Handler {
	return &Handler{service: s, log: log.With("component", "order")}
}

func (h *Handler) RegisterPublicRoutes(r fiber.Router) {
	r.Post("/api/orders", h.placeOrder)
	r.Get("/api/orders", h.getOrders)
}

func (h *Handler) placeOrder(c *fiber.Ctx) error {
	payload := new(PlaceRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order data"})
	}
	if err := payload.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order data"})
	}

	// a bearer token is optional, but when sent it has to match the order owner
	if c.Locals("user") != nil {
		tokenUserID, err := user.GetUserIDFromCtx(c)
		if err != nil || tokenUserID != payload.UserID {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "user mismatch"})
		}
	}

	created, err := h.service.Place(c.UserContext(), *payload)
	if err != nil {
		if errors.Is(err, ErrInvalidOrder) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order data"})
		}
		h.log.Error("place order", "user_id", payload.UserID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to place order"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"orderId": created.ID})
}

func (h *Handler) getOrders(c *fiber.Ctx) error {
	orders, err := h.service.List(c.UserContext())
	if err != nil {
		h.log.Error("list orders", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list orders"})
	}
	return c.JSON(orders)
}
