package banner

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
	log     *slog.Logger
}

func NewHandler(s *Service, log *slog.Logger) *Handler {
	return &Handler{service: s, log: log.With("component", "banner")}
}

func (h *Handler) RegisterPublicRoutes(r fiber.Router) {
	r.Get("/api/banners", h.getBanners)
}

func (h *Handler) getBanners(c *fiber.Ctx) error {
	items, err := h.service.List(c.UserContext(), c.Query("kind"))
	if err != nil {
		if errors.Is(err, ErrUnknownKind) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "kind must be banner or carousel"})
		}
		h.log.Error("list banners", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load banners"})
	}
	return c.JSON(items)
}
