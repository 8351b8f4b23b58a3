package menu

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service    *Service
	allowReset bool
	log        *slog.Logger
}

func NewHandler(service *Service, allowReset bool, log *slog.Logger) *Handler {
	return &Handler{service: service, allowReset: allowReset, log: log.With("component", "menu")}
}

func (h *Handler) RegisterPublicRoutes(r fiber.Router) {
	r.Get("/api/foods", h.getFoods)

	// dev-only, enabled with ALLOW_RESET_MENU=1
	r.Post("/dev/reset-menu", h.resetMenu)
}

func (h *Handler) getFoods(c *fiber.Ctx) error {
	foods, err := h.service.List(c.UserContext())
	if err != nil {
		h.log.Error("list foods", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load menu"})
	}
	return c.JSON(foods)
}

// resetMenu replaces the menu with the posted list. A body that does not parse
// falls back to DefaultMenu; an explicit empty array clears the menu.
func (h *Handler) resetMenu(c *fiber.Ctx) error {
	if !h.allowReset {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "reset not allowed"})
	}

	var foods []Food
	if err := c.BodyParser(&foods); err != nil {
		foods = DefaultMenu
	}

	n, err := h.service.Reset(c.UserContext(), foods)
	if err != nil {
		h.log.Error("reset menu", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to reset menu"})
	}
	h.log.Warn("menu reset", "inserted", n)
	return c.JSON(fiber.Map{"inserted": n})
}
