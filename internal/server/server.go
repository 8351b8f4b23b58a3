// Package server assembles the Fiber application: middleware, feature
// handlers and the health check.
package server

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/wichananm65/cooknest/internal/banner"
	"github.com/wichananm65/cooknest/internal/config"
	"github.com/wichananm65/cooknest/internal/logger"
	"github.com/wichananm65/cooknest/internal/menu"
	"github.com/wichananm65/cooknest/internal/order"
	"github.com/wichananm65/cooknest/internal/user"
)

// Deps are the storage backends and the optional event publisher.
type Deps struct {
	Users   user.Repository
	Menu    menu.Repository
	Banners banner.Repository
	Orders  order.Repository
	Events  order.Publisher
}

func New(cfg config.Config, log *slog.Logger, d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "cooknest",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.Middleware(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "GET,POST,HEAD,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	user.NewHandler(user.NewService(d.Users), cfg.JWTSecret, log).RegisterPublicRoutes(app)
	menu.NewHandler(menu.NewService(d.Menu), cfg.AllowMenuReset, log).RegisterPublicRoutes(app)
	banner.NewHandler(banner.NewService(d.Banners), log).RegisterPublicRoutes(app)

	// orders stay open to anonymous callers; a token, when sent, must be valid
	app.Use("/api/orders", user.OptionalJWT(cfg.JWTSecret))
	order.NewHandler(order.NewService(d.Orders, d.Events, log), log).RegisterPublicRoutes(app)

	return app
}
