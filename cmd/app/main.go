package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/wichananm65/cooknest/internal/banner"
	"github.com/wichananm65/cooknest/internal/config"
	"github.com/wichananm65/cooknest/internal/database"
	"github.com/wichananm65/cooknest/internal/events"
	"github.com/wichananm65/cooknest/internal/logger"
	"github.com/wichananm65/cooknest/internal/menu"
	"github.com/wichananm65/cooknest/internal/order"
	"github.com/wichananm65/cooknest/internal/server"
	"github.com/wichananm65/cooknest/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Error("ensure schema", "error", err)
		os.Exit(1)
	}
	foods, banners, err := database.Seed(ctx, db, menu.DefaultMenu, banner.Defaults)
	if err != nil {
		// a missing seed only leaves the menu empty
		log.Warn("seed database", "error", err)
	} else if foods+banners > 0 {
		log.Info("seeded database", "foods", foods, "banners", banners)
	}

	deps := server.Deps{
		Users:   user.NewPostgresRepository(db),
		Menu:    menu.NewPostgresRepository(db),
		Banners: banner.NewPostgresRepository(db),
		Orders:  order.NewPostgresRepository(db),
	}
	if cfg.AMQPURL != "" {
		pub, err := events.Dial(cfg.AMQPURL, cfg.EventsExchange)
		if err != nil {
			log.Warn("order events disabled", "error", err)
		} else {
			defer pub.Close()
			deps.Events = pub
			log.Info("publishing order events", "exchange", cfg.EventsExchange)
		}
	}

	app := server.New(cfg, log, deps)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("shutdown", "error", err)
		}
	}()

	log.Info("listening", "addr", cfg.Addr, "menu_reset", cfg.AllowMenuReset)
	if err := app.Listen(cfg.Addr); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
