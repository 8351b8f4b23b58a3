package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/wichananm65/cooknest/internal/client"
	"github.com/wichananm65/cooknest/internal/config"
	"github.com/wichananm65/cooknest/internal/console"
	"github.com/wichananm65/cooknest/internal/logger"
)

func main() {
	cfg, err := config.ParseClient(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	log := logger.New(cfg.LogLevel, "text", os.Stderr)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ui := console.New(client.New(cfg.APIURL, cfg.Timeout), os.Stdin, os.Stdout, log, console.Options{
		SlideInterval: cfg.SlideInterval,
		RedirectDelay: cfg.RedirectDelay,
	})
	if err := ui.Run(ctx); err != nil {
		log.Error("client stopped", "error", err)
		os.Exit(1)
	}
}
