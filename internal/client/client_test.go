package client

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wichananm65/cooknest/internal/banner"
	"github.com/wichananm65/cooknest/internal/form"
	"github.com/wichananm65/cooknest/internal/logger"
	"github.com/wichananm65/cooknest/internal/menu"
	"github.com/wichananm65/cooknest/internal/order"
	"github.com/wichananm65/cooknest/internal/user"
)

const secret = "client-test-secret"

// serve runs app on a loopback port until the test ends.
func serve(t *testing.T, app *fiber.App) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })
	return "http://" + ln.Addr().String()
}

func backend(t *testing.T) string {
	t.Helper()
	log := logger.Discard()
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use("/api/orders", user.OptionalJWT(secret))
	user.NewHandler(user.NewService(user.NewInMemoryRepository(nil)), secret, log).RegisterPublicRoutes(app)
	menu.NewHandler(menu.NewService(menu.NewInMemoryRepository(menu.DefaultMenu)), false, log).RegisterPublicRoutes(app)
	banner.NewHandler(banner.NewService(banner.NewInMemoryRepository(banner.Defaults)), log).RegisterPublicRoutes(app)
	order.NewHandler(order.NewService(order.NewInMemoryRepository(nil), nil, log), log).RegisterPublicRoutes(app)
	return serve(t, app)
}

func TestClient_FullCheckout(t *testing.T) {
	ctx := context.Background()
	c := New(backend(t), time.Second)

	registered, err := c.Register(ctx, form.Registration{Name: "Asha", Email: "asha@example.com", Password: "Secret1"})
	require.NoError(t, err)
	assert.NotZero(t, registered.ID)
	assert.Empty(t, registered.Token)

	_, err = c.Register(ctx, form.Registration{Name: "Asha", Email: "ASHA@example.com", Password: "Secret1"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, fiber.StatusConflict, apiErr.Status)
	assert.Equal(t, "Email already exists", MessageOr(err, "Registration failed"))

	_, err = c.Login(ctx, form.Login{Email: "asha@example.com", Password: "wrong"})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, fiber.StatusUnauthorized, apiErr.Status)

	profile, err := c.Login(ctx, form.Login{Email: "asha@example.com", Password: "Secret1"})
	require.NoError(t, err)
	require.NotEmpty(t, profile.Token)

	foods, err := c.Foods(ctx)
	require.NoError(t, err)
	require.Len(t, foods, len(menu.DefaultMenu))

	slides, err := c.Banners(ctx, banner.KindCarousel)
	require.NoError(t, err)
	assert.Len(t, slides, 6)

	id, err := c.PlaceOrder(ctx, profile.Token, order.PlaceRequest{
		UserID:        profile.ID,
		Foods:         foods[:2],
		Total:         foods[0].Price + foods[1].Price,
		PaymentMethod: "UPI",
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	orders, err := c.Orders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, id, orders[0].ID)
	assert.Len(t, orders[0].Items, 2)
}

func TestClient_PlaceOrderErrors(t *testing.T) {
	ctx := context.Background()
	c := New(backend(t), time.Second)

	_, err := c.PlaceOrder(ctx, "", order.PlaceRequest{UserID: 1})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, fiber.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Invalid order data", apiErr.Message)

	_, err = c.PlaceOrder(ctx, "not-a-token", order.PlaceRequest{UserID: 1, Foods: []menu.Food{{ID: 1, Name: "Soda", Price: 50}}})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, fiber.StatusUnauthorized, apiErr.Status)
}

func TestClient_NetworkError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	_, err = New("http://"+addr, time.Second).Foods(context.Background())
	assert.ErrorIs(t, err, ErrNetwork)
	assert.Equal(t, "Network error. Please try again.", MessageOr(err, "Network error. Please try again."))
}

func TestClient_Timeout(t *testing.T) {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Get("/api/foods", func(c *fiber.Ctx) error {
		time.Sleep(300 * time.Millisecond)
		return c.JSON([]menu.Food{})
	})
	c := New(serve(t, app), 30*time.Millisecond)

	start := time.Now()
	_, err := c.Foods(context.Background())
	assert.ErrorIs(t, err, ErrNetwork)
	assert.Less(t, time.Since(start), 250*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = New(serve(t, fiber.New(fiber.Config{DisableStartupMessage: true})), time.Second).Foods(ctx)
	assert.True(t, errors.Is(err, ErrNetwork))
}

func TestAPIErrorMessage(t *testing.T) {
	assert.Equal(t, "api error: status 500", (&APIError{Status: 500}).Error())
	assert.Equal(t, "fallback", MessageOr(errors.New("other"), "fallback"))
}
