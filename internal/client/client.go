// Package client is the typed HTTP client the console uses to reach the
// CookNest API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/wichananm65/cooknest/internal/banner"
	"github.com/wichananm65/cooknest/internal/form"
	"github.com/wichananm65/cooknest/internal/menu"
	"github.com/wichananm65/cooknest/internal/order"
	"github.com/wichananm65/cooknest/internal/user"
)

const DefaultTimeout = 10 * time.Second

// ErrNetwork covers every failure to get a response at all, timeouts
// included.
var ErrNetwork = errors.New("network error")

// APIError is a non-2xx response. Message is the server's message or error
// field.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

// MessageOr returns the server message of an *APIError in err, or fallback.
func MessageOr(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

type Client struct {
	baseURL string
	timeout time.Duration
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), timeout: timeout}
}

func (c *Client) Login(ctx context.Context, in form.Login) (user.Profile, error) {
	var out user.Profile
	err := c.do(ctx, fiber.MethodPost, "/api/users/login", "", in, &out)
	return out, err
}

func (c *Client) Register(ctx context.Context, in form.Registration) (user.Profile, error) {
	var out user.Profile
	err := c.do(ctx, fiber.MethodPost, "/api/users/register", "", in, &out)
	return out, err
}

func (c *Client) Foods(ctx context.Context) ([]menu.Food, error) {
	var out []menu.Food
	err := c.do(ctx, fiber.MethodGet, "/api/foods", "", nil, &out)
	return out, err
}

func (c *Client) Banners(ctx context.Context, kind string) ([]banner.Item, error) {
	path := "/api/banners"
	if kind != "" {
		path += "?kind=" + url.QueryEscape(kind)
	}
	var out []banner.Item
	err := c.do(ctx, fiber.MethodGet, path, "", nil, &out)
	return out, err
}

// PlaceOrder posts the order with the user's token and returns the new id.
func (c *Client) PlaceOrder(ctx context.Context, token string, req order.PlaceRequest) (int, error) {
	var out struct {
		OrderID int `json:"orderId"`
	}
	if err := c.do(ctx, fiber.MethodPost, "/api/orders", token, req, &out); err != nil {
		return 0, err
	}
	return out.OrderID, nil
}

func (c *Client) Orders(ctx context.Context) ([]order.Order, error) {
	var out []order.Order
	err := c.do(ctx, fiber.MethodGet, "/api/orders", "", nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if timeout <= 0 {
		return fmt.Errorf("%w: %v", ErrNetwork, context.DeadlineExceeded)
	}

	a := fiber.AcquireAgent()
	req := a.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	a.Timeout(timeout).
		Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON).
		Set(fiber.HeaderXRequestID, uuid.NewString())
	if token != "" {
		a.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	if body != nil {
		a.JSON(body)
	}

	status, resp, errs := a.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("%w: %v", ErrNetwork, errs[0])
	}

	if status >= fiber.StatusBadRequest {
		var e struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		_ = json.Unmarshal(resp, &e)
		msg := e.Message
		if msg == "" {
			msg = e.Error
		}
		return &APIError{Status: status, Message: msg}
	}

	if out == nil || len(resp) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
