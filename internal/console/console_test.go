package console

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wichananm65/cooknest/internal/banner"
	"github.com/wichananm65/cooknest/internal/client"
	"github.com/wichananm65/cooknest/internal/form"
	"github.com/wichananm65/cooknest/internal/logger"
	"github.com/wichananm65/cooknest/internal/menu"
	"github.com/wichananm65/cooknest/internal/order"
	"github.com/wichananm65/cooknest/internal/user"
	"github.com/wichananm65/cooknest/internal/workflow"
)

type fakeAPI struct {
	mu         sync.Mutex
	logins     []form.Login
	registers  []form.Registration
	placed     []order.PlaceRequest
	tokens     []string
	stored     []order.Order
	loginErr   error
	placeErr   error
	bannersErr error
}

func (f *fakeAPI) Login(_ context.Context, in form.Login) (user.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins = append(f.logins, in)
	if f.loginErr != nil {
		return user.Profile{}, f.loginErr
	}
	if in.Email != "asha@example.com" || in.Password != "Secret1" {
		return user.Profile{}, &client.APIError{Status: 401, Message: "Invalid email or password"}
	}
	return user.Profile{ID: 1, Name: "Asha", Email: in.Email, Token: "tok"}, nil
}

func (f *fakeAPI) Register(_ context.Context, in form.Registration) (user.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registers = append(f.registers, in)
	return user.Profile{ID: 2, Name: in.Name, Email: in.Email}, nil
}

func (f *fakeAPI) Foods(context.Context) ([]menu.Food, error) {
	return []menu.Food{{ID: 5, Name: "Pizza", Price: 200}, {ID: 6, Name: "Soda", Price: 50}}, nil
}

func (f *fakeAPI) Banners(context.Context, string) ([]banner.Item, error) {
	if f.bannersErr != nil {
		return nil, f.bannersErr
	}
	return banner.Defaults, nil
}

func (f *fakeAPI) PlaceOrder(_ context.Context, token string, req order.PlaceRequest) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.placed = append(f.placed, req)
	f.tokens = append(f.tokens, token)
	if f.placeErr != nil {
		return 0, f.placeErr
	}
	o := order.Order{
		ID:            len(f.stored) + 1,
		UserID:        req.UserID,
		TotalAmount:   req.Total,
		PaymentMethod: req.PaymentMethod,
		CreatedAt:     time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC),
	}
	for _, fd := range req.Foods {
		o.Items = append(o.Items, order.Item{FoodItemID: fd.ID, FoodName: fd.Name, FoodPrice: fd.Price})
	}
	f.stored = append(f.stored, o)
	return o.ID, nil
}

func (f *fakeAPI) Orders(context.Context) ([]order.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]order.Order(nil), f.stored...), nil
}

func run(t *testing.T, api *fakeAPI, lines ...string) (*Console, string) {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	c := New(api, in, &out, logger.Discard(), Options{SlideInterval: time.Hour, Location: time.UTC})
	require.NoError(t, c.Run(context.Background()))
	return c, out.String()
}

func TestCheckout(t *testing.T) {
	api := &fakeAPI{}
	c, out := run(t, api,
		"bad", "x", // rejected before any request
		"asha@example.com", "Secret1",
		"1", "2", "c",
		"p",
		"y", // no method yet
		"3", "y",
		"q",
	)

	assert.Contains(t, out, "Please enter a valid email address")
	assert.Len(t, api.logins, 1)

	require.Len(t, api.placed, 1)
	req := api.placed[0]
	assert.Equal(t, 1, req.UserID)
	assert.Equal(t, 250.0, req.Total)
	assert.Equal(t, "UPI", req.PaymentMethod)
	assert.Len(t, req.Foods, 2)
	assert.Equal(t, "tok", api.tokens[0])

	assert.Contains(t, out, "Order Summary")
	assert.Contains(t, out, "< /4.png >")
	assert.Contains(t, out, "Please select a payment method")
	assert.Contains(t, out, "Order #1  ₹250")
	assert.Contains(t, out, "10/17/2026, 9:30:00 AM")

	assert.Equal(t, workflow.RouteLogin, c.Flow().Route())
	_, loggedIn := c.Flow().User()
	assert.False(t, loggedIn)
	assert.Empty(t, c.Flow().Cart())
}

func TestEmptyCartCannotProceed(t *testing.T) {
	api := &fakeAPI{}
	c, out := run(t, api, "asha@example.com", "Secret1", "c", "p")

	assert.Contains(t, out, "No items selected")
	assert.Contains(t, out, workflow.ErrEmptyCart.Error())
	assert.Equal(t, workflow.RouteCart, c.Flow().Route())
	assert.Empty(t, api.placed)
}

func TestRegisterThenBackToLogin(t *testing.T) {
	api := &fakeAPI{}
	c, out := run(t, api,
		"r",
		"A", "bad", "abc",
		"Asha", "asha@example.com", "Secret1",
	)

	assert.Contains(t, out, "Name must be at least 2 characters")
	assert.Contains(t, out, "Password must be at least 6 characters")
	require.Len(t, api.registers, 1)
	assert.Equal(t, "Asha", api.registers[0].Name)
	assert.Contains(t, out, "Registration successful! Redirecting to login...")
	assert.Equal(t, workflow.RouteLogin, c.Flow().Route())
}

func TestFailureMessages(t *testing.T) {
	api := &fakeAPI{loginErr: fmt.Errorf("%w: connection refused", client.ErrNetwork)}
	_, out := run(t, api, "asha@example.com", "Secret1")
	assert.Contains(t, out, "Network error. Please try again.")

	api = &fakeAPI{placeErr: &client.APIError{Status: 500}}
	c, out := run(t, api, "asha@example.com", "Secret1", "1", "c", "p", "5", "y")
	assert.Contains(t, out, "Payment failed. Please try again.")
	assert.Equal(t, workflow.RoutePayment, c.Flow().Route())
	assert.Len(t, c.Flow().Cart(), 1, "cart is kept for a retry")

	api = &fakeAPI{placeErr: &client.APIError{Status: 400, Message: "Invalid order data"}}
	_, out = run(t, api, "asha@example.com", "Secret1", "1", "c", "p", "1", "y")
	assert.Contains(t, out, "Invalid order data")
}

func TestExitAndBannerFallback(t *testing.T) {
	api := &fakeAPI{bannersErr: fmt.Errorf("%w: timeout", client.ErrNetwork)}
	c, out := run(t, api, "exit", "asha@example.com", "Secret1")

	assert.Contains(t, out, "CookNest Banner")
	assert.Empty(t, api.logins)
	assert.Equal(t, workflow.RouteLogin, c.Flow().Route())
}

func TestSlideCommands(t *testing.T) {
	api := &fakeAPI{}
	c, out := run(t, api, "asha@example.com", "Secret1", "1", "c", "s3", "pause", "n", "s9")

	assert.Contains(t, out, "< /6.png >  Slide 3")
	assert.Contains(t, out, "< /7.png >  Slide 4")
	assert.Contains(t, out, "slide index out of range")
	assert.True(t, c.carousel.Paused())
}

type lockedBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (l *lockedBuffer) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func (l *lockedBuffer) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.String()
}

func TestAutoAdvanceRedrawsSlide(t *testing.T) {
	pr, pw := io.Pipe()
	out := &lockedBuffer{}
	c := New(&fakeAPI{}, pr, out, logger.Discard(), Options{SlideInterval: 10 * time.Millisecond, Location: time.UTC})

	errc := make(chan error, 1)
	go func() { errc <- c.Run(context.Background()) }()

	_, err := io.WriteString(pw, "asha@example.com\nSecret1\n1\nc\n")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "\n< /5.png >  Slide 2")
	}, time.Second, 5*time.Millisecond)

	_, err = io.WriteString(pw, "exit\n")
	require.NoError(t, err)
	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("console did not exit")
	}
	_ = pw.Close()
}
