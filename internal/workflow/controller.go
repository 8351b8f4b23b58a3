// Package workflow holds the client session and decides which view is shown.
package workflow

import (
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/wichananm65/cooknest/internal/cart"
	"github.com/wichananm65/cooknest/internal/menu"
	"github.com/wichananm65/cooknest/internal/user"
)

var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrUnknownRoute      = errors.New("unknown route")
	ErrNotAuthenticated  = errors.New("not logged in")
	ErrEmptyCart         = errors.New("cart is empty")
)

// Controller owns the session user, the cart and the current route. All
// state is in memory and lost on exit.
type Controller struct {
	mu    sync.Mutex
	route Route
	user  *user.Profile
	cart  *cart.Cart
}

func New() *Controller {
	return &Controller{route: RouteLogin, cart: cart.New()}
}

func (c *Controller) Route() Route {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.route
}

// User returns the logged-in user, if any.
func (c *Controller) User() (user.Profile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return user.Profile{}, false
	}
	return *c.user, true
}

// Navigate jumps to r directly. The root resolves to login, and a framed
// route without a user lands on login. It returns the route actually shown.
func (c *Controller) Navigate(r Route) (Route, error) {
	if !r.Known() {
		return "", fmt.Errorf("%w: %s", ErrUnknownRoute, r)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.route = c.guard(r)
	return c.route, nil
}

func (c *Controller) guard(r Route) Route {
	if r == RouteRoot {
		return RouteLogin
	}
	if r.Framed() && c.user == nil {
		return RouteLogin
	}
	return r
}

// Dispatch applies an event from the transition table. Login has its own
// method because it carries the user.
func (c *Controller) Dispatch(ev Event) error {
	if ev == EventLogin {
		return fmt.Errorf("%w: use Login", ErrInvalidTransition)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fire(ev)
}

func (c *Controller) fire(ev Event) error {
	t, ok := transitions[ev]
	if !ok || !t.allowedFrom(c.route) {
		return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, ev, c.route)
	}
	if ev == EventProceedToPayment && c.cart.IsEmpty() {
		return ErrEmptyCart
	}

	switch ev {
	case EventPaymentSuccess:
		c.cart.Clear()
	case EventLogout:
		c.user = nil
		c.cart.Clear()
	}
	c.route = c.guard(t.to)
	return nil
}

// Login stores the user and moves from the login view to the menu.
func (c *Controller) Login(u user.Profile) error {
	if u.ID <= 0 {
		return ErrNotAuthenticated
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if !transitions[EventLogin].allowedFrom(c.route) {
		return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, EventLogin, c.route)
	}
	c.user = &u
	c.route = RouteFoods
	return nil
}

func (c *Controller) Logout() error {
	return c.Dispatch(EventLogout)
}

// PaymentSucceeded clears the cart and shows the order history.
func (c *Controller) PaymentSucceeded() error {
	return c.Dispatch(EventPaymentSuccess)
}

// ToggleFood adds or removes a food from the cart and reports whether it is
// selected afterwards.
func (c *Controller) ToggleFood(f menu.Food) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return false, ErrNotAuthenticated
	}
	return c.cart.Toggle(f), nil
}

func (c *Controller) IsSelected(id int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cart.Contains(id)
}

func (c *Controller) Cart() []menu.Food {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cart.Items()
}

func (c *Controller) CartTotal() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cart.Total()
}
