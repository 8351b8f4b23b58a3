// Package console is the interactive terminal front end of CookNest.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/wichananm65/cooknest/internal/banner"
	"github.com/wichananm65/cooknest/internal/carousel"
	"github.com/wichananm65/cooknest/internal/client"
	"github.com/wichananm65/cooknest/internal/form"
	"github.com/wichananm65/cooknest/internal/menu"
	"github.com/wichananm65/cooknest/internal/order"
	"github.com/wichananm65/cooknest/internal/user"
	"github.com/wichananm65/cooknest/internal/view"
	"github.com/wichananm65/cooknest/internal/workflow"
)

const (
	msgNetwork        = "Network error. Please try again."
	msgLoginFailed    = "Invalid credentials"
	msgRegisterFailed = "Registration failed"
	msgPaymentFailed  = "Payment failed. Please try again."
	msgRegistered     = "Registration successful! Redirecting to login..."
)

// API is the backend surface the console needs. *client.Client satisfies it.
type API interface {
	Login(ctx context.Context, in form.Login) (user.Profile, error)
	Register(ctx context.Context, in form.Registration) (user.Profile, error)
	Foods(ctx context.Context) ([]menu.Food, error)
	Banners(ctx context.Context, kind string) ([]banner.Item, error)
	PlaceOrder(ctx context.Context, token string, req order.PlaceRequest) (int, error)
	Orders(ctx context.Context) ([]order.Order, error)
}

type Options struct {
	SlideInterval time.Duration
	RedirectDelay time.Duration
	Location      *time.Location
}

type Console struct {
	api  API
	flow *workflow.Controller
	in   *bufio.Scanner
	out  io.Writer
	log  *slog.Logger
	opts Options

	banner   banner.Item
	slides   []string
	carousel *carousel.Carousel

	foods    []menu.Food
	orders   []order.Order
	loadedAt workflow.Route
	message  string
	method   string
}

func New(api API, in io.Reader, out io.Writer, log *slog.Logger, opts Options) *Console {
	if opts.RedirectDelay < 0 {
		opts.RedirectDelay = 0
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Console{
		api:  api,
		flow: workflow.New(),
		in:   bufio.NewScanner(in),
		out:  &syncWriter{w: out},
		log:  log.With("component", "console"),
		opts: opts,
	}
}

// Flow exposes the session state, mainly for tests.
func (c *Console) Flow() *workflow.Controller { return c.flow }

var errQuit = errors.New("quit")

// Run shows screens until the input ends, the user types exit or ctx is done.
func (c *Console) Run(ctx context.Context) error {
	c.loadImages(ctx)
	c.carousel = carousel.New(c.slides, c.opts.SlideInterval)
	c.carousel.OnChange(c.redrawSlide)
	defer c.carousel.Stop()

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		c.syncCarousel(ctx)

		var err error
		switch c.flow.Route() {
		case workflow.RouteLogin:
			err = c.loginScreen(ctx)
		case workflow.RouteRegister:
			err = c.registerScreen(ctx)
		case workflow.RouteFoods:
			err = c.menuScreen(ctx)
		case workflow.RouteCart:
			err = c.cartScreen()
		case workflow.RoutePayment:
			err = c.paymentScreen(ctx)
		case workflow.RouteOrders:
			err = c.ordersScreen(ctx)
		default:
			_, err = c.flow.Navigate(workflow.RouteRoot)
		}
		if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (c *Console) loadImages(ctx context.Context) {
	c.banner = banner.Item{Image: "/banner.png", Alt: "CookNest Banner", Kind: banner.KindBanner}
	c.slides = view.SlideImages(banner.Defaults)

	items, err := c.api.Banners(ctx, "")
	if err != nil {
		c.log.Warn("load banners, using defaults", "error", err)
		return
	}
	if slides := view.SlideImages(items); len(slides) > 0 {
		c.slides = slides
	}
	for _, it := range items {
		if it.Kind == banner.KindBanner {
			c.banner = it
			break
		}
	}
}

// syncCarousel runs the carousel only while the cart or the order history
// is shown.
func (c *Console) syncCarousel(ctx context.Context) {
	switch c.flow.Route() {
	case workflow.RouteCart, workflow.RouteOrders:
		if err := c.carousel.Start(ctx); err == nil {
			c.log.Debug("carousel started")
		}
	default:
		c.carousel.Stop()
	}
}

func (c *Console) read(label string) (string, error) {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	line := strings.TrimSpace(c.in.Text())
	if line == "exit" {
		return "", errQuit
	}
	return line, nil
}

func (c *Console) dispatch(ev workflow.Event) {
	if err := c.flow.Dispatch(ev); err != nil {
		c.message = err.Error()
		c.log.Debug("event rejected", "event", ev.String(), "error", err)
		return
	}
	c.message = ""
	c.log.Debug("route changed", "event", ev.String(), "route", string(c.flow.Route()))
}

func (c *Console) header() {
	u, _ := c.flow.User()
	fmt.Fprintln(c.out)
	view.Header(c.out, u.Name)
}

// framedCommand handles the header actions shared by every framed screen.
func (c *Console) framedCommand(cmd string) bool {
	switch cmd {
	case "h":
		c.dispatch(workflow.EventViewOrders)
	case "q":
		c.dispatch(workflow.EventLogout)
		c.foods, c.orders, c.method = nil, nil, ""
	default:
		return false
	}
	return true
}

func (c *Console) loginScreen(ctx context.Context) error {
	fmt.Fprintln(c.out)
	view.Banner(c.out, c.banner)
	view.Login(c.out, c.message)

	email, err := c.read("Email (r to register): ")
	if err != nil {
		return err
	}
	if email == "r" {
		c.dispatch(workflow.EventSwitchToRegister)
		return nil
	}
	password, err := c.read("Password: ")
	if err != nil {
		return err
	}

	in := form.Login{Email: email, Password: password}
	if errs := form.ValidateLogin(in); errs != nil {
		c.message = errs.First()
		return nil
	}

	profile, err := c.api.Login(ctx, in)
	if err != nil {
		c.message = failureMessage(err, msgLoginFailed)
		return nil
	}
	if err := c.flow.Login(profile); err != nil {
		c.message = err.Error()
		return nil
	}
	c.message = ""
	c.log.Info("logged in", "user_id", profile.ID)
	return nil
}

func (c *Console) registerScreen(ctx context.Context) error {
	fmt.Fprintln(c.out)
	view.Banner(c.out, c.banner)
	var errs form.Errors
	if c.message != "" {
		errs = form.Errors{form.FieldForm: c.message}
	}
	view.Register(c.out, errs, "")

	name, err := c.read("Name (b to go back): ")
	if err != nil {
		return err
	}
	if name == "b" {
		c.dispatch(workflow.EventBackToLogin)
		return nil
	}
	email, err := c.read("Email: ")
	if err != nil {
		return err
	}
	password, err := c.read("Password: ")
	if err != nil {
		return err
	}

	in := form.Registration{Name: name, Email: email, Password: password}
	if errs := form.ValidateRegistration(in); errs != nil {
		view.Register(c.out, errs, "")
		c.message = ""
		return nil
	}

	if _, err := c.api.Register(ctx, in); err != nil {
		c.message = failureMessage(err, msgRegisterFailed)
		return nil
	}
	c.message = ""
	view.Register(c.out, nil, msgRegistered)

	select {
	case <-time.After(c.opts.RedirectDelay):
	case <-ctx.Done():
		return nil
	}
	c.dispatch(workflow.EventBackToLogin)
	return nil
}

func (c *Console) menuScreen(ctx context.Context) error {
	if c.foods == nil {
		foods, err := c.api.Foods(ctx)
		if err != nil {
			c.message = failureMessage(err, "Could not load the menu")
		} else {
			c.foods = foods
		}
	}

	c.header()
	view.Menu(c.out, c.foods, c.flow.IsSelected)
	c.flash()

	cmd, err := c.read("Item number to select, c cart, h history, q logout: ")
	if err != nil {
		return err
	}
	if c.framedCommand(cmd) {
		return nil
	}
	if cmd == "c" {
		c.dispatch(workflow.EventGoToCart)
		return nil
	}
	n, convErr := strconv.Atoi(cmd)
	if convErr != nil || n < 1 || n > len(c.foods) {
		c.message = "Unknown command"
		return nil
	}
	if _, err := c.flow.ToggleFood(c.foods[n-1]); err != nil {
		c.message = err.Error()
	}
	return nil
}

func (c *Console) cartScreen() error {
	c.header()
	items := c.flow.Cart()
	if len(items) > 0 {
		c.slide()
	}
	view.Cart(c.out, items, c.flow.CartTotal())
	c.flash()

	cmd, err := c.read("p pay, m menu, n/b/s<N> slide, pause/play, h history, q logout: ")
	if err != nil {
		return err
	}
	if c.framedCommand(cmd) || c.slideCommand(cmd) {
		return nil
	}
	switch cmd {
	case "p":
		c.method = ""
		c.dispatch(workflow.EventProceedToPayment)
	case "m":
		c.dispatch(workflow.EventBackToMenu)
	default:
		c.message = "Unknown command"
	}
	return nil
}

func (c *Console) paymentScreen(ctx context.Context) error {
	c.header()
	view.Payment(c.out, c.flow.CartTotal(), c.method, c.message)
	c.message = ""

	cmd, err := c.read("Method number, y pay now, b back to cart, h history, q logout: ")
	if err != nil {
		return err
	}
	if c.framedCommand(cmd) {
		return nil
	}
	switch cmd {
	case "b":
		c.dispatch(workflow.EventBackToCart)
		return nil
	case "y":
		return c.pay(ctx)
	}
	n, convErr := strconv.Atoi(cmd)
	if convErr != nil || n < 1 || n > len(form.PaymentMethods) {
		c.message = "Unknown command"
		return nil
	}
	c.method = form.PaymentMethods[n-1]
	return nil
}

func (c *Console) pay(ctx context.Context) error {
	if errs := form.ValidatePayment(c.method); errs != nil {
		c.message = errs.First()
		return nil
	}
	u, ok := c.flow.User()
	if !ok {
		c.dispatch(workflow.EventLogout)
		return nil
	}

	fmt.Fprintln(c.out, "Processing...")
	id, err := c.api.PlaceOrder(ctx, u.Token, order.PlaceRequest{
		UserID:        u.ID,
		Foods:         c.flow.Cart(),
		Total:         c.flow.CartTotal().InexactFloat64(),
		PaymentMethod: c.method,
	})
	if err != nil {
		c.message = failureMessage(err, msgPaymentFailed)
		c.log.Warn("place order", "user_id", u.ID, "error", err)
		return nil
	}

	c.log.Info("order placed", "order_id", id, "user_id", u.ID)
	c.method = ""
	if err := c.flow.PaymentSucceeded(); err != nil {
		c.message = err.Error()
	}
	return nil
}

func (c *Console) ordersScreen(ctx context.Context) error {
	if c.loadedAt != workflow.RouteOrders {
		orders, err := c.api.Orders(ctx)
		if err != nil {
			c.message = failureMessage(err, "Could not load orders")
			orders = nil
		}
		c.orders = orders
		c.loadedAt = workflow.RouteOrders
	}

	c.header()
	c.slide()
	view.Orders(c.out, c.orders, c.opts.Location)
	c.flash()

	cmd, err := c.read("m menu, n/b/s<N> slide, pause/play, q logout: ")
	if err != nil {
		return err
	}
	if c.slideCommand(cmd) {
		return nil
	}
	if c.framedCommand(cmd) {
		if c.flow.Route() != workflow.RouteOrders {
			c.loadedAt = ""
		}
		return nil
	}
	if cmd == "m" {
		c.dispatch(workflow.EventBackToMenu)
		c.loadedAt = ""
		return nil
	}
	c.message = "Unknown command"
	return nil
}

func (c *Console) slide() {
	i, _ := c.carousel.Current()
	view.Slide(c.out, i, c.slides)
}

// redrawSlide runs on the carousel goroutine after an automatic advance.
func (c *Console) redrawSlide(i int, _ string) {
	var b strings.Builder
	b.WriteString("\n")
	view.Slide(&b, i, c.slides)
	fmt.Fprint(c.out, b.String())
}

// slideCommand handles n, b, s<N> (jump), pause and play.
func (c *Console) slideCommand(cmd string) bool {
	switch cmd {
	case "n":
		c.carousel.Next()
	case "b":
		c.carousel.Prev()
	case "pause":
		c.carousel.Pause()
	case "play":
		c.carousel.Resume()
	default:
		n, err := strconv.Atoi(strings.TrimPrefix(cmd, "s"))
		if !strings.HasPrefix(cmd, "s") || err != nil {
			return false
		}
		if err := c.carousel.GoTo(n - 1); err != nil {
			c.message = err.Error()
		}
	}
	return true
}

func (c *Console) flash() {
	if c.message != "" {
		fmt.Fprintf(c.out, "! %s\n", c.message)
		c.message = ""
	}
}

// syncWriter serializes screen output with slide redraws.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func failureMessage(err error, fallback string) string {
	if errors.Is(err, client.ErrNetwork) {
		return msgNetwork
	}
	return client.MessageOr(err, fallback)
}
