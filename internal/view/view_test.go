package view

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/wichananm65/cooknest/internal/banner"
	"github.com/wichananm65/cooknest/internal/form"
	"github.com/wichananm65/cooknest/internal/menu"
	"github.com/wichananm65/cooknest/internal/order"
)

var (
	pizza = menu.Food{ID: 5, Name: "Pizza", Price: 200, Category: "Mains"}
	soda  = menu.Food{ID: 6, Name: "Soda", Price: 50, Category: "Drinks"}
)

func TestPrice(t *testing.T) {
	assert.Equal(t, "₹200", Price(200))
	assert.Equal(t, "₹12.5", Price(12.5))
	assert.Equal(t, "₹0.3", Amount(decimal.NewFromFloat(0.1).Add(decimal.NewFromFloat(0.2))))
}

func TestHeader(t *testing.T) {
	var buf bytes.Buffer
	Header(&buf, "")
	assert.Contains(t, buf.String(), "CookNest | Guest |")

	buf.Reset()
	Header(&buf, "Asha")
	assert.Contains(t, buf.String(), "| Asha |")
}

func TestMenuMarksSelection(t *testing.T) {
	var buf bytes.Buffer
	Menu(&buf, []menu.Food{pizza, soda}, func(id int) bool { return id == soda.ID })
	out := buf.String()
	assert.Contains(t, out, "[ ]  Pizza")
	assert.Contains(t, out, "[x]  Soda")
	assert.Contains(t, out, "₹50")
}

func TestCart(t *testing.T) {
	var buf bytes.Buffer
	Cart(&buf, nil, decimal.Zero)
	assert.Contains(t, buf.String(), "No items selected")
	assert.NotContains(t, buf.String(), "Total")

	buf.Reset()
	Cart(&buf, []menu.Food{pizza, soda}, decimal.NewFromInt(250))
	assert.Contains(t, buf.String(), "Order Summary")
	assert.Contains(t, buf.String(), "Total: ₹250")
}

func TestPayment(t *testing.T) {
	var buf bytes.Buffer
	Payment(&buf, decimal.NewFromInt(250), "UPI", "Please select a payment method")
	out := buf.String()
	assert.Contains(t, out, "Total Amount: ₹250")
	assert.Contains(t, out, "3) (*) UPI")
	assert.Contains(t, out, "1) ( ) Credit Card")
	assert.Contains(t, out, "! Please select a payment method")
}

func TestOrders(t *testing.T) {
	var buf bytes.Buffer
	Orders(&buf, nil, time.UTC)
	assert.Contains(t, buf.String(), "No orders yet")

	buf.Reset()
	Orders(&buf, []order.Order{{
		ID:            12,
		TotalAmount:   250,
		PaymentMethod: "UPI",
		CreatedAt:     time.Date(2026, 10, 17, 21, 5, 9, 0, time.UTC),
		Items:         []order.Item{{FoodName: "Pizza", FoodPrice: 200}, {FoodName: "Soda", FoodPrice: 50}},
	}}, time.UTC)
	out := buf.String()
	assert.Contains(t, out, "Order #12  ₹250")
	assert.Contains(t, out, "Pizza  ₹200")
	assert.Contains(t, out, "10/17/2026, 9:05:09 PM")
	assert.NotContains(t, out, "No orders yet")
}

func TestRegisterShowsErrorsInFieldOrder(t *testing.T) {
	var buf bytes.Buffer
	Register(&buf, form.Errors{form.FieldPassword: "Password is required", form.FieldName: "Name is required"}, "")
	out := buf.String()
	assert.Less(t, bytes.Index([]byte(out), []byte("Name is required")), bytes.Index([]byte(out), []byte("Password is required")))
}

func TestSlide(t *testing.T) {
	slides := SlideImages(banner.Defaults)
	assert.Equal(t, []string{"/4.png", "/5.png", "/6.png", "/7.png", "/8.png", "/9.png"}, slides)

	var buf bytes.Buffer
	Slide(&buf, 1, slides)
	assert.Equal(t, "< /5.png >  Slide 2  o * o o o o\n", buf.String())

	buf.Reset()
	Slide(&buf, 9, slides)
	assert.Empty(t, buf.String())
}
