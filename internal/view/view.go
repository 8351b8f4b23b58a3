// Package view renders the CookNest client screens as plain text.
package view

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wichananm65/cooknest/internal/banner"
	"github.com/wichananm65/cooknest/internal/form"
	"github.com/wichananm65/cooknest/internal/menu"
	"github.com/wichananm65/cooknest/internal/order"
)

// TimeLayout matches the en-US locale string of a browser.
const TimeLayout = "1/2/2006, 3:04:05 PM"

// Price formats an amount in rupees without trailing zeros.
func Price(v float64) string {
	return "₹" + decimal.NewFromFloat(v).String()
}

func Amount(d decimal.Decimal) string {
	return "₹" + d.String()
}

// Banner draws the top image of the bare screens.
func Banner(w io.Writer, b banner.Item) {
	alt := b.Alt
	if alt == "" {
		alt = "CookNest Banner"
	}
	line := strings.Repeat("=", len(alt)+8)
	fmt.Fprintf(w, "%s\n=== %s ===\n%s\n", line, alt, line)
}

// Header is shown above every framed screen.
func Header(w io.Writer, name string) {
	if name == "" {
		name = "Guest"
	}
	fmt.Fprintf(w, "CookNest | %s | [h] order history  [q] logout\n", name)
	fmt.Fprintln(w, strings.Repeat("-", 48))
}

func Login(w io.Writer, errMsg string) {
	fmt.Fprintln(w, "Login")
	if errMsg != "" {
		fmt.Fprintf(w, "! %s\n", errMsg)
	}
}

// Register shows the field errors in form order, then the submit error or
// the success message.
func Register(w io.Writer, errs form.Errors, success string) {
	fmt.Fprintln(w, "Register")
	for _, key := range []string{form.FieldName, form.FieldEmail, form.FieldPassword, form.FieldForm} {
		if msg, ok := errs[key]; ok {
			fmt.Fprintf(w, "! %s\n", msg)
		}
	}
	if success != "" {
		fmt.Fprintln(w, success)
	}
}

// Menu lists the foods with a mark on the selected ones.
func Menu(w io.Writer, foods []menu.Food, selected func(id int) bool) {
	fmt.Fprintln(w, "Menu")
	if len(foods) == 0 {
		fmt.Fprintln(w, "The menu is empty")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, f := range foods {
		mark := " "
		if selected != nil && selected(f.ID) {
			mark = "x"
		}
		fmt.Fprintf(tw, "%d)\t[%s]\t%s\t%s\t%s\n", i+1, mark, f.Name, Price(f.Price), f.Category)
	}
	tw.Flush()
}

// Cart is the order summary before payment.
func Cart(w io.Writer, foods []menu.Food, total decimal.Decimal) {
	if len(foods) == 0 {
		fmt.Fprintln(w, "No items selected")
		fmt.Fprintln(w, "Please select food items from the menu.")
		return
	}
	fmt.Fprintln(w, "Order Summary")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, f := range foods {
		fmt.Fprintf(tw, "  %s\t%s\n", f.Name, Price(f.Price))
	}
	tw.Flush()
	fmt.Fprintf(w, "Total: %s\n", Amount(total))
}

func Payment(w io.Writer, total decimal.Decimal, chosen, errMsg string) {
	fmt.Fprintln(w, "Payment Gateway")
	fmt.Fprintf(w, "Total Amount: %s\n", Amount(total))
	if errMsg != "" {
		fmt.Fprintf(w, "! %s\n", errMsg)
	}
	for i, m := range form.PaymentMethods {
		mark := "( )"
		if m == chosen {
			mark = "(*)"
		}
		fmt.Fprintf(w, "%d) %s %s\n", i+1, mark, m)
	}
}

// Orders renders the history; timestamps are shown in loc.
func Orders(w io.Writer, orders []order.Order, loc *time.Location) {
	fmt.Fprintln(w, "My Orders")
	if len(orders) == 0 {
		fmt.Fprintln(w, "No orders yet")
		return
	}
	if loc == nil {
		loc = time.Local
	}
	for _, o := range orders {
		fmt.Fprintf(w, "Order #%d  %s\n", o.ID, Price(o.TotalAmount))
		fmt.Fprintf(w, "  %s\n", o.PaymentMethod)
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, it := range o.Items {
			fmt.Fprintf(tw, "    %s\t%s\n", it.FoodName, Price(it.FoodPrice))
		}
		tw.Flush()
		fmt.Fprintf(w, "  %s\n", o.CreatedAt.In(loc).Format(TimeLayout))
	}
}

// Slide draws the current carousel image and one dot per slide.
func Slide(w io.Writer, index int, slides []string) {
	if index < 0 || index >= len(slides) {
		return
	}
	dots := make([]string, len(slides))
	for i := range slides {
		dots[i] = "o"
		if i == index {
			dots[i] = "*"
		}
	}
	fmt.Fprintf(w, "< %s >  Slide %d  %s\n", slides[index], index+1, strings.Join(dots, " "))
}

// SlideImages returns the carousel images in display order.
func SlideImages(items []banner.Item) []string {
	sorted := make([]banner.Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Ord < sorted[j].Ord })
	out := make([]string, 0, len(sorted))
	for _, it := range sorted {
		if it.Kind == banner.KindCarousel {
			out = append(out, it.Image)
		}
	}
	return out
}
