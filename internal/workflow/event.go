package workflow

import "fmt"

// Event is a user action that may move the client to another route.
type Event int

const (
	EventLogin Event = iota
	EventSwitchToRegister
	EventBackToLogin
	EventGoToCart
	EventProceedToPayment
	EventBackToMenu
	EventBackToCart
	EventPaymentSuccess
	EventViewOrders
	EventLogout
)

var eventNames = map[Event]string{
	EventLogin:            "login",
	EventSwitchToRegister: "switch-to-register",
	EventBackToLogin:      "back-to-login",
	EventGoToCart:         "go-to-cart",
	EventProceedToPayment: "proceed-to-payment",
	EventBackToMenu:       "back-to-menu",
	EventBackToCart:       "back-to-cart",
	EventPaymentSuccess:   "payment-success",
	EventViewOrders:       "view-orders",
	EventLogout:           "logout",
}

func (e Event) String() string {
	if s, ok := eventNames[e]; ok {
		return s
	}
	return fmt.Sprintf("event(%d)", int(e))
}

// transition lists the routes an event may fire from. anyFramed stands for
// every framed route.
type transition struct {
	from      []Route
	anyFramed bool
	to        Route
}

var transitions = map[Event]transition{
	EventLogin:            {from: []Route{RouteLogin}, to: RouteFoods},
	EventSwitchToRegister: {from: []Route{RouteLogin}, to: RouteRegister},
	EventBackToLogin:      {from: []Route{RouteRegister}, to: RouteLogin},
	EventGoToCart:         {from: []Route{RouteFoods}, to: RouteCart},
	EventProceedToPayment: {from: []Route{RouteCart}, to: RoutePayment},
	EventBackToMenu:       {from: []Route{RouteCart, RouteOrders}, to: RouteFoods},
	EventBackToCart:       {from: []Route{RoutePayment}, to: RouteCart},
	EventPaymentSuccess:   {from: []Route{RoutePayment}, to: RouteOrders},
	EventViewOrders:       {anyFramed: true, to: RouteOrders},
	EventLogout:           {anyFramed: true, to: RouteLogin},
}

func (t transition) allowedFrom(r Route) bool {
	if t.anyFramed {
		return r.Framed()
	}
	for _, f := range t.from {
		if f == r {
			return true
		}
	}
	return false
}
