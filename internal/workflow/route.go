package workflow

// Route is a client view address.
type Route string

const (
	RouteRoot     Route = "/"
	RouteLogin    Route = "/login"
	RouteRegister Route = "/register"
	RouteFoods    Route = "/foods"
	RouteCart     Route = "/cart"
	RoutePayment  Route = "/payment"
	RouteOrders   Route = "/orders"
)

// Layout tells the view layer whether to draw the header.
type Layout int

const (
	LayoutBare Layout = iota
	LayoutFramed
)

var layouts = map[Route]Layout{
	RouteRoot:     LayoutBare,
	RouteLogin:    LayoutBare,
	RouteRegister: LayoutBare,
	RouteFoods:    LayoutFramed,
	RouteCart:     LayoutFramed,
	RoutePayment:  LayoutFramed,
	RouteOrders:   LayoutFramed,
}

// Known reports whether r is one of the client routes.
func (r Route) Known() bool {
	_, ok := layouts[r]
	return ok
}

func (r Route) Layout() Layout {
	return layouts[r]
}

// Framed routes need a logged-in user.
func (r Route) Framed() bool {
	return layouts[r] == LayoutFramed
}
