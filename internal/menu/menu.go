package menu

// Food is one entry of the CookNest menu. Orders copy Name and Price into
// their line items, so later menu edits never touch past orders.
type Food struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category,omitempty"`
	Image    string  `json:"image,omitempty"`
}

// DefaultMenu seeds an empty food_items table and backs the dev reset
// endpoint when no body is sent.
var DefaultMenu = []Food{
	{Name: "Margherita Pizza", Price: 200, Category: "Mains", Image: "/foods/pizza.png"},
	{Name: "Paneer Butter Masala", Price: 240, Category: "Mains", Image: "/foods/paneer.png"},
	{Name: "Veg Biryani", Price: 180, Category: "Mains", Image: "/foods/biryani.png"},
	{Name: "Masala Dosa", Price: 120, Category: "Breakfast", Image: "/foods/dosa.png"},
	{Name: "Gulab Jamun", Price: 80, Category: "Desserts", Image: "/foods/gulab-jamun.png"},
	{Name: "Soda", Price: 50, Category: "Drinks", Image: "/foods/soda.png"},
}
