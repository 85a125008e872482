package models

// MenuItem is a product that can be added to the cart.
type MenuItem struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

var menu = []MenuItem{
	{Name: "Espresso", Category: "Coffee", Price: 350},
	{Name: "Americano", Category: "Coffee", Price: 420},
	{Name: "Cappuccino", Category: "Coffee", Price: 550},
	{Name: "Caffe Latte", Category: "Coffee", Price: 580},
	{Name: "Mocha Magic", Category: "Signature", Price: 690},
	{Name: "Caramel Macchiato", Category: "Signature", Price: 650},
	{Name: "Iced Latte", Category: "Cold", Price: 600},
	{Name: "Cold Brew", Category: "Cold", Price: 620},
	{Name: "Chocolate Croissant", Category: "Bakery", Price: 380},
	{Name: "Blueberry Muffin", Category: "Bakery", Price: 320},
}

// Menu returns the product list in display order.
func Menu() []MenuItem {
	out := make([]MenuItem, len(menu))
	copy(out, menu)
	return out
}

// MenuItemAt returns the n-th item, counting from 1.
func MenuItemAt(n int) (MenuItem, bool) {
	if n < 1 || n > len(menu) {
		return MenuItem{}, false
	}
	return menu[n-1], true
}

// MenuItemByName finds an item by exact name.
func MenuItemByName(name string) (MenuItem, bool) {
	for _, m := range menu {
		if m.Name == name {
			return m, true
		}
	}
	return MenuItem{}, false
}
