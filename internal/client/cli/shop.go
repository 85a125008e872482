package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/mochamagic/internal/client/models"
	"github.com/dmitrijs2005/mochamagic/internal/client/services"
)

// DeliveryFee is charged when the customer asks for delivery.
const DeliveryFee = 100

var (
	errUnknownItem = errors.New("no such item on the menu")
	errBadPoints   = errors.New("points must be a whole number")
)

// findMenuItem resolves a menu number or a case-insensitive name.
func findMenuItem(arg string) (models.MenuItem, bool) {
	if n, err := strconv.Atoi(arg); err == nil {
		return models.MenuItemAt(n)
	}
	for _, m := range models.Menu() {
		if strings.EqualFold(m.Name, arg) {
			return m, true
		}
	}
	return models.MenuItem{}, false
}

// findCartItem resolves a cart line by case-insensitive name.
func (a *App) findCartItem(ctx context.Context, name string) (string, bool, error) {
	items, err := a.cartService.Items(ctx)
	if err != nil {
		return "", false, err
	}
	for _, it := range items {
		if strings.EqualFold(it.Name, name) {
			return it.Name, true, nil
		}
	}
	return "", false, nil
}

func (a *App) Menu(ctx context.Context) error {
	fmt.Fprintln(a.out, "MochaMagic menu:")
	for i, m := range models.Menu() {
		fmt.Fprintf(a.out, "%3d. %-22s %-10s %s\n", i+1, m.Name, m.Category, pkr(m.Price))
	}
	return nil
}

func (a *App) Add(ctx context.Context, arg string) error {
	if arg == "" {
		return usageError("add <menu number|name>")
	}
	m, ok := findMenuItem(arg)
	if !ok {
		return fmt.Errorf("%w: %s", errUnknownItem, arg)
	}
	if err := a.cartService.Add(ctx, models.CartItem{Name: m.Name, Price: m.Price}); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s to your cart.\n", m.Name)
	return nil
}

func (a *App) Remove(ctx context.Context, name string) error {
	if name == "" {
		return usageError("remove <name>")
	}
	found, ok, err := a.findCartItem(ctx, name)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(a.out, "%s is not in your cart.\n", name)
		return nil
	}
	if err := a.cartService.Remove(ctx, found); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Removed %s.\n", found)
	return nil
}

// Qty sets a line's quantity; args are the item name followed by the count.
func (a *App) Qty(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usageError("qty <name> <quantity>")
	}
	qty, err := strconv.Atoi(args[len(args)-1])
	if err != nil {
		return usageError("qty <name> <quantity>")
	}
	name := strings.Join(args[:len(args)-1], " ")

	found, ok, err := a.findCartItem(ctx, name)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(a.out, "%s is not in your cart.\n", name)
		return nil
	}
	return a.cartService.UpdateQuantity(ctx, found, qty)
}

func (a *App) Cart(ctx context.Context) error {
	items, err := a.cartService.Items(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "Your cart is empty.")
		return nil
	}
	total, err := a.cartService.TotalPrice(ctx)
	if err != nil {
		return err
	}
	writeCart(a.out, items, total)
	return nil
}

func (a *App) Clear(ctx context.Context) error {
	if err := a.cartService.Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Cart cleared.")
	return nil
}

var paymentChoices = map[string]models.PaymentMethod{
	"1": models.PaymentCreditCard,
	"2": models.PaymentCash,
	"3": models.PaymentOnline,
}

// Checkout asks for payment, delivery and points, then places the order.
// Without a session or with an empty cart the service reports the problem.
func (a *App) Checkout(ctx context.Context) error {
	s, err := a.authService.CurrentSession(ctx)
	if err != nil {
		return err
	}
	items, err := a.cartService.Items(ctx)
	if err != nil {
		return err
	}
	if s == nil || len(items) == 0 {
		_, err := a.checkoutService.Checkout(ctx, services.CheckoutRequest{})
		return err
	}

	total, err := a.cartService.TotalPrice(ctx)
	if err != nil {
		return err
	}
	writeCart(a.out, items, total)

	choice, err := GetSimpleText(a.reader, "Payment method: 1) Credit card  2) Cash  3) Online", a.out)
	if err != nil {
		return err
	}
	req := services.CheckoutRequest{PaymentMethod: paymentChoices[choice]}

	deliver, err := Confirm(a.reader, fmt.Sprintf("Deliver to %s? (+%s)", deliveryAddress(s), pkr(DeliveryFee)), a.out)
	if err != nil {
		return err
	}
	if deliver {
		req.DeliveryFee = DeliveryFee
	}

	if s.Rewards >= models.MinRedeemPoints {
		answer, err := GetSimpleText(a.reader, fmt.Sprintf("You have %d points. Points to redeem (blank for none)", s.Rewards), a.out)
		if err != nil {
			return err
		}
		if answer != "" {
			n, err := strconv.Atoi(answer)
			if err != nil {
				return errBadPoints
			}
			req.PointsToRedeem = n
		}
	}

	order, err := a.checkoutService.Checkout(ctx, req)
	if err != nil {
		return err
	}
	writeOrder(a.out, order)
	return nil
}

func deliveryAddress(s *models.Session) string {
	if s.Address == "" {
		return s.City
	}
	return s.Address + ", " + s.City
}

func (a *App) Orders(ctx context.Context) error {
	list, err := a.checkoutService.Orders(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No orders yet.")
		return nil
	}
	for _, o := range list {
		fmt.Fprintf(a.out, "%s  %s  %-10s %-8s %s  +%d pts\n",
			shortID(o.ID), o.CreatedAt.Local().Format("2006-01-02 15:04"), o.PaymentMethod, o.Status, pkr(o.Total), o.PointsEarned)
	}
	return nil
}

// Order prints one order. id may be the short id shown by orders.
func (a *App) Order(ctx context.Context, id string) error {
	if id == "" {
		return usageError("order <id>")
	}
	o, err := a.checkoutService.Order(ctx, id)
	if err != nil {
		return err
	}
	writeOrder(a.out, o)
	for _, it := range o.Items {
		fmt.Fprintf(a.out, "    %d x %s\n", it.Quantity, it.Name)
	}
	return nil
}

func (a *App) Cancel(ctx context.Context, id string) error {
	if id == "" {
		return usageError("cancel <id>")
	}
	o, err := a.checkoutService.Order(ctx, id)
	if err != nil {
		return err
	}
	ok, err := Confirm(a.reader, fmt.Sprintf("Cancel order %s (%s)?", shortID(o.ID), pkr(o.Total)), a.out)
	if err != nil || !ok {
		return err
	}
	_, err = a.checkoutService.Cancel(ctx, o.ID)
	return err
}
