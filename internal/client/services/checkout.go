package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/dmitrijs2005/mochamagic/internal/client/models"
	"github.com/dmitrijs2005/mochamagic/internal/common"
	"github.com/google/uuid"
)

type CheckoutRequest struct {
	PaymentMethod  models.PaymentMethod `json:"payment_method"`
	DeliveryFee    float64              `json:"delivery_fee"`
	PointsToRedeem int                  `json:"points_to_redeem"`
}

// CheckoutService turns the cart into an order and manages placed orders.
type CheckoutService interface {
	Checkout(ctx context.Context, req CheckoutRequest) (*models.Order, error)
	Orders(ctx context.Context) ([]models.Order, error)
	// Order finds one of the session's orders by id or by a unique id prefix.
	Order(ctx context.Context, id string) (*models.Order, error)
	// Cancel cancels a pending order, refunds its payment and takes back the
	// points it was worth.
	Cancel(ctx context.Context, id string) (*models.Order, error)
}

type checkoutService struct {
	d    Deps
	auth AuthService
	cart CartService
}

func NewCheckoutService(d Deps, auth AuthService, cart CartService) CheckoutService {
	return &checkoutService{d: d.withDefaults(), auth: auth, cart: cart}
}

func (c *checkoutService) fail(err error) error {
	c.d.Notifier.Error(bannerText(err))
	return err
}

// Totals holds the money arithmetic of one checkout.
type Totals struct {
	Subtotal     float64
	Discount     float64
	Total        float64
	PointsEarned int
}

// ComputeTotals applies a points discount (1 point = PKR 1) and awards one
// point per PKR 100 of the pre-discount total.
func ComputeTotals(items []models.CartItem, deliveryFee float64, points int) Totals {
	sub := subtotal(items)
	discount := float64(points)
	total := math.Max(0, sub+deliveryFee-discount)
	return Totals{
		Subtotal:     sub,
		Discount:     discount,
		Total:        total,
		PointsEarned: int(math.Floor((total + discount) / models.PointsPerPKR)),
	}
}

func (c *checkoutService) Checkout(ctx context.Context, req CheckoutRequest) (*models.Order, error) {
	s, err := c.auth.CurrentSession(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, c.fail(common.ErrNotLoggedIn)
	}

	items, err := c.cart.Items(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, c.fail(common.ErrEmptyCart)
	}
	if !req.PaymentMethod.Valid() {
		return nil, c.fail(common.ErrInvalidPaymentMethod)
	}
	if req.DeliveryFee < 0 {
		return nil, c.fail(common.ErrInvalidDeliveryFee)
	}

	redeemed := 0
	if req.PointsToRedeem > 0 {
		if req.PointsToRedeem < models.MinRedeemPoints {
			return nil, c.fail(common.ErrMinimumRedemption)
		}
		if req.PointsToRedeem > s.Rewards {
			return nil, c.fail(fmt.Errorf("%w. Available: %d", common.ErrNotEnoughPoints, s.Rewards))
		}
		redeemed = req.PointsToRedeem
	}

	t := ComputeTotals(items, req.DeliveryFee, redeemed)
	now := c.d.Now().UTC()

	status, payment := models.OrderPaid, models.PaymentCompleted
	if req.PaymentMethod == models.PaymentCash {
		status, payment = models.OrderPending, models.PaymentPending
	}

	order := models.Order{
		ID:             uuid.NewString(),
		UserID:         s.ID,
		Items:          items,
		Subtotal:       t.Subtotal,
		DeliveryFee:    req.DeliveryFee,
		Discount:       t.Discount,
		Total:          t.Total,
		PointsEarned:   t.PointsEarned,
		PointsRedeemed: redeemed,
		PaymentMethod:  req.PaymentMethod,
		Status:         status,
		PaymentStatus:  payment,
		CreatedAt:      now,
	}

	var entries []models.LedgerEntry
	if redeemed > 0 {
		entries = append(entries, models.LedgerEntry{
			ID:          uuid.NewString(),
			UserID:      s.ID,
			Kind:        models.LedgerRedeem,
			Points:      redeemed,
			Description: "Redeemed points for discount on order",
			CreatedAt:   now,
		})
	}
	if t.PointsEarned > 0 {
		entries = append(entries, models.LedgerEntry{
			ID:          uuid.NewString(),
			UserID:      s.ID,
			Kind:        models.LedgerEarn,
			Points:      t.PointsEarned,
			Description: "Points earned from order " + shortOrderID(order.ID),
			CreatedAt:   now,
		})
	}

	prev := s.Rewards
	if err := saveBalance(ctx, c.d, s, prev-redeemed+t.PointsEarned); err != nil {
		return nil, err
	}
	if err := c.d.Orders.Append(ctx, order); err != nil {
		restoreBalance(ctx, c.d, s, prev)
		return nil, err
	}
	if err := c.d.Ledger.Append(ctx, entries...); err != nil {
		restoreBalance(ctx, c.d, s, prev)
		c.removeOrder(ctx, order.ID)
		return nil, err
	}
	if err := c.cart.Clear(ctx); err != nil {
		return nil, err
	}

	c.d.Log.Info(ctx, "order placed", "order_id", order.ID, "user_id", s.ID,
		"total", order.Total, "earned", order.PointsEarned, "redeemed", redeemed)
	c.d.Notifier.Success(fmt.Sprintf("Order placed successfully! You earned %d points.", order.PointsEarned))

	return &order, nil
}

func (c *checkoutService) Orders(ctx context.Context) ([]models.Order, error) {
	s, err := c.auth.CurrentSession(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, c.fail(common.ErrNotLoggedIn)
	}
	return c.d.Orders.ForUser(ctx, s.ID)
}

func (c *checkoutService) Order(ctx context.Context, id string) (*models.Order, error) {
	s, err := c.auth.CurrentSession(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, c.fail(common.ErrNotLoggedIn)
	}

	list, err := c.d.Orders.ForUser(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	o, ok := matchOrder(list, strings.TrimSpace(id))
	if !ok {
		return nil, c.fail(common.ErrOrderNotFound)
	}
	return o, nil
}

// matchOrder prefers an exact id and otherwise accepts a prefix shared by
// exactly one order.
func matchOrder(list []models.Order, id string) (*models.Order, bool) {
	if id == "" {
		return nil, false
	}
	var found *models.Order
	for i := range list {
		switch {
		case list[i].ID == id:
			return &list[i], true
		case strings.HasPrefix(list[i].ID, id):
			if found != nil {
				return nil, false
			}
			found = &list[i]
		}
	}
	return found, found != nil
}

func (c *checkoutService) Cancel(ctx context.Context, id string) (*models.Order, error) {
	o, err := c.Order(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Status != models.OrderPending {
		return nil, c.fail(common.ErrOrderNotCancellable)
	}

	s, err := c.auth.CurrentSession(ctx)
	if err != nil {
		return nil, err
	}

	before := *o
	o.Status = models.OrderCancelled
	o.PaymentStatus = models.PaymentRefunded
	if err := c.d.Orders.Update(ctx, *o); err != nil {
		return nil, err
	}

	deduct := int(math.Floor(o.Total / models.PointsPerPKR))
	if deduct > 0 {
		prev := s.Rewards
		if err := saveBalance(ctx, c.d, s, max(0, prev-deduct)); err != nil {
			c.restoreOrder(ctx, before)
			return nil, err
		}
		entry := models.LedgerEntry{
			ID:          uuid.NewString(),
			UserID:      s.ID,
			Kind:        models.LedgerDeduct,
			Points:      deduct,
			Description: "Points deducted due to order " + shortOrderID(o.ID) + " cancellation",
			CreatedAt:   c.d.Now().UTC(),
		}
		if err := c.d.Ledger.Append(ctx, entry); err != nil {
			restoreBalance(ctx, c.d, s, prev)
			c.restoreOrder(ctx, before)
			return nil, err
		}
	}

	c.d.Log.Info(ctx, "order cancelled", "order_id", o.ID, "user_id", s.ID, "deducted", deduct)
	c.d.Notifier.Success("Order cancelled successfully")

	return o, nil
}

func (c *checkoutService) removeOrder(ctx context.Context, id string) {
	if err := c.d.Orders.Remove(ctx, id); err != nil {
		c.d.Log.Error(ctx, "failed to remove order", "order_id", id, "error", err)
	}
}

func (c *checkoutService) restoreOrder(ctx context.Context, o models.Order) {
	if err := c.d.Orders.Update(ctx, o); err != nil {
		c.d.Log.Error(ctx, "failed to restore order", "order_id", o.ID, "error", err)
	}
}

func shortOrderID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
