package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/mochamagic/internal/client/models"
	"github.com/dmitrijs2005/mochamagic/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotals(t *testing.T) {
	items := []models.CartItem{{Name: "A", Price: 550, Quantity: 2}, {Name: "B", Price: 320, Quantity: 1}}

	tests := []struct {
		name     string
		fee      float64
		points   int
		total    float64
		earned   int
		subtotal float64
	}{
		{"plain", 0, 0, 1420, 14, 1420},
		{"with delivery", 150, 0, 1570, 15, 1420},
		{"with discount", 150, 200, 1370, 15, 1420},
		{"discount larger than bill", 0, 2000, 0, 20, 1420},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(items, tt.fee, tt.points)
			assert.InDelta(t, tt.subtotal, got.Subtotal, 1e-9)
			assert.InDelta(t, tt.total, got.Total, 1e-9)
			assert.InDelta(t, float64(tt.points), got.Discount, 1e-9)
			assert.Equal(t, tt.earned, got.PointsEarned)
		})
	}
}

func TestCheckout_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("not logged in", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.checkout.Checkout(ctx, CheckoutRequest{PaymentMethod: models.PaymentCash})
		assert.ErrorIs(t, err, common.ErrNotLoggedIn)
	})

	tests := []struct {
		name   string
		points int
		fill   bool
		req    CheckoutRequest
		want   error
	}{
		{"empty cart", 0, false, CheckoutRequest{PaymentMethod: models.PaymentCash}, common.ErrEmptyCart},
		{"bad payment", 0, true, CheckoutRequest{PaymentMethod: "Barter"}, common.ErrInvalidPaymentMethod},
		{"negative fee", 0, true, CheckoutRequest{PaymentMethod: models.PaymentCash, DeliveryFee: -1}, common.ErrInvalidDeliveryFee},
		{"under minimum", 500, true, CheckoutRequest{PaymentMethod: models.PaymentCash, PointsToRedeem: 50}, common.ErrMinimumRedemption},
		{"over balance", 150, true, CheckoutRequest{PaymentMethod: models.PaymentCash, PointsToRedeem: 200}, common.ErrNotEnoughPoints},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.loginAs(t, 1, tt.points)
			if tt.fill {
				require.NoError(t, f.cart.Add(ctx, latte))
			}

			_, err := f.checkout.Checkout(ctx, tt.req)
			require.ErrorIs(t, err, tt.want)
			assert.False(t, f.notifier.last().ok)
			assert.Equal(t, tt.points, f.storedUser(t, 1).Rewards)

			list, err := f.deps.Orders.ForUser(ctx, 1)
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}

func TestCheckout_CashWithRedemption(t *testing.T) {
	f := newFixture(t)
	f.loginAs(t, 1, 250)
	ctx := context.Background()

	require.NoError(t, f.cart.Add(ctx, latte))
	require.NoError(t, f.cart.Add(ctx, latte))
	require.NoError(t, f.cart.Add(ctx, mocha))

	o, err := f.checkout.Checkout(ctx, CheckoutRequest{
		PaymentMethod:  models.PaymentCash,
		DeliveryFee:    100,
		PointsToRedeem: 200,
	})
	require.NoError(t, err)

	// 2*580 + 690 + 100 - 200
	assert.InDelta(t, 1750, o.Total, 1e-9)
	assert.InDelta(t, 1850, o.Subtotal, 1e-9)
	assert.Equal(t, 19, o.PointsEarned)
	assert.Equal(t, 200, o.PointsRedeemed)
	assert.Equal(t, models.OrderPending, o.Status)
	assert.Len(t, o.Items, 2)

	want := 250 - 200 + 19
	assert.Equal(t, want, f.storedUser(t, 1).Rewards)
	bal, err := f.rewards.Balance(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, bal)

	entries, err := f.deps.Ledger.ForUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, models.LedgerEarn, entries[0].Kind)
	assert.Equal(t, 19, entries[0].Points)
	assert.Equal(t, models.LedgerRedeem, entries[1].Kind)
	assert.Equal(t, 200, entries[1].Points)

	items, err := f.cart.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 0, f.badge[len(f.badge)-1])

	list, err := f.checkout.Orders(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, o.ID, list[0].ID)

	assert.Equal(t, banner{true, "Order placed successfully! You earned 19 points."}, f.notifier.last())
}

func TestCheckout_CardIsPaidAndSmallOrderEarnsNothing(t *testing.T) {
	f := newFixture(t)
	f.loginAs(t, 1, 0)
	ctx := context.Background()

	require.NoError(t, f.cart.Add(ctx, models.CartItem{Name: "Mint", Price: 60}))

	o, err := f.checkout.Checkout(ctx, CheckoutRequest{PaymentMethod: models.PaymentCreditCard})
	require.NoError(t, err)
	assert.Equal(t, models.OrderPaid, o.Status)
	assert.Zero(t, o.PointsEarned)

	entries, err := f.deps.Ledger.ForUser(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOrders_RequiresLogin(t *testing.T) {
	f := newFixture(t)
	_, err := f.checkout.Orders(context.Background())
	assert.ErrorIs(t, err, common.ErrNotLoggedIn)
}

func placeCashOrder(t *testing.T, f *fixture) *models.Order {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.cart.Add(ctx, latte))
	require.NoError(t, f.cart.Add(ctx, mocha))
	o, err := f.checkout.Checkout(ctx, CheckoutRequest{PaymentMethod: models.PaymentCash})
	require.NoError(t, err)
	return o
}

func TestCheckout_PaymentStatus(t *testing.T) {
	f := newFixture(t)
	f.loginAs(t, 1, 0)
	ctx := context.Background()

	cash := placeCashOrder(t, f)
	assert.Equal(t, models.PaymentPending, cash.PaymentStatus)

	require.NoError(t, f.cart.Add(ctx, latte))
	card, err := f.checkout.Checkout(ctx, CheckoutRequest{PaymentMethod: models.PaymentOnline})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentCompleted, card.PaymentStatus)
}

func TestCheckout_OrderFailureRestoresBalance(t *testing.T) {
	f := newFixture(t)
	f.loginAs(t, 1, 150)
	f.deps.Orders = failingOrders{Repository: f.deps.Orders, err: errBoom}
	f.rebuild()
	ctx := context.Background()

	require.NoError(t, f.cart.Add(ctx, mocha))
	_, err := f.checkout.Checkout(ctx, CheckoutRequest{PaymentMethod: models.PaymentCash, PointsToRedeem: 100})
	require.ErrorIs(t, err, errBoom)

	assert.Equal(t, 150, f.storedUser(t, 1).Rewards)
	items, err := f.cart.Items(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCheckout_LedgerFailureUndoesOrder(t *testing.T) {
	f := newFixture(t)
	f.loginAs(t, 1, 150)
	f.deps.Ledger = failingLedger{Repository: f.deps.Ledger, err: errBoom}
	f.rebuild()
	ctx := context.Background()

	require.NoError(t, f.cart.Add(ctx, mocha))
	_, err := f.checkout.Checkout(ctx, CheckoutRequest{PaymentMethod: models.PaymentCash, PointsToRedeem: 100})
	require.ErrorIs(t, err, errBoom)

	assert.Equal(t, 150, f.storedUser(t, 1).Rewards)
	bal, err := f.rewards.Balance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 150, bal)

	list, err := f.checkout.Orders(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestOrder_LookupByIDAndPrefix(t *testing.T) {
	f := newFixture(t)
	f.loginAs(t, 1, 0)
	ctx := context.Background()
	o := placeCashOrder(t, f)

	got, err := f.checkout.Order(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)

	got, err = f.checkout.Order(ctx, o.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)

	_, err = f.checkout.Order(ctx, "nope")
	require.ErrorIs(t, err, common.ErrOrderNotFound)
	assert.Equal(t, banner{false, "Order not found"}, f.notifier.last())

	_, err = f.checkout.Order(ctx, "")
	assert.ErrorIs(t, err, common.ErrOrderNotFound)
}

func TestMatchOrder_AmbiguousPrefix(t *testing.T) {
	list := []models.Order{{ID: "abc-1"}, {ID: "abc-2"}, {ID: "abd"}}

	_, ok := matchOrder(list, "abc")
	assert.False(t, ok)

	o, ok := matchOrder(list, "abc-2")
	require.True(t, ok)
	assert.Equal(t, "abc-2", o.ID)

	o, ok = matchOrder(list, "abd")
	require.True(t, ok)
	assert.Equal(t, "abd", o.ID)
}

func TestOrder_OtherUsersOrdersAreHidden(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.deps.Orders.Append(context.Background(), models.Order{ID: "foreign", UserID: 2}))
	f.loginAs(t, 1, 0)

	_, err := f.checkout.Order(context.Background(), "foreign")
	assert.ErrorIs(t, err, common.ErrOrderNotFound)
}

func TestCancel_PendingOrder(t *testing.T) {
	f := newFixture(t)
	f.loginAs(t, 1, 0)
	ctx := context.Background()

	// 580 + 690 earns 12 points
	o := placeCashOrder(t, f)
	require.Equal(t, 12, f.storedUser(t, 1).Rewards)

	got, err := f.checkout.Cancel(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, got.Status)
	assert.Equal(t, models.PaymentRefunded, got.PaymentStatus)
	assert.Equal(t, banner{true, "Order cancelled successfully"}, f.notifier.last())

	assert.Equal(t, 0, f.storedUser(t, 1).Rewards)
	bal, err := f.rewards.Balance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, bal)

	stored, err := f.checkout.Order(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, stored.Status)

	entries, err := f.deps.Ledger.ForUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, models.LedgerDeduct, entries[0].Kind)
	assert.Equal(t, 12, entries[0].Points)
	assert.Equal(t, "Points deducted due to order "+o.ID[:8]+" cancellation", entries[0].Description)
}

func TestCancel_DeductionFloorsAtZero(t *testing.T) {
	f := newFixture(t)
	f.loginAs(t, 1, 0)
	ctx := context.Background()
	o := placeCashOrder(t, f)

	// spend the earned points elsewhere first
	s, err := f.auth.CurrentSession(ctx)
	require.NoError(t, err)
	require.NoError(t, saveBalance(ctx, f.deps, s, 5))

	_, err = f.checkout.Cancel(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, f.storedUser(t, 1).Rewards)

	entries, err := f.deps.Ledger.ForUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 12, entries[0].Points)
}

func TestCancel_OnlyPending(t *testing.T) {
	f := newFixture(t)
	f.loginAs(t, 1, 0)
	ctx := context.Background()

	require.NoError(t, f.cart.Add(ctx, mocha))
	paid, err := f.checkout.Checkout(ctx, CheckoutRequest{PaymentMethod: models.PaymentCreditCard})
	require.NoError(t, err)

	_, err = f.checkout.Cancel(ctx, paid.ID)
	require.ErrorIs(t, err, common.ErrOrderNotCancellable)
	assert.Equal(t, banner{false, "Only pending orders can be cancelled"}, f.notifier.last())

	cash := placeCashOrder(t, f)
	_, err = f.checkout.Cancel(ctx, cash.ID)
	require.NoError(t, err)
	_, err = f.checkout.Cancel(ctx, cash.ID)
	assert.ErrorIs(t, err, common.ErrOrderNotCancellable)
}

func TestCancel_RequiresLogin(t *testing.T) {
	f := newFixture(t)
	_, err := f.checkout.Cancel(context.Background(), "anything")
	require.ErrorIs(t, err, common.ErrNotLoggedIn)
	assert.Equal(t, banner{false, "Please login to continue"}, f.notifier.last())
}

func TestCancel_LedgerFailureRestoresOrder(t *testing.T) {
	f := newFixture(t)
	f.loginAs(t, 1, 0)
	ctx := context.Background()
	o := placeCashOrder(t, f)

	f.deps.Ledger = failingLedger{Repository: f.deps.Ledger, err: errBoom}
	f.rebuild()

	_, err := f.checkout.Cancel(ctx, o.ID)
	require.ErrorIs(t, err, errBoom)

	assert.Equal(t, 12, f.storedUser(t, 1).Rewards)
	stored, err := f.checkout.Order(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, stored.Status)
	assert.Equal(t, models.PaymentPending, stored.PaymentStatus)
}
