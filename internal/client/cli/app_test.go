package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/mochamagic/internal/client/config"
	"github.com/dmitrijs2005/mochamagic/internal/client/models"
	"github.com/dmitrijs2005/mochamagic/internal/client/repositories/users"
	"github.com/dmitrijs2005/mochamagic/internal/client/services"
	"github.com/dmitrijs2005/mochamagic/internal/logging"
	"github.com/dmitrijs2005/mochamagic/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	app    *App
	out    *bytes.Buffer
	users  *users.KVRepository
	sleeps []time.Duration
}

func newHarness(t *testing.T, lines ...string) *harness {
	t.Helper()
	stubTerminal(t, false)

	h := &harness{out: &bytes.Buffer{}}
	orig := sleepFn
	sleepFn = func(_ context.Context, d time.Duration) { h.sleeps = append(h.sleeps, d) }
	t.Cleanup(func() { sleepFn = orig })

	cfg := &config.Config{}
	cfg.LoadDefaults()

	kv := memory.New()
	h.users = users.NewKVRepository(kv, logging.Nop())
	input := strings.Join(lines, "\n")
	if input != "" {
		input += "\n"
	}
	h.app = newApp(cfg, logging.Nop(), kv, strings.NewReader(input), h.out)
	return h
}

// run executes one command the way the REPL does.
func (h *harness) run(ctx context.Context, cmd func(context.Context) error) string {
	h.out.Reset()
	h.app.finish(ctx, cmd(ctx))
	return h.out.String()
}

func (h *harness) seed(t *testing.T, rewards int) {
	t.Helper()
	require.NoError(t, h.users.SaveUsers(context.Background(), []models.User{{
		ID:       1,
		Fullname: "Ayesha Khan",
		Email:    "ayesha@example.com",
		Password: "secret1",
		City:     "Karachi",
		Rewards:  rewards,
	}}))
}

func (h *harness) login(t *testing.T, ctx context.Context) {
	t.Helper()
	out := h.run(ctx, h.app.Login)
	require.Contains(t, out, "✔ Login successful! Welcome back, Ayesha Khan!")
}

func TestApp_SignupThenLogin(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t,
		"Bilal Ahmed", "bilal@example.com", "secret1", "secret1",
		"bilal@example.com", "secret1",
	)

	out := h.run(ctx, h.app.Signup)
	assert.Contains(t, out, "✔ Account created successfully! Redirecting to login...")
	assert.Contains(t, out, "Type 'login' to sign in.")
	assert.Equal(t, "guest", h.app.status())

	out = h.run(ctx, h.app.Login)
	assert.Contains(t, out, "✔ Login successful! Welcome back, Bilal Ahmed!")
	assert.Contains(t, out, "Bilal Ahmed, you have 0 points")
	assert.Contains(t, out, services.ActivityWelcome)
	assert.NotContains(t, out, "Error:")

	assert.Equal(t, []time.Duration{2 * time.Second, 1500 * time.Millisecond}, h.sleeps)
	assert.Equal(t, "Bilal", h.app.status())
	assert.True(t, h.app.isLoggedIn(ctx))
}

func TestApp_SignupValidationShowsBannerOnly(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, "Bilal Ahmed", "bilal@example.com", "secret1", "secret2")

	out := h.run(ctx, h.app.Signup)
	assert.Contains(t, out, "✖ Passwords do not match")
	assert.NotContains(t, out, "Error:")
	assert.Empty(t, h.sleeps)
}

func TestApp_LoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, "ayesha@example.com", "nope")
	h.seed(t, 0)

	out := h.run(ctx, h.app.Login)
	assert.Contains(t, out, "✖ Incorrect password")
	assert.False(t, h.app.isLoggedIn(ctx))
}

func TestApp_CartCommands(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	out := h.run(ctx, func(ctx context.Context) error { return h.app.Add(ctx, "5") })
	assert.Contains(t, out, "Added Mocha Magic to your cart.")
	h.run(ctx, func(ctx context.Context) error { return h.app.Add(ctx, "cold brew") })
	assert.Equal(t, "guest | cart 2", h.app.status())

	out = h.run(ctx, func(ctx context.Context) error { return h.app.Add(ctx, "99") })
	assert.Contains(t, out, "Error: no such item on the menu: 99")

	out = h.run(ctx, func(ctx context.Context) error { return h.app.Add(ctx, "") })
	assert.Contains(t, out, "Usage: add <menu number|name>")

	h.run(ctx, func(ctx context.Context) error { return h.app.Qty(ctx, []string{"mocha", "magic", "3"}) })
	assert.Equal(t, "guest | cart 4", h.app.status())

	out = h.run(ctx, h.app.Cart)
	assert.Contains(t, out, "Mocha Magic")
	assert.Contains(t, out, "x3")
	assert.Contains(t, out, "PKR 2690")

	out = h.run(ctx, func(ctx context.Context) error { return h.app.Remove(ctx, "Cold Brew") })
	assert.Contains(t, out, "Removed Cold Brew.")
	out = h.run(ctx, func(ctx context.Context) error { return h.app.Remove(ctx, "Latte") })
	assert.Contains(t, out, "Latte is not in your cart.")

	h.run(ctx, h.app.Clear)
	assert.Equal(t, "guest", h.app.status())
	out = h.run(ctx, h.app.Cart)
	assert.Contains(t, out, "Your cart is empty.")
}

func TestApp_Checkout(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t,
		"ayesha@example.com", "secret1",
		"2", "y", "100",
	)
	h.seed(t, 340)
	h.login(t, ctx)

	h.run(ctx, func(ctx context.Context) error { return h.app.Add(ctx, "5") })
	h.run(ctx, func(ctx context.Context) error { return h.app.Add(ctx, "5") })

	out := h.run(ctx, h.app.Checkout)
	assert.Contains(t, out, "✔ Order placed successfully! You earned 14 points.")
	assert.Contains(t, out, "Total:    PKR 1380")
	assert.Contains(t, out, "Discount: -PKR 100 (100 points)")
	assert.Equal(t, "Ayesha", h.app.status())

	list, err := h.users.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 254, list[0].Rewards)

	out = h.run(ctx, h.app.Orders)
	assert.Contains(t, out, "Cash")
	assert.Contains(t, out, "Pending")
	assert.Contains(t, out, "+14 pts")
}

func TestApp_CheckoutEmptyCart(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, "ayesha@example.com", "secret1")
	h.seed(t, 0)
	h.login(t, ctx)

	out := h.run(ctx, h.app.Checkout)
	assert.Contains(t, out, "✖ Order must contain at least one item")
	assert.NotContains(t, out, "Error:")
}

func TestApp_CheckoutLoggedOut(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	out := h.run(ctx, h.app.Checkout)
	assert.Contains(t, out, "✖ Please login to continue")
}

func TestApp_CancelOrder(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t,
		"ayesha@example.com", "secret1",
		"2", "n",
		"y",
	)
	h.seed(t, 0)
	h.login(t, ctx)

	h.run(ctx, func(ctx context.Context) error { return h.app.Add(ctx, "5") })
	out := h.run(ctx, h.app.Checkout)
	assert.Contains(t, out, "You earned 6 points.")

	list, err := h.app.checkoutService.Orders(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	id := shortID(list[0].ID)

	out = h.run(ctx, func(ctx context.Context) error { return h.app.Order(ctx, id) })
	assert.Contains(t, out, "Order "+id+" (Cash, Pending)")
	assert.Contains(t, out, "1 x Mocha Magic")

	out = h.run(ctx, func(ctx context.Context) error { return h.app.Cancel(ctx, id) })
	assert.Contains(t, out, "Cancel order "+id+" (PKR 690)? [y/N]: ")
	assert.Contains(t, out, "✔ Order cancelled successfully")

	accounts, err := h.users.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, accounts[0].Rewards)

	out = h.run(ctx, h.app.Orders)
	assert.Contains(t, out, "Cancelled")
}

func TestApp_CancelUnknownOrder(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, "ayesha@example.com", "secret1")
	h.seed(t, 0)
	h.login(t, ctx)

	out := h.run(ctx, func(ctx context.Context) error { return h.app.Cancel(ctx, "deadbeef") })
	assert.Contains(t, out, "✖ Order not found")
	assert.NotContains(t, out, "Error:")

	out = h.run(ctx, func(ctx context.Context) error { return h.app.Cancel(ctx, "") })
	assert.Contains(t, out, "Usage: cancel <id>")
}

func TestApp_Reset(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, "n", "y")
	h.seed(t, 0)
	h.run(ctx, func(ctx context.Context) error { return h.app.Add(ctx, "5") })

	out := h.run(ctx, h.app.Reset)
	assert.Contains(t, out, "Erase 2 stored records (mochamagic_cart, mochamagic_users)?")
	assert.NotContains(t, out, "erased")
	assert.Equal(t, "guest | cart 1", h.app.status())

	out = h.run(ctx, h.app.Reset)
	assert.Contains(t, out, "All storefront data erased.")
	assert.Contains(t, out, "MochaMagic menu:")
	assert.Equal(t, "guest", h.app.status())

	all, err := h.app.store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	out = h.run(ctx, h.app.Reset)
	assert.Contains(t, out, "Nothing is stored.")
}

func TestApp_Redeem(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t,
		"ayesha@example.com", "secret1",
		"2", "y",
	)
	h.seed(t, 340)
	h.login(t, ctx)
	h.sleeps = nil

	out := h.run(ctx, func(ctx context.Context) error { return h.app.Redeem(ctx, "") })
	assert.Contains(t, out, "You have 340 points. Choose a reward:")
	assert.Contains(t, out, "✔ Congratulations! Your discount code: UPGRADE")
	assert.Contains(t, out, "Remaining balance: 90 points")
	assert.Contains(t, out, "Ayesha Khan, you have 90 points")
	assert.Equal(t, []time.Duration{3 * time.Second}, h.sleeps)
}

func TestApp_RedeemCancelled(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t,
		"ayesha@example.com", "secret1",
		"n",
	)
	h.seed(t, 340)
	h.login(t, ctx)

	out := h.run(ctx, func(ctx context.Context) error { return h.app.Redeem(ctx, "1") })
	assert.Contains(t, out, "Redemption cancelled.")

	balance, err := h.app.rewardsService.Balance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 340, balance)
}

func TestApp_RedeemLoggedOut(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	out := h.run(ctx, func(ctx context.Context) error { return h.app.Redeem(ctx, "") })
	assert.Contains(t, out, "✖ Please login to redeem points!")
	assert.Contains(t, out, "Type 'login' to sign in.")
	assert.Empty(t, h.sleeps)
}

func TestApp_RewardsLoggedOut(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	out := h.run(ctx, h.app.Rewards)
	assert.Contains(t, out, "Login to see your reward points.")
	assert.Contains(t, out, "3. Free drink (500 points)")
}

func TestApp_Profile(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t,
		"ayesha@example.com", "secret1",
		"y", "", "0300-1234567", "12 Clifton Road", "", "75600",
	)
	h.seed(t, 0)
	h.login(t, ctx)

	out := h.run(ctx, h.app.Profile)
	assert.Contains(t, out, "Email:    ayesha@example.com")
	assert.Contains(t, out, "✔ Profile updated")

	list, err := h.users.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ayesha Khan", list[0].Fullname)
	assert.Equal(t, "0300-1234567", list[0].Phone)
	assert.Equal(t, "12 Clifton Road", list[0].Address)
	assert.Equal(t, "Karachi", list[0].City)
	assert.Equal(t, "75600", list[0].PostalCode)
}

func TestApp_ProfileLoggedOut(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	out := h.run(ctx, h.app.Profile)
	assert.Contains(t, out, "✖ Please login to continue")
}

func TestApp_LogoutShowsMenu(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, "ayesha@example.com", "secret1")
	h.seed(t, 0)
	h.login(t, ctx)
	h.sleeps = nil

	out := h.run(ctx, h.app.Logout)
	assert.Contains(t, out, "✔ Logged out successfully")
	assert.Contains(t, out, "MochaMagic menu:")
	assert.Equal(t, []time.Duration{time.Second}, h.sleeps)
	assert.Equal(t, "guest", h.app.status())
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "[--------------------]", progressBar(0))
	assert.Equal(t, "[##########----------]", progressBar(50))
	assert.Equal(t, "[####################]", progressBar(100))
	assert.Equal(t, "[####################]", progressBar(150))
}
