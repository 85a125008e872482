package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/mochamagic/internal/auth"
	"github.com/dmitrijs2005/mochamagic/internal/client/client"
	"github.com/dmitrijs2005/mochamagic/internal/client/config"
	"github.com/dmitrijs2005/mochamagic/internal/client/notify"
	"github.com/dmitrijs2005/mochamagic/internal/client/repositories/cart"
	"github.com/dmitrijs2005/mochamagic/internal/client/repositories/ledger"
	"github.com/dmitrijs2005/mochamagic/internal/client/repositories/orders"
	"github.com/dmitrijs2005/mochamagic/internal/client/repositories/users"
	"github.com/dmitrijs2005/mochamagic/internal/client/services"
	"github.com/dmitrijs2005/mochamagic/internal/common"
	"github.com/dmitrijs2005/mochamagic/internal/logging"
	"github.com/dmitrijs2005/mochamagic/internal/storage"
)

// sleepFn waits before a page change. Tests replace it to skip the delay.
var sleepFn = func(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

type navigation struct {
	page  services.Page
	after time.Duration
}

type App struct {
	config *config.Config
	log    logging.Logger
	store  storage.Storage
	api    client.Client

	authService     services.AuthService
	cartService     services.CartService
	rewardsService  services.RewardsService
	checkoutService services.CheckoutService
	rewardsAPI      services.RewardsAPI
	notifier        *notify.Notifier

	reader *bufio.Reader
	out    io.Writer

	user     string
	badge    int
	pending  *navigation
	bannered bool
}

// NewApp opens the configured store and, when an address is configured, a
// client for the rewards API.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	st, err := storage.Open(ctx, c.Storage)
	if err != nil {
		return nil, fmt.Errorf("error opening storage: %w", err)
	}

	a := newApp(c, log, st, os.Stdin, os.Stdout)

	if c.RewardsAPIAddr != "" {
		api, err := client.NewRewardsClient(c.RewardsAPIAddr, c.RewardsAPITimeout)
		if err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("error creating rewards client: %w", err)
		}
		a.api = api
		a.rewardsAPI = api
	}

	return a, nil
}

func newApp(c *config.Config, log logging.Logger, kv storage.Storage, in io.Reader, out io.Writer) *App {
	a := &App{config: c, log: log, store: kv, reader: bufio.NewReader(in), out: out}
	a.notifier = notify.New(c.BannerTTL, a.showBanner)

	d := services.Deps{
		Users:    users.NewKVRepository(kv, log),
		Cart:     cart.NewKVRepository(kv, log),
		Ledger:   ledger.NewKVRepository(kv, log),
		Orders:   orders.NewKVRepository(kv, log),
		Tokens:   auth.NewManager([]byte(c.SecretKey), c.TokenValidityDuration),
		Notifier: a.notifier,
		Nav:      a,
		Log:      log,
		Delays: services.Delays{
			Signup:       c.SignupDelay,
			Login:        c.LoginDelay,
			Logout:       c.LogoutDelay,
			RedeemReload: c.RedeemReloadDelay,
		},
		LoginByName: c.LoginByName,
	}

	a.authService = services.NewAuthService(d)
	a.cartService = services.NewCartService(d, a.setBadge)
	a.rewardsService = services.NewRewardsService(d, a.authService)
	a.checkoutService = services.NewCheckoutService(d, a.authService, a.cartService)
	return a
}

// Run prints the greeting and blocks in the REPL until the user exits or
// ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if a.api != nil {
		if err := a.api.Ping(ctx); err != nil {
			a.log.Warn(ctx, "rewards API unavailable, using local balance", "addr", a.config.RewardsAPIAddr, "error", err)
		}
	}

	a.refresh(ctx)
	fmt.Fprintln(a.out, "Welcome to MochaMagic! Type 'help' for the list of commands.")
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) Close() {
	if a.api != nil {
		_ = a.api.Close()
	}
	if a.store != nil {
		_ = a.store.Close()
	}
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	s, err := a.authService.CurrentSession(ctx)
	return err == nil && s != nil
}

// status is the prompt prefix: who is logged in and the cart badge.
func (a *App) status() string {
	name := a.user
	if name == "" {
		name = "guest"
	}
	if a.badge > 0 {
		return fmt.Sprintf("%s | cart %d", name, a.badge)
	}
	return name
}

func (a *App) setBadge(count int) { a.badge = count }

func (a *App) showBanner(b notify.Banner) {
	a.bannered = true
	mark := "✔"
	if b.Kind == notify.Error {
		mark = "✖"
	}
	fmt.Fprintf(a.out, "%s %s\n", mark, b.Message)
}

// Navigate queues a page change; finish carries it out after the command.
func (a *App) Navigate(page services.Page, after time.Duration) {
	a.pending = &navigation{page: page, after: after}
}

// refresh re-reads the session name and the cart badge for the prompt.
func (a *App) refresh(ctx context.Context) {
	a.user = ""
	if s, err := a.authService.CurrentSession(ctx); err == nil && s != nil {
		a.user = s.FirstName
		if a.user == "" {
			a.user = s.Fullname
		}
	}
	if err := a.cartService.RefreshBadge(ctx); err != nil {
		a.log.Warn(ctx, "failed to read cart", "error", err)
	}
}

// finish reports err unless a banner already did, then follows any queued
// page change.
func (a *App) finish(ctx context.Context, err error) {
	var ue usageError
	switch {
	case err == nil:
	case errors.As(err, &ue):
		fmt.Fprintln(a.out, "Usage:", string(ue))
	case errors.Is(err, common.ErrRedemptionCancelled):
		fmt.Fprintln(a.out, "Redemption cancelled.")
	case a.bannered:
	default:
		a.log.Error(ctx, "command failed", "error", err)
		fmt.Fprintln(a.out, "Error:", err)
	}
	a.bannered = false

	if nav := a.pending; nav != nil {
		a.pending = nil
		if nav.after > 0 {
			sleepFn(ctx, nav.after)
		}
		a.render(ctx, nav.page)
	}

	a.refresh(ctx)
}

func (a *App) render(ctx context.Context, page services.Page) {
	switch page {
	case services.PageHome:
		fmt.Fprintln(a.out)
		_ = a.Menu(ctx)
	case services.PageLogin:
		fmt.Fprintln(a.out, "Type 'login' to sign in.")
	case services.PageRewards:
		if err := a.Rewards(ctx); err != nil {
			a.log.Error(ctx, "failed to render rewards", "error", err)
		}
	}
}

// usageError carries the expected syntax of a command.
type usageError string

func (e usageError) Error() string { return "usage: " + string(e) }
