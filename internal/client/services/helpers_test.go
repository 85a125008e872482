package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/mochamagic/internal/auth"
	"github.com/dmitrijs2005/mochamagic/internal/client/models"
	"github.com/dmitrijs2005/mochamagic/internal/client/repositories/cart"
	"github.com/dmitrijs2005/mochamagic/internal/client/repositories/ledger"
	"github.com/dmitrijs2005/mochamagic/internal/client/repositories/orders"
	"github.com/dmitrijs2005/mochamagic/internal/client/repositories/users"
	"github.com/dmitrijs2005/mochamagic/internal/logging"
	"github.com/dmitrijs2005/mochamagic/internal/storage/memory"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type banner struct {
	ok  bool
	msg string
}

type fakeNotifier struct {
	mu      sync.Mutex
	banners []banner
}

func (f *fakeNotifier) Success(msg string) { f.add(true, msg) }
func (f *fakeNotifier) Error(msg string)   { f.add(false, msg) }

func (f *fakeNotifier) add(ok bool, msg string) {
	f.mu.Lock()
	f.banners = append(f.banners, banner{ok, msg})
	f.mu.Unlock()
}

func (f *fakeNotifier) last() banner {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.banners) == 0 {
		return banner{}
	}
	return f.banners[len(f.banners)-1]
}

type navigation struct {
	page  Page
	after time.Duration
}

type fakeNav struct {
	moves []navigation
}

func (f *fakeNav) Navigate(p Page, after time.Duration) {
	f.moves = append(f.moves, navigation{p, after})
}

func (f *fakeNav) last() navigation {
	if len(f.moves) == 0 {
		return navigation{}
	}
	return f.moves[len(f.moves)-1]
}

type fakeRewardsAPI struct {
	resp      *models.RemoteRewards
	err       error
	lastToken string
}

func (f *fakeRewardsAPI) GetRewards(_ context.Context, token string) (*models.RemoteRewards, error) {
	f.lastToken = token
	return f.resp, f.err
}

type failingLedger struct {
	ledger.Repository
	err error
}

func (f failingLedger) Append(context.Context, ...models.LedgerEntry) error { return f.err }

type failingOrders struct {
	orders.Repository
	err error
}

func (f failingOrders) Append(context.Context, models.Order) error { return f.err }

// ---- fixture ----

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	kv       *memory.Store
	deps     Deps
	notifier *fakeNotifier
	nav      *fakeNav
	tokens   *auth.Manager
	badge    []int

	auth     AuthService
	cart     CartService
	rewards  RewardsService
	checkout CheckoutService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		kv:       memory.New(),
		notifier: &fakeNotifier{},
		nav:      &fakeNav{},
		tokens:   auth.NewManager([]byte("test-secret"), time.Hour),
	}
	log := logging.Nop()
	f.deps = Deps{
		Users:    users.NewKVRepository(f.kv, log),
		Cart:     cart.NewKVRepository(f.kv, log),
		Ledger:   ledger.NewKVRepository(f.kv, log),
		Orders:   orders.NewKVRepository(f.kv, log),
		Tokens:   f.tokens,
		Notifier: f.notifier,
		Nav:      f.nav,
		Log:      log,
		Now:      func() time.Time { return testNow },
	}
	f.rebuild()
	return f
}

func (f *fixture) rebuild() {
	f.auth = NewAuthService(f.deps)
	f.cart = NewCartService(f.deps, func(n int) { f.badge = append(f.badge, n) })
	f.rewards = NewRewardsService(f.deps, f.auth)
	f.checkout = NewCheckoutService(f.deps, f.auth, f.cart)
}

// seedUser stores an account directly, bypassing signup hashing cost.
func (f *fixture) seedUser(t *testing.T, u models.User) {
	t.Helper()
	ctx := context.Background()
	list, err := f.deps.Users.ListUsers(ctx)
	require.NoError(t, err)
	require.NoError(t, f.deps.Users.SaveUsers(ctx, append(list, u)))
}

// loginAs seeds a plaintext account with points and logs it in.
func (f *fixture) loginAs(t *testing.T, id int64, points int) *models.Session {
	t.Helper()
	f.seedUser(t, models.User{
		ID:        id,
		Fullname:  "Test User",
		Email:     "user@example.com",
		Password:  "secret1",
		Rewards:   points,
		CreatedAt: testNow.Add(-72 * time.Hour),
	})
	s, err := f.auth.Login(context.Background(), "user@example.com", []byte("secret1"))
	require.NoError(t, err)
	return s
}

func (f *fixture) storedUser(t *testing.T, id int64) models.User {
	t.Helper()
	list, err := f.deps.Users.ListUsers(context.Background())
	require.NoError(t, err)
	for _, u := range list {
		if u.ID == id {
			return u
		}
	}
	t.Fatalf("user %d not stored", id)
	return models.User{}
}

var errBoom = errors.New("boom")
