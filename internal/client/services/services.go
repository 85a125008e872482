// Package services holds the storefront workflows: accounts and sessions,
// the cart, rewards redemption and checkout. Presentation layers call these
// and re-read state to render.
package services

import (
	"context"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/mochamagic/internal/client/models"
	"github.com/dmitrijs2005/mochamagic/internal/client/repositories/cart"
	"github.com/dmitrijs2005/mochamagic/internal/client/repositories/ledger"
	"github.com/dmitrijs2005/mochamagic/internal/client/repositories/orders"
	"github.com/dmitrijs2005/mochamagic/internal/client/repositories/users"
	"github.com/dmitrijs2005/mochamagic/internal/logging"
)

// Page names a view the presentation layer can switch to.
type Page string

const (
	PageHome    Page = "home"
	PageLogin   Page = "login"
	PageRewards Page = "rewards"
)

// Navigator switches views after a delay. A zero delay means now.
type Navigator interface {
	Navigate(page Page, after time.Duration)
}

// Notifier shows the transient banner. *notify.Notifier satisfies it.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// TokenIssuer signs and checks session tokens. *auth.Manager satisfies it.
type TokenIssuer interface {
	Issue(userID int64) (string, error)
	Verify(token string) (int64, error)
}

// RewardsAPI fetches the remote view of a user's points.
type RewardsAPI interface {
	GetRewards(ctx context.Context, token string) (*models.RemoteRewards, error)
}

// Delays before the view changes after a successful action.
type Delays struct {
	Signup       time.Duration
	Login        time.Duration
	Logout       time.Duration
	RedeemReload time.Duration
}

func DefaultDelays() Delays {
	return Delays{
		Signup:       2 * time.Second,
		Login:        1500 * time.Millisecond,
		Logout:       time.Second,
		RedeemReload: 3 * time.Second,
	}
}

// Deps wires the services to their stores and collaborators. Nil
// collaborators are replaced by no-op ones.
type Deps struct {
	Users  users.Repository
	Cart   cart.Repository
	Ledger ledger.Repository
	Orders orders.Repository

	Tokens   TokenIssuer
	Notifier Notifier
	Nav      Navigator
	Log      logging.Logger
	Delays   Delays

	// LoginByName also matches the login identifier against full names.
	LoginByName bool

	Now func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Notifier == nil {
		d.Notifier = nopNotifier{}
	}
	if d.Nav == nil {
		d.Nav = nopNavigator{}
	}
	if d.Log == nil {
		d.Log = logging.Nop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Delays == (Delays{}) {
		d.Delays = DefaultDelays()
	}
	return d
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}

type nopNavigator struct{}

func (nopNavigator) Navigate(Page, time.Duration) {}

// bannerText turns an error into a sentence for the banner.
func bannerText(err error) string {
	msg := err.Error()
	r, size := utf8.DecodeRuneInString(msg)
	if r == utf8.RuneError {
		return msg
	}
	return string(unicode.ToUpper(r)) + msg[size:]
}
