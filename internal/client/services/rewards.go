package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/dmitrijs2005/mochamagic/internal/client/models"
	"github.com/dmitrijs2005/mochamagic/internal/common"
	"github.com/google/uuid"
)

// Activity lines shown when a user has no ledger history yet.
const (
	ActivityWelcome  = "🎉 Welcome bonus: +50 points"
	ActivityPurchase = "☕ Purchase reward: +100 points"
	ActivityLoyalty  = "⭐ Loyal customer bonus: +50 points"
	ActivityNone     = "No activity yet. Start shopping to earn points!"
)

// maxActivity caps the ledger lines on the rewards view.
const maxActivity = 5

// RewardsView is everything the rewards page renders.
type RewardsView struct {
	LoggedIn bool                  `json:"logged_in"`
	Fullname string                `json:"fullname,omitempty"`
	Points   int                   `json:"points"`
	Percent  float64               `json:"percent"`
	Progress string                `json:"progress"`
	Tiers    []models.Tier         `json:"tiers"`
	Activity []string              `json:"activity"`
	Remote   *models.RemoteRewards `json:"remote,omitempty"`
}

type RewardsService interface {
	// Balance is the session's points, or 0 without a session.
	Balance(ctx context.Context) (int, error)
	// Redeem spends points on the tier named by choice. confirm is asked
	// before anything changes; declining aborts with ErrRedemptionCancelled.
	Redeem(ctx context.Context, choice string, confirm func(models.Tier) bool) (*models.Redemption, error)
	RecentActivity(ctx context.Context) ([]string, error)
	// LoadPoints asks api for the balance and falls back to the session.
	LoadPoints(ctx context.Context, api RewardsAPI) (int, *models.RemoteRewards, error)
	// View assembles the rewards page. api may be nil.
	View(ctx context.Context, api RewardsAPI) (*RewardsView, error)
}

type rewardsService struct {
	d    Deps
	auth AuthService
}

func NewRewardsService(d Deps, auth AuthService) RewardsService {
	return &rewardsService{d: d.withDefaults(), auth: auth}
}

// AvailableTiers lists the tiers affordable with balance, cheapest first.
func AvailableTiers(balance int) []models.Tier {
	var out []models.Tier
	for _, t := range models.Tiers() {
		if t.Cost <= balance {
			out = append(out, t)
		}
	}
	return out
}

// Progress returns the share of the goal reached, capped at 100, and the
// "points/goal" label.
func Progress(points int) (float64, string) {
	pct := math.Min(float64(points)/models.GoalPoints*100, 100)
	return pct, fmt.Sprintf("%d/%d", points, models.GoalPoints)
}

// DerivedActivity guesses activity lines from the balance and account age.
func DerivedActivity(s models.Session, now time.Time) []string {
	var lines []string
	isNew := s.IsNew(now)

	if isNew {
		lines = append(lines, ActivityWelcome)
	}
	if s.Rewards >= 100 && !isNew {
		lines = append(lines, ActivityPurchase)
	}
	if s.Rewards >= 250 {
		lines = append(lines, ActivityLoyalty)
	}
	if len(lines) == 0 {
		lines = append(lines, ActivityNone)
	}
	return lines
}

// FormatLedgerEntry renders one ledger entry as an activity line.
func FormatLedgerEntry(e models.LedgerEntry) string {
	switch e.Kind {
	case models.LedgerRedeem:
		return fmt.Sprintf("🎁 %s: -%d points", e.Description, e.Points)
	case models.LedgerDeduct:
		return fmt.Sprintf("↩️ %s: -%d points", e.Description, e.Points)
	}
	return fmt.Sprintf("☕ %s: +%d points", e.Description, e.Points)
}

func (r *rewardsService) Balance(ctx context.Context) (int, error) {
	s, err := r.auth.CurrentSession(ctx)
	if err != nil || s == nil {
		return 0, err
	}
	return s.Rewards, nil
}

func (r *rewardsService) fail(err error) error {
	r.d.Notifier.Error(bannerText(err))
	return err
}

func (r *rewardsService) Redeem(ctx context.Context, choice string, confirm func(models.Tier) bool) (*models.Redemption, error) {
	s, err := r.auth.CurrentSession(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		r.d.Notifier.Error("Please login to redeem points!")
		r.d.Nav.Navigate(PageLogin, 0)
		return nil, common.ErrNotLoggedIn
	}

	balance := s.Rewards
	if balance < models.MinRedeemPoints {
		return nil, r.fail(common.ErrInsufficientPoints)
	}

	tier, ok := models.TierByChoice(choice)
	if !ok || tier.Cost > balance {
		return nil, r.fail(common.ErrInvalidTier)
	}

	if confirm != nil && !confirm(tier) {
		return nil, common.ErrRedemptionCancelled
	}

	remaining := balance - tier.Cost
	if err := saveBalance(ctx, r.d, s, remaining); err != nil {
		return nil, err
	}

	entry := models.LedgerEntry{
		ID:          uuid.NewString(),
		UserID:      s.ID,
		Kind:        models.LedgerRedeem,
		Points:      tier.Cost,
		Description: "Redeemed " + tier.Reward,
		Code:        tier.Code,
		CreatedAt:   r.d.Now().UTC(),
	}
	if err := r.d.Ledger.Append(ctx, entry); err != nil {
		restoreBalance(ctx, r.d, s, balance)
		return nil, err
	}

	r.d.Log.Info(ctx, "points redeemed", "user_id", s.ID, "code", tier.Code, "remaining", remaining)
	r.d.Notifier.Success(fmt.Sprintf("Congratulations! Your discount code: %s\n\nShow this code at checkout!", tier.Code))
	r.d.Nav.Navigate(PageRewards, r.d.Delays.RedeemReload)

	return &models.Redemption{Tier: tier, Code: tier.Code, Remaining: remaining}, nil
}

func (r *rewardsService) RecentActivity(ctx context.Context) ([]string, error) {
	s, err := r.auth.CurrentSession(ctx)
	if err != nil || s == nil {
		return nil, err
	}

	entries, err := r.d.Ledger.ForUser(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return DerivedActivity(*s, r.d.Now()), nil
	}

	lines := make([]string, 0, min(len(entries), maxActivity))
	for _, e := range entries[:min(len(entries), maxActivity)] {
		lines = append(lines, FormatLedgerEntry(e))
	}
	return lines, nil
}

func (r *rewardsService) LoadPoints(ctx context.Context, api RewardsAPI) (int, *models.RemoteRewards, error) {
	s, err := r.auth.CurrentSession(ctx)
	if err != nil || s == nil {
		return 0, nil, err
	}
	if api == nil {
		return s.Rewards, nil, nil
	}

	remote, err := api.GetRewards(ctx, s.Token)
	if err != nil {
		r.d.Log.Error(ctx, "error loading rewards", "error", err)
		return s.Rewards, nil, nil
	}
	if remote.RewardPoints != 0 {
		return remote.RewardPoints, remote, nil
	}
	return s.Rewards, remote, nil
}

func (r *rewardsService) View(ctx context.Context, api RewardsAPI) (*RewardsView, error) {
	s, err := r.auth.CurrentSession(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		pct, text := Progress(0)
		return &RewardsView{Percent: pct, Progress: text, Tiers: models.Tiers()}, nil
	}

	points, remote, err := r.LoadPoints(ctx, api)
	if err != nil {
		return nil, err
	}
	activity, err := r.RecentActivity(ctx)
	if err != nil {
		return nil, err
	}

	pct, text := Progress(points)
	return &RewardsView{
		LoggedIn: true,
		Fullname: s.Fullname,
		Points:   points,
		Percent:  pct,
		Progress: text,
		Tiers:    AvailableTiers(points),
		Activity: activity,
		Remote:   remote,
	}, nil
}

// saveBalance writes balance to the account (matched by id) and the session.
func saveBalance(ctx context.Context, d Deps, s *models.Session, balance int) error {
	list, err := d.Users.ListUsers(ctx)
	if err != nil {
		return err
	}
	if idx := indexByID(list, s.ID); idx >= 0 {
		list[idx].Rewards = balance
		if err := d.Users.SaveUsers(ctx, list); err != nil {
			return err
		}
	} else {
		d.Log.Warn(ctx, "session user missing from account list", "user_id", s.ID)
	}

	s.Rewards = balance
	return d.Users.SetSession(ctx, *s)
}

// restoreBalance puts back the balance read before a write sequence that
// failed part way.
func restoreBalance(ctx context.Context, d Deps, s *models.Session, balance int) {
	if err := saveBalance(ctx, d, s, balance); err != nil {
		d.Log.Error(ctx, "failed to restore balance", "user_id", s.ID, "error", err)
	}
}
