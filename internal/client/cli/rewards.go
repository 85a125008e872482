package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/mochamagic/internal/client/models"
	"github.com/dmitrijs2005/mochamagic/internal/client/services"
)

func (a *App) Rewards(ctx context.Context) error {
	view, err := a.rewardsService.View(ctx, a.rewardsAPI)
	if err != nil {
		return err
	}
	writeRewards(a.out, view)
	return nil
}

// Redeem spends points on a tier. Without a choice the affordable tiers are
// listed and the user is asked to pick one.
func (a *App) Redeem(ctx context.Context, choice string) error {
	if choice == "" && a.isLoggedIn(ctx) {
		balance, err := a.rewardsService.Balance(ctx)
		if err != nil {
			return err
		}
		tiers := services.AvailableTiers(balance)
		if len(tiers) > 0 {
			fmt.Fprintf(a.out, "You have %d points. Choose a reward:\n", balance)
			writeTiers(a.out, tiers)
			choice, err = GetSimpleText(a.reader, "Enter choice", a.out)
			if err != nil {
				return err
			}
		}
	}

	confirm := func(t models.Tier) bool {
		ok, err := Confirm(a.reader, fmt.Sprintf("Redeem %d points for %s?", t.Cost, t.Reward), a.out)
		return err == nil && ok
	}

	r, err := a.rewardsService.Redeem(ctx, choice, confirm)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Remaining balance: %d points\n", r.Remaining)
	return nil
}
