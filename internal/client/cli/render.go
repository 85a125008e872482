package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/mochamagic/internal/client/models"
	"github.com/dmitrijs2005/mochamagic/internal/client/services"
)

const progressWidth = 20

func pkr(v float64) string {
	return fmt.Sprintf("PKR %.0f", v)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// progressBar draws pct (0..100) as a fixed-width bar.
func progressBar(pct float64) string {
	filled := int(pct / 100 * progressWidth)
	filled = max(0, min(filled, progressWidth))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", progressWidth-filled) + "]"
}

func writeCart(w io.Writer, items []models.CartItem, total float64) {
	for _, it := range items {
		fmt.Fprintf(w, "  %-22s x%-3d %s\n", it.Name, it.Quantity, pkr(it.Subtotal()))
	}
	fmt.Fprintf(w, "  %-27s %s\n", "Total", pkr(total))
}

func writeTiers(w io.Writer, tiers []models.Tier) {
	for _, t := range tiers {
		fmt.Fprintf(w, "  %s. %s (%d points)\n", t.Choice, t.Reward, t.Cost)
	}
}

func writeOrder(w io.Writer, o *models.Order) {
	fmt.Fprintf(w, "Order %s (%s, %s)\n", shortID(o.ID), o.PaymentMethod, o.Status)
	fmt.Fprintf(w, "  Subtotal: %s\n", pkr(o.Subtotal))
	if o.DeliveryFee > 0 {
		fmt.Fprintf(w, "  Delivery: %s\n", pkr(o.DeliveryFee))
	}
	if o.Discount > 0 {
		fmt.Fprintf(w, "  Discount: -%s (%d points)\n", pkr(o.Discount), o.PointsRedeemed)
	}
	fmt.Fprintf(w, "  Total:    %s\n", pkr(o.Total))
	fmt.Fprintf(w, "  Earned:   %d points\n", o.PointsEarned)
}

func writeRewards(w io.Writer, v *services.RewardsView) {
	if !v.LoggedIn {
		fmt.Fprintln(w, "Login to see your reward points. Rewards on offer:")
		writeTiers(w, v.Tiers)
		return
	}

	fmt.Fprintf(w, "%s, you have %d points\n", v.Fullname, v.Points)
	fmt.Fprintf(w, "%s %s\n", progressBar(v.Percent), v.Progress)
	if v.Remote != nil {
		fmt.Fprintf(w, "Transactions: %d\n", v.Remote.TransactionsCount)
	}

	if len(v.Tiers) > 0 {
		fmt.Fprintln(w, "Available rewards:")
		writeTiers(w, v.Tiers)
	} else {
		fmt.Fprintf(w, "Collect %d points to unlock rewards.\n", models.MinRedeemPoints)
	}

	fmt.Fprintln(w, "Recent activity:")
	for _, line := range v.Activity {
		fmt.Fprintln(w, "  "+line)
	}
}
