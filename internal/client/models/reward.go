package models

// Reward program constants.
const (
	// MinRedeemPoints is the smallest balance that can be redeemed.
	MinRedeemPoints = 100
	// GoalPoints is the top of the progress bar.
	GoalPoints = 500
	// PointsPerPKR is how many PKR of spend earn one point.
	PointsPerPKR = 100
)

// Tier is a fixed redemption option.
type Tier struct {
	Choice string `json:"choice"`
	Cost   int    `json:"cost"`
	Reward string `json:"reward"`
	Code   string `json:"code"`
}

var tiers = []Tier{
	{Choice: "1", Cost: 100, Reward: "PKR 50 off", Code: "MOCHA50"},
	{Choice: "2", Cost: 250, Reward: "Free coffee upgrade", Code: "UPGRADE"},
	{Choice: "3", Cost: 500, Reward: "Free drink", Code: "FREEDRINK"},
}

// Tiers returns the catalogue ordered by cost.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}

// TierByChoice looks up a tier by its menu choice.
func TierByChoice(choice string) (Tier, bool) {
	for _, t := range tiers {
		if t.Choice == choice {
			return t, true
		}
	}
	return Tier{}, false
}

// Redemption is the outcome of a successful tier redemption.
type Redemption struct {
	Tier      Tier   `json:"tier"`
	Code      string `json:"code"`
	Remaining int    `json:"remaining"`
}

// RemoteRewards is what the rewards API reports for the session's user.
type RemoteRewards struct {
	RewardPoints      int `json:"reward_points"`
	TransactionsCount int `json:"transactions_count"`
}
