// Package economy holds the pure rules of the star economy: rank tiers and
// the cosmetic catalog.
package economy

// Tier orders ranks from lowest to highest.
type Tier int

// Rank tiers.
const (
	TierWhite Tier = iota
	TierBronze
	TierSilver
	TierGold
	TierDiamond
)

// Rank describes one tier and the inclusive star threshold that unlocks it.
type Rank struct {
	Tier      Tier
	Name      string
	Icon      string
	Color     string
	Title     string
	Threshold int
}

var ranks = []Rank{
	{Tier: TierWhite, Name: "White", Icon: "⚪", Color: "#B0B0B0", Title: "New Recruit", Threshold: 0},
	{Tier: TierBronze, Name: "Bronze", Icon: "🥉", Color: "#CD7F32", Title: "Rookie Detective", Threshold: 10},
	{Tier: TierSilver, Name: "Silver", Icon: "🥈", Color: "#C0C0C0", Title: "Skilled Agent", Threshold: 30},
	{Tier: TierGold, Name: "Gold", Icon: "🥇", Color: "#E6B422", Title: "Expert Investigator", Threshold: 60},
	{Tier: TierDiamond, Name: "Diamond", Icon: "💎", Color: "#5CD6E6", Title: "The Ultimate Detective", Threshold: 100},
}

// Ranks returns all tiers in ascending order.
func Ranks() []Rank {
	out := make([]Rank, len(ranks))
	copy(out, ranks)
	return out
}

// RankOf returns the highest tier whose threshold is <= wallet.
func RankOf(wallet int) Rank {
	current := ranks[0]
	for _, r := range ranks[1:] {
		if wallet < r.Threshold {
			break
		}
		current = r
	}
	return current
}

// RankByName maps a stored rank name back to its tier. Unknown or empty
// names map to the lowest tier.
func RankByName(name string) Rank {
	for _, r := range ranks {
		if r.Name == name {
			return r
		}
	}
	return ranks[0]
}

// Progress reports how far a wallet is from the next tier.
type Progress struct {
	// Target is the next threshold, or the wallet itself once maxed.
	Target    int
	Percent   float64
	Remaining int
	Maxed     bool
}

// ProgressToNextTier computes the progress bar toward the next tier.
func ProgressToNextTier(wallet int) Progress {
	current := RankOf(wallet)
	if int(current.Tier) == len(ranks)-1 {
		return Progress{Target: wallet, Percent: 100, Maxed: true}
	}
	target := ranks[current.Tier+1].Threshold
	percent := float64(wallet) / float64(target) * 100
	if percent > 100 {
		percent = 100
	}
	return Progress{
		Target:    target,
		Percent:   percent,
		Remaining: target - wallet,
	}
}
