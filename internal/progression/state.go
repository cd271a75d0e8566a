// Package progression owns the player's persistent economy: the star
// wallet, owned cosmetics, the equipped avatar and the leaderboard. Every
// mutation goes through a named operation that computes all of its effects
// before committing any of them.
package progression

import (
	"fmt"
	"strings"
	"time"

	"github.com/verte-zerg/moneydetectives/internal/economy"
	"github.com/verte-zerg/moneydetectives/internal/leaderboard"
	"github.com/verte-zerg/moneydetectives/internal/model"
	"github.com/verte-zerg/moneydetectives/internal/round"
)

// AnonymousName is recorded for players who never entered a name.
const AnonymousName = "Anonymous"

// Outcome reports what selecting a store item did.
type Outcome int

// Select outcomes.
const (
	OutcomeEquipped Outcome = iota
	OutcomePurchased
	OutcomeUnaffordable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeEquipped:
		return "equipped"
	case OutcomePurchased:
		return "purchased"
	case OutcomeUnaffordable:
		return "unaffordable"
	default:
		return "unknown"
	}
}

// State is the in-memory progression model. The zero value is not usable;
// build one with NewState or FromSnapshot.
type State struct {
	wallet     int
	purchased  []string
	avatar     model.AvatarConfig
	board      leaderboard.Board
	playerName string
}

// NewState returns a fresh player with no stars and the default outfit.
func NewState() *State {
	return &State{avatar: model.DefaultAvatar()}
}

// Wallet returns the star balance.
func (s *State) Wallet() int {
	return s.wallet
}

// Rank returns the tier derived from the wallet.
func (s *State) Rank() economy.Rank {
	return economy.RankOf(s.wallet)
}

// Progress returns the progress toward the next tier.
func (s *State) Progress() economy.Progress {
	return economy.ProgressToNextTier(s.wallet)
}

// Avatar returns the equipped outfit.
func (s *State) Avatar() model.AvatarConfig {
	return s.avatar
}

// Purchased returns the owned item keys in purchase order.
func (s *State) Purchased() []string {
	out := make([]string, len(s.purchased))
	copy(out, s.purchased)
	return out
}

// Leaderboard returns the current board.
func (s *State) Leaderboard() leaderboard.Board {
	return s.board
}

// PlayerName returns the name entered by the player, possibly empty.
func (s *State) PlayerName() string {
	return s.playerName
}

// SetPlayerName records the player's name.
func (s *State) SetPlayerName(name string) {
	s.playerName = strings.TrimSpace(name)
}

// Owns reports whether item is free or already bought.
func (s *State) Owns(item model.StoreItem) bool {
	if item.Price == 0 {
		return true
	}
	key := item.Key()
	for _, k := range s.purchased {
		if k == key {
			return true
		}
	}
	return false
}

// Equipped reports whether item is worn right now.
func (s *State) Equipped(item model.StoreItem) bool {
	return s.avatar.Get(item.Category) == item.ID
}

// CanAfford reports whether the wallet covers the item's price.
func (s *State) CanAfford(item model.StoreItem) bool {
	return s.wallet >= item.Price
}

// Credit adds stars to the wallet.
func (s *State) Credit(stars int) error {
	if stars < 0 {
		return fmt.Errorf("credit must be non-negative, got %d", stars)
	}
	s.wallet += stars
	return nil
}

// Select equips an owned item, or buys and equips an affordable one.
// Unaffordable items leave the state untouched.
func (s *State) Select(item model.StoreItem) (Outcome, error) {
	found, err := economy.Lookup(item.Category, item.ID)
	if err != nil {
		return OutcomeUnaffordable, fmt.Errorf("select %s: %w", item.Key(), err)
	}
	item = found
	if s.Owns(item) {
		s.avatar = s.avatar.With(item.Category, item.ID)
		return OutcomeEquipped, nil
	}
	if !s.CanAfford(item) {
		return OutcomeUnaffordable, nil
	}

	wallet := s.wallet - item.Price
	purchased := append(s.Purchased(), item.Key())
	avatar := s.avatar.With(item.Category, item.ID)

	s.wallet = wallet
	s.purchased = purchased
	s.avatar = avatar
	return OutcomePurchased, nil
}

// CompleteSession credits a finished game's score and records it on the
// leaderboard with a snapshot of the current avatar and resulting rank.
func (s *State) CompleteSession(finalScore int, now time.Time) (model.LeaderboardEntry, error) {
	if finalScore < 0 || finalScore > round.TotalRounds {
		return model.LeaderboardEntry{}, fmt.Errorf("final score %d out of range [0, %d]", finalScore, round.TotalRounds)
	}
	wallet := s.wallet + finalScore
	name := s.playerName
	if name == "" {
		name = AnonymousName
	}
	entry := model.LeaderboardEntry{
		Name:     name,
		Score:    finalScore,
		PlayedAt: now,
		Avatar:   s.avatar,
		Rank:     economy.RankOf(wallet).Name,
	}
	board := s.board.Insert(entry)

	s.wallet = wallet
	s.board = board
	return entry, nil
}
