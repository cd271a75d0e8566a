package progression

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/verte-zerg/moneydetectives/internal/economy"
	"github.com/verte-zerg/moneydetectives/internal/leaderboard"
	"github.com/verte-zerg/moneydetectives/internal/model"
)

// Persisted key names.
const (
	KeyWallet      = "wallet"
	KeyPurchased   = "purchasedItems"
	KeyLeaderboard = "leaderboard"
	KeyAvatar      = "avatar"
	KeyPlayerName  = "playerName"
)

// Keys lists every persisted key.
var Keys = []string{KeyWallet, KeyPurchased, KeyLeaderboard, KeyAvatar, KeyPlayerName}

// Snapshot is the durable form of State.
type Snapshot struct {
	Wallet      int
	Purchased   []string
	Avatar      model.AvatarConfig
	Leaderboard []model.LeaderboardEntry
	PlayerName  string
}

// DefaultSnapshot is what a first run loads.
func DefaultSnapshot() Snapshot {
	return Snapshot{Avatar: model.DefaultAvatar()}
}

// Snapshot copies the state into its durable form.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Wallet:      s.wallet,
		Purchased:   s.Purchased(),
		Avatar:      s.avatar,
		Leaderboard: s.board.Entries(),
		PlayerName:  s.playerName,
	}
}

// FromSnapshot rebuilds a State, repairing values that break invariants.
func FromSnapshot(snap Snapshot) *State {
	wallet := snap.Wallet
	if wallet < 0 {
		wallet = 0
	}
	purchased := make([]string, 0, len(snap.Purchased))
	seen := map[string]bool{}
	for _, raw := range snap.Purchased {
		key, ok := normalizeKey(raw)
		if !ok || seen[key] {
			continue
		}
		seen[key] = true
		purchased = append(purchased, key)
	}
	return &State{
		wallet:     wallet,
		purchased:  purchased,
		avatar:     economy.SanitizeAvatar(snap.Avatar),
		board:      leaderboard.New(snap.Leaderboard),
		playerName: strings.TrimSpace(snap.PlayerName),
	}
}

// normalizeKey accepts "category:id" keys and bare ids written by older
// saves, which are qualified by the first paid catalog item with that id.
func normalizeKey(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if category, id, ok := strings.Cut(raw, ":"); ok {
		if _, found := economy.Find(model.Category(category), id); !found {
			return "", false
		}
		return raw, true
	}
	for _, item := range economy.Catalog() {
		if item.ID == raw && item.Price > 0 {
			return item.Key(), true
		}
	}
	return "", false
}

// Encode serializes a snapshot into the persisted key set.
func Encode(snap Snapshot) (map[string]string, error) {
	purchased := snap.Purchased
	if purchased == nil {
		purchased = []string{}
	}
	board := snap.Leaderboard
	if board == nil {
		board = []model.LeaderboardEntry{}
	}
	items, err := json.Marshal(purchased)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", KeyPurchased, err)
	}
	entries, err := json.Marshal(board)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", KeyLeaderboard, err)
	}
	avatar, err := json.Marshal(snap.Avatar)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", KeyAvatar, err)
	}
	return map[string]string{
		KeyWallet:      strconv.Itoa(snap.Wallet),
		KeyPurchased:   string(items),
		KeyLeaderboard: string(entries),
		KeyAvatar:      string(avatar),
		KeyPlayerName:  snap.PlayerName,
	}, nil
}

// Decode parses persisted values. Missing keys take their default. A key
// that fails to parse also takes its default and is reported in the
// returned error; the snapshot is usable either way.
func Decode(values map[string]string) (Snapshot, error) {
	snap := DefaultSnapshot()
	var errs []error

	if raw, ok := values[KeyWallet]; ok {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("decode %s: %w", KeyWallet, err))
		case n < 0:
			errs = append(errs, fmt.Errorf("decode %s: negative balance %d", KeyWallet, n))
		default:
			snap.Wallet = n
		}
	}
	if raw, ok := values[KeyPurchased]; ok {
		var items []string
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			errs = append(errs, fmt.Errorf("decode %s: %w", KeyPurchased, err))
		} else {
			snap.Purchased = items
		}
	}
	if raw, ok := values[KeyLeaderboard]; ok {
		var entries []model.LeaderboardEntry
		if err := json.Unmarshal([]byte(raw), &entries); err != nil {
			errs = append(errs, fmt.Errorf("decode %s: %w", KeyLeaderboard, err))
		} else {
			snap.Leaderboard = entries
		}
	}
	if raw, ok := values[KeyAvatar]; ok {
		var avatar model.AvatarConfig
		if err := json.Unmarshal([]byte(raw), &avatar); err != nil {
			errs = append(errs, fmt.Errorf("decode %s: %w", KeyAvatar, err))
		} else {
			snap.Avatar = avatar
		}
	}
	if raw, ok := values[KeyPlayerName]; ok {
		snap.PlayerName = raw
	}
	return snap, errors.Join(errs...)
}
