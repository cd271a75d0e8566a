// Package leaderboard keeps the capped, score-ordered history of games.
package leaderboard

import (
	"sort"

	"github.com/verte-zerg/moneydetectives/internal/model"
)

// MaxEntries caps the number of retained entries.
const MaxEntries = 10

// Board is an immutable ordered list of entries, highest score first.
// The zero value is an empty board.
type Board struct {
	entries []model.LeaderboardEntry
}

// New builds a board from stored entries, restoring order and cap.
func New(entries []model.LeaderboardEntry) Board {
	return Board{entries: rank(entries)}
}

// Insert returns a new board containing entry. Ties keep insertion order,
// so an earlier entry with the same score stays ahead.
func (b Board) Insert(entry model.LeaderboardEntry) Board {
	next := make([]model.LeaderboardEntry, 0, len(b.entries)+1)
	next = append(next, b.entries...)
	next = append(next, entry)
	return Board{entries: rank(next)}
}

// Entries returns a copy of the ordered entries.
func (b Board) Entries() []model.LeaderboardEntry {
	out := make([]model.LeaderboardEntry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Len returns the number of entries.
func (b Board) Len() int {
	return len(b.entries)
}

func rank(entries []model.LeaderboardEntry) []model.LeaderboardEntry {
	out := make([]model.LeaderboardEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > MaxEntries {
		out = out[:MaxEntries]
	}
	return out
}
