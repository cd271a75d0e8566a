package leaderboard

import (
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/moneydetectives/internal/model"
)

func entry(name string, score int) model.LeaderboardEntry {
	return model.LeaderboardEntry{
		Name:     name,
		Score:    score,
		PlayedAt: time.Unix(1700000000, 0).UTC(),
		Avatar:   model.DefaultAvatar(),
		Rank:     "White",
	}
}

func names(b Board) []string {
	out := []string{}
	for _, e := range b.Entries() {
		out = append(out, e.Name)
	}
	return out
}

func TestInsertOrdersDescendingAndStable(t *testing.T) {
	var b Board
	b = b.Insert(entry("a", 3))
	b = b.Insert(entry("b", 5))
	b = b.Insert(entry("c", 1))
	b = b.Insert(entry("d", 5))

	got := strings.Join(names(b), ",")
	if got != "b,d,a,c" {
		t.Fatalf("unexpected order: %s", got)
	}
}

func TestInsertCapsAtMaxEntries(t *testing.T) {
	var b Board
	scores := []int{4, 0, 7, 2, 9, 1, 5, 3, 8, 6, 5, 5}
	for i, s := range scores {
		b = b.Insert(entry(string(rune('a'+i)), s))
	}
	if b.Len() != MaxEntries {
		t.Fatalf("expected %d entries, got %d", MaxEntries, b.Len())
	}
	for _, e := range b.Entries() {
		if e.Score == 0 || e.Score == 1 {
			t.Fatalf("lowest scores should be dropped, found %+v", e)
		}
	}
	entries := b.Entries()
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Score < entries[i].Score {
			t.Fatalf("entries out of order at %d", i)
		}
	}
}

func TestInsertDoesNotMutateOriginal(t *testing.T) {
	var b Board
	b = b.Insert(entry("a", 1))
	next := b.Insert(entry("b", 2))
	if b.Len() != 1 || next.Len() != 2 {
		t.Fatalf("insert must return a new board")
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	b := New([]model.LeaderboardEntry{entry("a", 1)})
	entries := b.Entries()
	entries[0].Name = "mallory"
	entries[0].Avatar.Hat = "crown"
	if b.Entries()[0].Name != "a" || b.Entries()[0].Avatar.Hat != model.NoneItem {
		t.Fatalf("board entries must be immutable")
	}
}

func TestNewRestoresOrderAndCap(t *testing.T) {
	stored := make([]model.LeaderboardEntry, 0, 12)
	for i := 0; i < 12; i++ {
		stored = append(stored, entry(string(rune('a'+i)), i))
	}
	b := New(stored)
	if b.Len() != MaxEntries {
		t.Fatalf("expected cap on load, got %d", b.Len())
	}
	if b.Entries()[0].Score != 11 {
		t.Fatalf("expected highest score first, got %d", b.Entries()[0].Score)
	}
}

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"#", "Agent", "Score"}
	rows := [][]string{
		{"1", "Ada", "5"},
		{"10", "Grace", "12"},
	}
	lines := formatTable(headers, rows, map[int]bool{0: true, 2: true})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != " #  Agent  Score" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != " 1  Ada        5" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "10  Grace     12" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableIncludesEntries(t *testing.T) {
	b := New([]model.LeaderboardEntry{entry("Ada", 4)})
	lines := FormatTable(b)
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %d", len(lines))
	}
	if !strings.Contains(lines[1], "Ada") || !strings.Contains(lines[1], "White") {
		t.Fatalf("row missing fields: %q", lines[1])
	}
}
