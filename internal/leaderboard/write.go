package leaderboard

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/verte-zerg/moneydetectives/internal/economy"
)

// Write prints the board as a table. Rows are tinted with the rank color
// when w is a terminal, unless NO_COLOR is set.
func Write(w io.Writer, b Board, forceColor bool) error {
	if b.Len() == 0 {
		_, err := fmt.Fprintln(w, "No games recorded yet.")
		return err
	}
	useColor := shouldUseColor(w, forceColor)
	lines := FormatTable(b)
	for i, line := range lines {
		if useColor && i > 0 {
			rank := economy.RankByName(b.entries[i-1].Rank)
			line = termenv.String(line).Foreground(termenv.TrueColor.Color(rank.Color)).String()
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
