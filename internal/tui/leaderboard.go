package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/moneydetectives/internal/economy"
	"github.com/verte-zerg/moneydetectives/internal/leaderboard"
	"github.com/verte-zerg/moneydetectives/internal/round"
)

const (
	tabTopAgents = iota
	tabRanks
)

var boardTabs = []string{"Top Agents", "Ranks"}

func (m *Model) openLeaderboard() {
	m.boardTable = buildBoardTable(m.ctrl.Leaderboard(), m.width, m.boardHeight())
	m.boardTab = tabTopAgents
	m.screen = screenLeaderboard
}

func (m *Model) boardHeight() int {
	if m.height == 0 {
		return leaderboard.MaxEntries + 1
	}
	return minInt(leaderboard.MaxEntries+1, maxInt(3, m.height-10))
}

func (m *Model) resizeBoardTable() {
	m.boardTable.SetHeight(m.boardHeight())
}

func (m *Model) updateLeaderboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "m", "q":
		m.screen = screenMenu
		return m, nil
	case "left", "h", "right", "l", "tab":
		m.boardTab = (m.boardTab + 1) % len(boardTabs)
		return m, nil
	}
	if m.boardTab == tabTopAgents {
		var cmd tea.Cmd
		m.boardTable, cmd = m.boardTable.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) renderBoardTabs() string {
	parts := make([]string, 0, len(boardTabs))
	for i, tab := range boardTabs {
		if i == m.boardTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) viewLeaderboard() string {
	var body string
	switch m.boardTab {
	case tabRanks:
		body = renderRankGuide(m.ctrl.Wallet())
	default:
		if m.ctrl.Leaderboard().Len() == 0 {
			body = mutedStyle.Render("No cases solved yet. Play a game to get on the board!")
		} else {
			body = m.boardTable.View()
		}
	}
	return strings.Join([]string{
		titleStyle.Render("🏆 Hall of Fame"),
		m.renderBoardTabs(),
		body,
	}, "\n")
}

func buildBoardTable(board leaderboard.Board, width, height int) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Agent", Width: 14},
		{Title: "Look", Width: 8},
		{Title: "Score", Width: 5},
		{Title: "Rank", Width: 10},
		{Title: "Date", Width: 10},
	}
	entries := board.Entries()
	rows := make([]table.Row, 0, len(entries))
	for i, entry := range entries {
		rank := economy.RankByName(entry.Rank)
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			entry.Name,
			avatarBadge(entry.Avatar),
			fmt.Sprintf("%d/%d", entry.Score, round.TotalRounds),
			rank.Icon + " " + rank.Name,
			entry.PlayedAt.Local().Format("2006-01-02"),
		})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(maxInt(1, height)),
		table.WithFocused(true),
	)
	if width > 0 {
		t.SetWidth(minInt(width, 70))
	}
	t.SetStyles(boardTableStyles())
	return t
}

func boardTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func renderRankGuide(wallet int) string {
	current := economy.RankOf(wallet)
	lines := make([]string, 0, len(economy.Ranks()))
	for _, rank := range economy.Ranks() {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(rank.Color))
		line := fmt.Sprintf("%s %-8s %-24s %3d+ ⭐", rank.Icon, rank.Name, rank.Title, rank.Threshold)
		if rank.Tier == current.Tier {
			line = style.Bold(true).Render(line + "  ← you")
		} else {
			line = style.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func nextRankName(tier economy.Tier) string {
	ranks := economy.Ranks()
	next := int(tier) + 1
	if next >= len(ranks) {
		return ranks[len(ranks)-1].Name
	}
	return ranks[next].Name
}
