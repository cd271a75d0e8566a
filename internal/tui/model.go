// Package tui provides the Bubble Tea game interface.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/verte-zerg/moneydetectives/internal/commentary"
	"github.com/verte-zerg/moneydetectives/internal/model"
	"github.com/verte-zerg/moneydetectives/internal/progression"
	"github.com/verte-zerg/moneydetectives/internal/round"
	"github.com/verte-zerg/moneydetectives/internal/sound"
)

type screen int

const (
	screenWelcome screen = iota
	screenMenu
	screenGame
	screenResults
	screenStore
	screenLeaderboard
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E6B422")).Bold(true)
	textStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	goodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
)

// Options wires the collaborators of the game UI.
type Options struct {
	Config      model.Config
	Progress    *progression.Controller
	Commentator commentary.Commentator
	Sound       sound.Player
	Picker      round.Picker
}

// Model implements the Bubble Tea game UI. It owns screen navigation and
// hosts one round.Engine at a time, turning its effects into commands.
type Model struct {
	cfg         model.Config
	ctrl        *progression.Controller
	commentator commentary.Commentator
	sound       sound.Player
	picker      round.Picker

	ctx    context.Context
	cancel context.CancelFunc

	screen screen
	width  int
	height int

	nameInput textinput.Model
	bar       progress.Model

	// Game session. The context is canceled when the session is torn down
	// so in-flight commentary requests stop.
	engine        *round.Engine
	sessionCtx    context.Context
	cancelSession context.CancelFunc
	timer         round.Token
	cursor        int
	animGen       int
	animFrame     int

	// Results of the last finished session.
	resultsID  uuid.UUID
	lastEntry  model.LeaderboardEntry
	lastRounds []round.Result
	endMessage string

	storeTab    int
	storeCursor int
	storeNotice string

	boardTab   int
	boardTable table.Model
}

// NewModel constructs the game UI. A configured player name skips the
// welcome screen.
func NewModel(opts Options) *Model {
	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		cfg:         opts.Config,
		ctrl:        opts.Progress,
		commentator: opts.Commentator,
		sound:       opts.Sound,
		picker:      opts.Picker,
		ctx:         ctx,
		cancel:      cancel,
	}
	if m.commentator == nil || !m.cfg.Commentary {
		m.commentator = commentary.Static{}
	}
	if m.sound == nil || !m.cfg.Sound {
		m.sound = sound.Nop{}
	}
	if m.picker == nil {
		m.picker = round.NewPicker()
	}

	m.nameInput = textinput.New()
	m.nameInput.Prompt = "Agent name: "
	m.nameInput.Placeholder = "type your name"
	m.nameInput.CharLimit = 20
	m.nameInput.SetValue(m.ctrl.PlayerName())
	m.nameInput.Focus()

	m.bar = progress.New(progress.WithGradient("#CD7F32", "#E6B422"), progress.WithoutPercentage())
	m.bar.Width = 30
	m.boardTable = buildBoardTable(m.ctrl.Leaderboard(), 0, 10)

	if name := strings.TrimSpace(m.cfg.PlayerName); name != "" {
		if name != m.ctrl.PlayerName() {
			m.ctrl.SetPlayerName(m.ctx, name)
		}
		m.screen = screenMenu
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.screen == screenWelcome {
		return textinput.Blink
	}
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = minInt(40, maxInt(10, m.width/3))
		m.resizeBoardTable()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, m.quit()
		}
		switch m.screen {
		case screenWelcome:
			return m.updateWelcome(msg)
		case screenMenu:
			return m.updateMenu(msg)
		case screenGame:
			return m.updateGame(msg)
		case screenResults:
			return m.updateResults(msg)
		case screenStore:
			return m.updateStore(msg)
		case screenLeaderboard:
			return m.updateLeaderboard(msg)
		}
		return m, nil
	case timerMsg:
		return m, m.advance(round.TimerFired{Token: msg.token})
	case commentaryMsg:
		return m, m.advance(round.CommentaryArrived{Token: msg.token, Text: msg.text})
	case endCommentaryMsg:
		if msg.session == m.resultsID {
			m.endMessage = msg.text
		}
		return m, nil
	case frameMsg:
		return m, m.animate(msg)
	default:
		if m.screen == screenWelcome {
			var cmd tea.Cmd
			m.nameInput, cmd = m.nameInput.Update(msg)
			return m, cmd
		}
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch m.screen {
	case screenWelcome:
		content = m.viewWelcome()
	case screenMenu:
		content = m.viewMenu()
	case screenGame:
		content = m.viewGame()
	case screenResults:
		content = m.viewResults()
	case screenStore:
		content = m.viewStore()
	case screenLeaderboard:
		content = m.viewLeaderboard()
	}
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return content + "\n\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - lipgloss.Height(footer)
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, lipgloss.Height(footer), lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) quit() tea.Cmd {
	m.endSession()
	m.cancel()
	return tea.Quit
}

func (m *Model) updateWelcome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			return m, nil
		}
		m.sound.Play(sound.CueClick)
		m.ctrl.SetPlayerName(m.ctx, name)
		m.nameInput.Blur()
		m.screen = screenMenu
		return m, nil
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m *Model) viewWelcome() string {
	lines := []string{
		titleStyle.Render("💰 Money Detectives 🔍"),
		"",
		textStyle.Render("Find the money hidden under one of three cups."),
		textStyle.Render(fmt.Sprintf("Play %d rounds, earn a star for every find.", round.TotalRounds)),
		"",
		m.nameInput.View(),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "p", "enter":
		return m, m.startGame()
	case "s":
		m.openStore()
		return m, nil
	case "l":
		m.openLeaderboard()
		return m, nil
	case "n":
		m.nameInput.Focus()
		m.screen = screenWelcome
		return m, textinput.Blink
	case "q", "esc":
		return m, m.quit()
	}
	return m, nil
}

func (m *Model) viewMenu() string {
	rank := m.ctrl.Rank()
	badge := lipgloss.NewStyle().Foreground(lipgloss.Color(rank.Color)).Bold(true).
		Render(fmt.Sprintf("%s %s · %s", rank.Icon, rank.Name, rank.Title))

	prog := m.ctrl.Progress()
	var progressLine string
	if prog.Maxed {
		progressLine = goodStyle.Render("Top rank reached!")
	} else {
		next := nextRankName(rank.Tier)
		progressLine = m.bar.ViewAs(prog.Percent/100) + "\n" +
			mutedStyle.Render(fmt.Sprintf("%d more ⭐ to %s", prog.Remaining, next))
	}

	info := []string{
		titleStyle.Render("Agent " + m.ctrl.PlayerName()),
		textStyle.Render(fmt.Sprintf("⭐ %d stars", m.ctrl.Wallet())),
		badge,
		"",
		progressLine,
	}
	card := lipgloss.JoinHorizontal(lipgloss.Center,
		cardStyle.Render(renderAvatar(m.ctrl.Avatar())),
		"  ",
		strings.Join(info, "\n"),
	)
	return strings.Join([]string{
		titleStyle.Render("💰 Money Detectives 🔍"),
		"",
		card,
	}, "\n")
}

func (m *Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "m", "enter", "esc":
		m.endSession()
		m.screen = screenMenu
	case "p":
		return m, m.startGame()
	case "s":
		m.endSession()
		m.openStore()
	case "l":
		m.endSession()
		m.openLeaderboard()
	}
	return m, nil
}

func (m *Model) viewResults() string {
	score := m.lastEntry.Score
	marks := make([]string, 0, len(m.lastRounds))
	for _, r := range m.lastRounds {
		if r.Won {
			marks = append(marks, goodStyle.Render("💰"))
		} else {
			marks = append(marks, errorStyle.Render("✗"))
		}
	}
	rank := m.ctrl.Rank()
	lines := []string{
		titleStyle.Render("Case closed!"),
		"",
		textStyle.Render(fmt.Sprintf("You found the money %d out of %d times.", score, round.TotalRounds)),
		strings.Join(marks, " "),
		goodStyle.Render(fmt.Sprintf("+%d ⭐", score)),
		"",
		textStyle.Render(m.endMessage),
		"",
		lipgloss.NewStyle().Foreground(lipgloss.Color(rank.Color)).
			Render(fmt.Sprintf("Rank: %s %s · ⭐ %d", rank.Icon, rank.Name, m.ctrl.Wallet())),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	var help string
	switch m.screen {
	case screenWelcome:
		help = "Enter: continue  Ctrl+C: quit"
	case screenMenu:
		help = "p/Enter: play  s: store  l: leaderboard  n: change name  q: quit"
	case screenGame:
		help = "1-3: pick a cup  ←/→ + Enter: pick  Esc: back to menu"
	case screenResults:
		help = "m/Enter: menu  p: play again  s: store  l: leaderboard"
	case screenStore:
		help = "←/→: category  ↑/↓: item  Enter: equip or buy  Esc: menu"
	case screenLeaderboard:
		help = "←/→: tab  ↑/↓: scroll  Esc: menu"
	}
	footer := footerStyle.Render(help)
	if err := m.ctrl.SaveErr(); err != nil {
		footer += "\n" + errorStyle.Render("⚠ Progress not saved: "+err.Error())
	}
	return footer
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
