package tui

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/verte-zerg/moneydetectives/internal/commentary"
	"github.com/verte-zerg/moneydetectives/internal/round"
	"github.com/verte-zerg/moneydetectives/internal/sound"
)

const frameInterval = 120 * time.Millisecond

type timerMsg struct {
	token round.Token
}

type commentaryMsg struct {
	token round.Token
	text  string
}

type endCommentaryMsg struct {
	session uuid.UUID
	text    string
}

type frameMsg struct {
	gen int
}

var (
	cupColors = []string{"#FF6B6B", "#4D96FF", "#6BCB77"}

	cupStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder(), true)
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Italic(true)
)

func (m *Model) timings() round.Timings {
	t := round.DefaultTimings()
	if m.cfg.StartDelay > 0 {
		t.Start = m.cfg.StartDelay
	}
	if m.cfg.ShuffleDelay > 0 {
		t.Shuffle = m.cfg.ShuffleDelay
	}
	if m.cfg.RevealDelay > 0 {
		t.Reveal = m.cfg.RevealDelay
	}
	if m.cfg.TransitionDelay > 0 {
		t.Transition = m.cfg.TransitionDelay
	}
	return t
}

// startGame tears down any previous session and begins a new one.
func (m *Model) startGame() tea.Cmd {
	m.endSession()
	m.sound.Play(sound.CueClick)
	m.engine = round.New(m.timings(), m.picker)
	m.sessionCtx, m.cancelSession = context.WithCancel(m.ctx)
	m.cursor = 0
	m.animFrame = 0
	m.screen = screenGame
	return m.run(m.engine.Start())
}

// endSession tears down the engine. Pending timers and commentary for it
// become no-ops.
func (m *Model) endSession() {
	if m.engine != nil {
		m.engine.Advance(round.Teardown{})
		m.engine = nil
	}
	if m.cancelSession != nil {
		m.cancelSession()
		m.cancelSession = nil
	}
	m.resultsID = uuid.Nil
	m.animGen++
}

func (m *Model) advance(ev round.Event) tea.Cmd {
	if m.engine == nil {
		return nil
	}
	return m.run(m.engine.Advance(ev))
}

// run performs engine effects and returns the commands that will feed
// their results back into Update.
func (m *Model) run(effects []round.Effect) tea.Cmd {
	var cmds []tea.Cmd
	for _, eff := range effects {
		switch e := eff.(type) {
		case round.ScheduleTimer:
			m.timer = e.Token
			token := e.Token
			cmds = append(cmds, tea.Tick(e.After, func(time.Time) tea.Msg {
				return timerMsg{token: token}
			}))
		case round.RequestCommentary:
			cmds = append(cmds, m.requestCommentary(e))
		case round.PlayCue:
			m.sound.Play(e.Cue)
			if e.Cue == sound.CueShuffle {
				cmds = append(cmds, m.startAnimation())
			}
		case round.Finished:
			cmds = append(cmds, m.finish(e))
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) requestCommentary(e round.RequestCommentary) tea.Cmd {
	ctx := m.sessionCtx
	c := m.commentator
	return func() tea.Msg {
		return commentaryMsg{token: e.Token, text: commentary.Resolve(ctx, c, e.Request)}
	}
}

// finish records the session and switches to the results screen. The
// session context stays alive until the player leaves the results so the
// closing comment can still arrive.
func (m *Model) finish(f round.Finished) tea.Cmd {
	session := m.engine.ID()
	entry, err := m.ctrl.CompleteSession(m.ctx, f.FinalScore)
	if err != nil {
		log.Printf("failed to record session: %v", err)
	}
	m.lastEntry = entry
	m.lastRounds = f.Results
	m.resultsID = session
	m.endMessage = round.MessageChecking
	m.screen = screenResults

	ctx := m.sessionCtx
	c := m.commentator
	req := commentary.Request{Kind: commentary.KindEnd, Score: f.FinalScore, Round: round.TotalRounds}
	return func() tea.Msg {
		return endCommentaryMsg{session: session, text: commentary.Resolve(ctx, c, req)}
	}
}

func (m *Model) startAnimation() tea.Cmd {
	m.animGen++
	return frameTick(m.animGen)
}

func frameTick(gen int) tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return frameMsg{gen: gen}
	})
}

func (m *Model) animate(msg frameMsg) tea.Cmd {
	if msg.gen != m.animGen || m.engine == nil || m.engine.State().Status != round.StatusShuffling {
		return nil
	}
	m.animFrame++
	return frameTick(msg.gen)
}

func (m *Model) updateGame(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.endSession()
		m.screen = screenMenu
		return m, nil
	case "1", "2", "3":
		slot := int(msg.Runes[0] - '1')
		m.cursor = slot
		return m, m.advance(round.Guess{Slot: slot})
	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
			m.sound.Play(sound.CueHover)
		}
	case "right", "l":
		if m.cursor < round.Slots-1 {
			m.cursor++
			m.sound.Play(sound.CueHover)
		}
	case "enter", " ":
		return m, m.advance(round.Guess{Slot: m.cursor})
	}
	return m, nil
}

func (m *Model) viewGame() string {
	if m.engine == nil {
		return ""
	}
	st := m.engine.State()
	header := fmt.Sprintf("Round %d / %d    ⭐ Score %d", st.Round, round.TotalRounds, st.Score)
	lines := []string{
		titleStyle.Render(header),
		"",
		m.renderCups(st),
		"",
		messageStyle.Render(st.Message),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderCups(st round.State) string {
	cups := make([]string, round.Slots)
	for i := range cups {
		color := lipgloss.Color(cupColors[i%len(cupColors)])
		style := cupStyle.BorderForeground(lipgloss.Color("#4A4A4A"))
		label := "🥤"
		switch st.Status {
		case round.StatusGuessing:
			if i == m.cursor {
				style = style.BorderForeground(color).Bold(true)
			}
		case round.StatusRevealed, round.StatusTransition:
			if i == st.WinningSlot {
				label = "💰"
			} else {
				label = "  "
			}
			if i == st.SelectedSlot {
				style = style.BorderForeground(color)
			}
		}
		body := lipgloss.NewStyle().Foreground(color).Render(label) + "\n" +
			mutedStyle.Render(fmt.Sprintf(" %d", i+1))
		cups[i] = style.Render(body)
	}
	if st.Status == round.StatusShuffling {
		cups = shuffleFrame(cups, m.animFrame)
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, interleave(cups, "  ")...)
}

// shuffleFrame rotates the drawn cups to suggest movement. It never
// touches the engine, so the winning slot is unaffected.
func shuffleFrame(cups []string, frame int) []string {
	out := make([]string, len(cups))
	for i := range cups {
		out[i] = cups[(i+frame)%len(cups)]
	}
	if frame%2 == 1 {
		out[0] = lipgloss.NewStyle().MarginTop(1).Render(out[0])
	}
	return out
}

func interleave(items []string, sep string) []string {
	out := make([]string, 0, len(items)*2)
	for i, item := range items {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, item)
	}
	return out
}
