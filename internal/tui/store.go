package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/moneydetectives/internal/economy"
	"github.com/verte-zerg/moneydetectives/internal/model"
	"github.com/verte-zerg/moneydetectives/internal/progression"
	"github.com/verte-zerg/moneydetectives/internal/sound"
)

var (
	selectedItemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	lockedItemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5A5A5A"))
)

var categoryTitles = map[model.Category]string{
	model.CategoryHat:     "Hats",
	model.CategoryGlasses: "Glasses",
	model.CategoryShirt:   "Shirts",
	model.CategoryColor:   "Colors",
}

func (m *Model) openStore() {
	m.storeNotice = ""
	m.storeCursor = 0
	m.screen = screenStore
}

func (m *Model) storeItems() []model.StoreItem {
	return economy.ItemsIn(model.Categories[m.storeTab])
}

func (m *Model) updateStore(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "m", "q":
		m.screen = screenMenu
	case "left", "h":
		m.storeTab = (m.storeTab + len(model.Categories) - 1) % len(model.Categories)
		m.storeCursor = 0
		m.storeNotice = ""
	case "right", "l", "tab":
		m.storeTab = (m.storeTab + 1) % len(model.Categories)
		m.storeCursor = 0
		m.storeNotice = ""
	case "up", "k":
		if m.storeCursor > 0 {
			m.storeCursor--
			m.sound.Play(sound.CueHover)
		}
	case "down", "j":
		if m.storeCursor < len(m.storeItems())-1 {
			m.storeCursor++
			m.sound.Play(sound.CueHover)
		}
	case "enter", " ":
		m.selectItem()
	}
	return m, nil
}

func (m *Model) selectItem() {
	items := m.storeItems()
	if m.storeCursor < 0 || m.storeCursor >= len(items) {
		return
	}
	item := items[m.storeCursor]
	outcome, err := m.ctrl.Select(m.ctx, item)
	switch {
	case errors.Is(err, economy.ErrUnknownItem):
		m.storeNotice = fmt.Sprintf("%s is not for sale.", item.Name)
	case err != nil:
		m.storeNotice = err.Error()
	case outcome == progression.OutcomePurchased:
		m.sound.Play(sound.CueWin)
		m.storeNotice = fmt.Sprintf("Bought %s for %d ⭐!", item.Name, item.Price)
	case outcome == progression.OutcomeEquipped:
		m.sound.Play(sound.CueClick)
		m.storeNotice = fmt.Sprintf("Wearing %s.", item.Name)
	default:
		m.storeNotice = fmt.Sprintf("You need %d more ⭐ for %s.", item.Price-m.ctrl.Wallet(), item.Name)
	}
}

func (m *Model) renderStoreTabs() string {
	parts := make([]string, 0, len(model.Categories))
	for i, cat := range model.Categories {
		if i == m.storeTab {
			parts = append(parts, activeNavStyle.Render(categoryTitles[cat]))
		} else {
			parts = append(parts, inactiveNavStyle.Render(categoryTitles[cat]))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) viewStore() string {
	items := m.storeItems()
	rows := make([]string, 0, len(items))
	for i, item := range items {
		rows = append(rows, m.renderStoreRow(item, i == m.storeCursor))
	}
	list := strings.Join(rows, "\n")
	preview := cardStyle.Render(renderAvatar(m.ctrl.Avatar()))

	lines := []string{
		titleStyle.Render(fmt.Sprintf("🛍  Detective Shop    ⭐ %d", m.ctrl.Wallet())),
		m.renderStoreTabs(),
		lipgloss.JoinHorizontal(lipgloss.Top, list, "    ", preview),
	}
	if m.storeNotice != "" {
		lines = append(lines, "", textStyle.Render(m.storeNotice))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderStoreRow(item model.StoreItem, selected bool) string {
	pointer := "  "
	if selected {
		pointer = "▸ "
	}
	var marker string
	switch {
	case m.ctrl.Equipped(item):
		marker = goodStyle.Render("✓ wearing")
	case m.ctrl.Owns(item):
		marker = mutedStyle.Render("owned")
	default:
		marker = fmt.Sprintf("⭐ %d", item.Price)
	}
	label := fmt.Sprintf("%s%s %-14s ", pointer, item.Icon, item.Name)
	switch {
	case !m.ctrl.Owns(item) && !m.ctrl.CanAfford(item):
		return lockedItemStyle.Render(label + "🔒 " + marker)
	case selected:
		return selectedItemStyle.Render(label) + marker
	default:
		return textStyle.Render(label) + marker
	}
}
