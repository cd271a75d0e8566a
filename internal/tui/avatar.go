package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/moneydetectives/internal/economy"
	"github.com/verte-zerg/moneydetectives/internal/model"
)

const avatarWidth = 9

var avatarColors = map[string]string{
	model.DefaultColor: "#F5C518",
	"sky-blue":         "#5DADE2",
	"candy-pink":       "#FF8FB1",
	"lime-green":       "#9BE15D",
	"royal-purple":     "#9B59B6",
}

func itemIcon(category model.Category, id string) string {
	if id == model.NoneItem {
		return ""
	}
	item, ok := economy.Find(category, id)
	if !ok {
		return ""
	}
	return item.Icon
}

// renderAvatar draws the detective as a small block of text. Missing
// accessories leave their line blank.
func renderAvatar(cfg model.AvatarConfig) string {
	color, ok := avatarColors[cfg.Color]
	if !ok {
		color = avatarColors[model.DefaultColor]
	}
	body := lipgloss.NewStyle().Foreground(lipgloss.Color(color))

	face := "•ᴗ•"
	if icon := itemIcon(model.CategoryGlasses, cfg.Glasses); icon != "" {
		face = icon
	}
	shirt := itemIcon(model.CategoryShirt, cfg.Shirt)
	if shirt == "" {
		shirt = "👕"
	}
	lines := []string{
		center(itemIcon(model.CategoryHat, cfg.Hat)),
		body.Render(center("(" + face + ")")),
		center(shirt),
		body.Render(center("/ \\")),
	}
	return strings.Join(lines, "\n")
}

// avatarBadge is a one-line summary used in tables.
func avatarBadge(cfg model.AvatarConfig) string {
	parts := []string{}
	for _, cat := range []model.Category{model.CategoryHat, model.CategoryGlasses, model.CategoryShirt} {
		if icon := itemIcon(cat, cfg.Get(cat)); icon != "" {
			parts = append(parts, icon)
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "")
}

func center(s string) string {
	w := runewidth.StringWidth(s)
	if w >= avatarWidth {
		return s
	}
	left := (avatarWidth - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", avatarWidth-w-left)
}
