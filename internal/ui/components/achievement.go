package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashiz/internal/ui/theme"
)

// AchievementCard renders an unlocked achievement banner.
type AchievementCard struct {
	Icon    string
	Title   string
	Body    string
	Rarity  string
	BonusXP int
}

// View renders the card with a border in the rarity color.
func (c AchievementCard) View() string {
	accent := theme.RarityColor(c.Rarity)

	var b strings.Builder
	head := strings.TrimSpace(c.Icon + " " + c.Title)
	b.WriteString(lipgloss.NewStyle().Foreground(accent).Bold(true).Render(head))
	if c.Body != "" {
		b.WriteString("\n")
		b.WriteString(theme.Body.Render(c.Body))
	}

	var meta []string
	if c.Rarity != "" {
		meta = append(meta, strings.ToUpper(c.Rarity[:1])+c.Rarity[1:])
	}
	if c.BonusXP > 0 {
		meta = append(meta, fmt.Sprintf("+%d XP", c.BonusXP))
	}
	if len(meta) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(strings.Join(meta, " · ")))
	}

	return theme.Card.BorderForeground(accent).Render(b.String())
}

// StatLine renders an aligned "label value" row.
func StatLine(label, value string) string {
	return theme.Label.Render(label) + theme.Value.Render(value)
}
