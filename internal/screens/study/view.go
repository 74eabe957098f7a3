package study

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/flashiz/internal/ui/components"
	"github.com/abhisek/flashiz/internal/ui/theme"
)

const defaultWidth = 50

func (m Model) barWidth() int {
	if m.width > 0 && m.width-4 < defaultWidth {
		return m.width - 4
	}
	return defaultWidth
}

// render draws the current phase. Nothing is drawn once the session is
// done; the caller prints Summary instead.
func (m Model) render() string {
	switch m.phase {
	case phaseSaving:
		return theme.Hint.Render("Saving session...")
	case phaseDone:
		return ""
	}
	if m.index >= len(m.cards) {
		return ""
	}

	c := m.cards[m.index]
	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Card %d/%d", m.index+1, len(m.cards))))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", float64(m.index)/float64(len(m.cards)), false, m.barWidth()).View())
	b.WriteString("\n\n")

	face := theme.Title.Render(c.Front)
	if m.phase == phaseRate {
		face += "\n\n" + theme.Body.Render(c.Back)
	}
	b.WriteString(theme.Card.Render(face))
	b.WriteString("\n\n")

	if m.phase == phaseFront {
		b.WriteString(theme.Hint.Render("Enter to reveal · Esc to finish"))
		return b.String()
	}
	b.WriteString(theme.Label.Render("Rating") + m.input.View())
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("1 forgot · 3 recalled · 5 perfect · Enter to submit · Esc to finish"))
	return b.String()
}

// Summary renders the outcome of the session for printing after the
// program exits.
func (m Model) Summary() string {
	res := m.result
	if res == nil {
		if m.aborted {
			return theme.Hint.Render("Session discarded.")
		}
		return theme.Hint.Render("No answers recorded.")
	}

	fronts := make(map[string][2]string, len(m.cards))
	for _, c := range m.cards {
		fronts[c.ID] = [2]string{c.Front, c.Back}
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Session complete"))
	b.WriteString("\n")
	for _, c := range res.Cards {
		face := fronts[c.CardID]
		b.WriteString(fmt.Sprintf("  %s → %s  %s  %s\n",
			face[0], face[1],
			theme.Subtitle.Render(fmt.Sprintf("%d/5", c.Rating)),
			theme.Value.Render(fmt.Sprintf("+%d", c.XP)),
		))
	}
	b.WriteString("\n")
	b.WriteString(components.StatLine("Cards", strconv.Itoa(len(res.Cards))) + "\n")
	b.WriteString(components.StatLine("Card XP", fmt.Sprintf("+%d", res.CardXP)) + "\n")
	b.WriteString(components.StatLine("Session bonus", fmt.Sprintf("+%d", res.SessionXP)) + "\n")
	if res.BonusXP > 0 {
		b.WriteString(components.StatLine("Achievements", fmt.Sprintf("+%d", res.BonusXP)) + "\n")
	}
	if res.Capped > 0 {
		b.WriteString(theme.Warning.Render(fmt.Sprintf("Daily cap reached: %d XP withheld", res.Capped)) + "\n")
	}

	streakText := fmt.Sprintf("%d days", res.Streak)
	if res.StreakIncreased {
		streakText += " ↑"
	}
	b.WriteString(components.StatLine("Streak", streakText) + "\n")

	if res.LeveledUp() {
		b.WriteString(theme.Unlocked.Render(fmt.Sprintf("Level up! %d → %d", res.Before.Level, res.After.Level)) + "\n")
	}
	b.WriteString(components.NewProgressBar(fmt.Sprintf("Level %d", res.After.Level), res.After.Fraction(), true, m.barWidth()).View())

	for _, u := range res.Unlocked {
		d := u.Definition
		b.WriteString("\n")
		b.WriteString(components.AchievementCard{
			Icon:    d.Icon,
			Title:   d.Name,
			Body:    d.Description,
			Rarity:  string(d.Rarity),
			BonusXP: u.BonusXP,
		}.View())
	}
	return b.String()
}
