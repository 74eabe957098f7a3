package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressBarWidth(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
	}{
		{"empty", 0},
		{"half", 0.5},
		{"full", 1},
		{"overflow", 1.7},
		{"negative", -0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewProgressBar("", tt.percent, false, 20)
			assert.Equal(t, 20, lipgloss.Width(bar.View()))
		})
	}
}

func TestProgressBarPercent(t *testing.T) {
	bar := NewProgressBar("Level 3", 0.42, true, 40)
	view := bar.View()
	assert.Contains(t, view, "Level 3")
	assert.Contains(t, view, "42%")
}

func TestAchievementCardView(t *testing.T) {
	card := AchievementCard{Icon: "👣", Title: "Первые шаги", Body: "Earn 10 XP", Rarity: "common", BonusXP: 50}
	view := card.View()
	assert.Contains(t, view, "Первые шаги")
	assert.Contains(t, view, "Earn 10 XP")
	assert.Contains(t, view, "Common")
	assert.Contains(t, view, "+50 XP")
}

func TestStatLine(t *testing.T) {
	assert.Contains(t, StatLine("Total XP", "120"), "120")
}

func TestNumericTextInput(t *testing.T) {
	in := NewTextInput("1-5", true, 1)
	for _, r := range []rune{'a', '4', '7'} {
		in, _ = in.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	assert.Equal(t, "4", in.Value(), "letters dropped, char limit holds")
	n, err := in.NumericValue()
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	in.Reject("Enter a rating from 1 to 5")
	assert.Empty(t, in.Value())
	assert.Equal(t, "Enter a rating from 1 to 5", in.Err())
	assert.Contains(t, in.View(), "Enter a rating from 1 to 5")
}
