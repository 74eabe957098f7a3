package rewards

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCalculator(t *testing.T) *Calculator {
	t.Helper()
	c, err := NewCalculator(DefaultConfig())
	require.NoError(t, err)
	return c
}

func TestComputeCardXP_ConcreteScenario(t *testing.T) {
	c := newTestCalculator(t)

	// 10 × 1.5 (rating 5) × 0.8 (avg 4.2, easy) × 1.1 (10-day streak) = 13.2
	xp, err := c.ComputeCardXP(10, 5, 10, 4.2)
	require.NoError(t, err)
	assert.Equal(t, 13, xp)
}

func TestComputeCardXP_QualityOrdering(t *testing.T) {
	c := newTestCalculator(t)

	prev := -1
	for rating := 1; rating <= 5; rating++ {
		xp, err := c.ComputeCardXP(10, rating, 0, 3.0)
		require.NoError(t, err)
		assert.Greater(t, xp, prev, "rating %d", rating)
		prev = xp
	}
}

func TestComputeCardXP_Table(t *testing.T) {
	c := newTestCalculator(t)

	tests := []struct {
		name    string
		base    int
		rating  int
		streak  int
		average float64
		want    int
	}{
		{"new card, no streak", 10, 3, 0, 0, 10},
		{"hard card", 10, 3, 0, 1.9, 15},
		{"easy card", 10, 3, 0, 4.0, 8},
		{"medium boundary", 10, 3, 0, 2.5, 10},
		{"week streak", 10, 3, 7, 3.0, 11},
		{"two week streak", 10, 4, 14, 3.0, 15},
		{"month streak, hard, perfect", 10, 5, 45, 1.0, 34},
		{"worst answer", 10, 1, 0, 3.0, 5},
		{"zero base", 0, 5, 30, 1.0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.ComputeCardXP(tt.base, tt.rating, tt.streak, tt.average)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeCardXP_InvalidInput(t *testing.T) {
	c := newTestCalculator(t)

	for _, rating := range []int{-1, 0, 6, 10} {
		_, err := c.ComputeCardXP(10, rating, 0, 0)
		var ratingErr *ErrInvalidRating
		require.True(t, errors.As(err, &ratingErr), "rating %d: got %v", rating, err)
		assert.Equal(t, rating, ratingErr.Rating)
	}

	_, err := c.ComputeCardXP(-5, 3, 0, 0)
	var negErr *ErrNegativeValue
	require.True(t, errors.As(err, &negErr))
	assert.Equal(t, "base xp", negErr.Field)

	_, err = c.ComputeCardXP(10, 3, -1, 0)
	require.True(t, errors.As(err, &negErr))
	assert.Equal(t, "streak days", negErr.Field)
}

func TestStreakMultiplier_HighestTierWins(t *testing.T) {
	c := newTestCalculator(t)

	tests := []struct {
		days int
		want float64
	}{
		{0, 1.0},
		{6, 1.0},
		{7, 1.1},
		{13, 1.1},
		{14, 1.25},
		{29, 1.25},
		{30, 1.5},
		{365, 1.5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.StreakMultiplier(tt.days), "days %d", tt.days)
	}
}

func TestDifficultyFor(t *testing.T) {
	tests := []struct {
		average float64
		want    Difficulty
	}{
		{0, DifficultyMedium},
		{1.0, DifficultyHard},
		{2.49, DifficultyHard},
		{2.5, DifficultyMedium},
		{3.99, DifficultyMedium},
		{4.0, DifficultyEasy},
		{5.0, DifficultyEasy},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DifficultyFor(tt.average), "average %.2f", tt.average)
	}
}

func TestAverageRating_RollingWindow(t *testing.T) {
	assert.Equal(t, 0.0, AverageRating(nil))
	assert.Equal(t, 3.0, AverageRating([]int{2, 4}))

	// Only the last HistoryWindow ratings count.
	history := []int{1, 1, 1, 1, 1}
	for i := 0; i < HistoryWindow; i++ {
		history = append(history, 5)
	}
	assert.Equal(t, 5.0, AverageRating(history))
}

func TestCardXP_UsesHistory(t *testing.T) {
	c := newTestCalculator(t)

	easy, err := c.CardXP(5, 0, []int{5, 4, 5})
	require.NoError(t, err)
	fresh, err := c.CardXP(5, 0, nil)
	require.NoError(t, err)
	hard, err := c.CardXP(5, 0, []int{1, 2, 2})
	require.NoError(t, err)

	assert.Equal(t, 12, easy)
	assert.Equal(t, 15, fresh)
	assert.Equal(t, 23, hard) // 10 × 1.5 × 1.5 = 22.5 rounds away from zero
}

func TestFlatRewards(t *testing.T) {
	c := newTestCalculator(t)
	assert.Equal(t, 20, c.SessionXP())
	assert.Equal(t, 5, c.CreatedCardXP())
	assert.Equal(t, 50, c.AchievementXP())
}

func TestNewCalculator_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxDailyXP = 0
	_, err := NewCalculator(cfg)
	var cfgErr *ErrInvalidConfig
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "max_daily_xp", cfgErr.Field)
}
