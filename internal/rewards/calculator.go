package rewards

import "math"

// Difficulty classifies a card by its recent average rating.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

const (
	// EasyAverage and MediumAverage are the lower bounds of each tier.
	EasyAverage   = 4.0
	MediumAverage = 2.5

	// HistoryWindow is how many recent ratings feed the rolling average.
	HistoryWindow = 10
)

// DifficultyFor maps an average rating to a tier. An average of 0 means
// the card has no history yet and counts as medium.
func DifficultyFor(average float64) Difficulty {
	switch {
	case average == 0:
		return DifficultyMedium
	case average >= EasyAverage:
		return DifficultyEasy
	case average >= MediumAverage:
		return DifficultyMedium
	default:
		return DifficultyHard
	}
}

// AverageRating returns the mean of the last HistoryWindow ratings, or 0
// when history is empty. history is ordered oldest first.
func AverageRating(history []int) float64 {
	if len(history) > HistoryWindow {
		history = history[len(history)-HistoryWindow:]
	}
	if len(history) == 0 {
		return 0
	}
	sum := 0
	for _, r := range history {
		sum += r
	}
	return float64(sum) / float64(len(history))
}

// Calculator turns study events into XP amounts. It holds no state beyond
// its validated configuration.
type Calculator struct {
	cfg Config
}

// NewCalculator validates cfg and returns a Calculator for it.
func NewCalculator(cfg Config) (*Calculator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{cfg: cfg}, nil
}

// Config returns the configuration the calculator was built with.
func (c *Calculator) Config() Config {
	return c.cfg
}

// QualityMultiplier returns the multiplier for a 1..5 rating.
func (c *Calculator) QualityMultiplier(rating int) (float64, error) {
	if rating < 1 || rating > 5 {
		return 0, &ErrInvalidRating{Rating: rating}
	}
	return c.cfg.QualityMultipliers[rating-1], nil
}

// DifficultyMultiplier returns the multiplier for a difficulty tier.
func (c *Calculator) DifficultyMultiplier(d Difficulty) float64 {
	switch d {
	case DifficultyEasy:
		return c.cfg.DifficultyMultipliers.Easy
	case DifficultyHard:
		return c.cfg.DifficultyMultipliers.Hard
	default:
		return c.cfg.DifficultyMultipliers.Medium
	}
}

// StreakMultiplier returns the multiplier of the highest tier reached.
// Tiers do not stack.
func (c *Calculator) StreakMultiplier(streakDays int) float64 {
	m := 1.0
	for _, tier := range c.cfg.StreakTiers {
		if streakDays < tier.MinDays {
			break
		}
		m = tier.Multiplier
	}
	return m
}

// ComputeCardXP returns round(baseXP × quality × difficulty × streak).
// cardAverage is the card's rolling average rating, 0 for a new card.
func (c *Calculator) ComputeCardXP(baseXP, rating, streakDays int, cardAverage float64) (int, error) {
	if baseXP < 0 {
		return 0, &ErrNegativeValue{Field: "base xp", Value: baseXP}
	}
	if streakDays < 0 {
		return 0, &ErrNegativeValue{Field: "streak days", Value: streakDays}
	}
	quality, err := c.QualityMultiplier(rating)
	if err != nil {
		return 0, err
	}
	difficulty := c.DifficultyMultiplier(DifficultyFor(cardAverage))
	streak := c.StreakMultiplier(streakDays)

	return int(math.Round(float64(baseXP) * quality * difficulty * streak)), nil
}

// CardXP computes the XP for one answer using the configured per-card base
// and the card's rating history before this answer.
func (c *Calculator) CardXP(rating, streakDays int, history []int) (int, error) {
	return c.ComputeCardXP(c.cfg.BaseXPPerCard, rating, streakDays, AverageRating(history))
}

// SessionXP is the flat bonus granted once per study session.
func (c *Calculator) SessionXP() int { return c.cfg.BaseXPPerSession }

// CreatedCardXP is the flat reward for authoring a card.
func (c *Calculator) CreatedCardXP() int { return c.cfg.BaseXPPerCreatedCard }

// AchievementXP is the flat bonus for unlocking an achievement. It skips
// the multiplier chain but still counts against the daily cap.
func (c *Calculator) AchievementXP() int { return c.cfg.BaseXPPerAchievement }

// NewDailyBudget starts a budget for a user who already earned
// earnedToday XP in the current UTC day.
func (c *Calculator) NewDailyBudget(earnedToday int) (*DailyBudget, error) {
	if earnedToday < 0 {
		return nil, &ErrNegativeValue{Field: "earned today", Value: earnedToday}
	}
	return &DailyBudget{max: c.cfg.MaxDailyXP, earned: earnedToday}, nil
}
