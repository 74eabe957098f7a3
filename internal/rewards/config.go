package rewards

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// StreakTier grants Multiplier once the daily streak reaches MinDays.
type StreakTier struct {
	MinDays    int     `json:"min_days"`
	Multiplier float64 `json:"multiplier"`
}

// DifficultyMultipliers scale card XP by how hard the card has been so far.
type DifficultyMultipliers struct {
	Easy   float64 `json:"easy"`
	Medium float64 `json:"medium"`
	Hard   float64 `json:"hard"`
}

// Config holds every tunable number of the reward engine.
type Config struct {
	BaseXPPerCard        int `json:"base_xp_per_card"`
	BaseXPPerSession     int `json:"base_xp_per_session"`
	BaseXPPerCreatedCard int `json:"base_xp_per_created_card"`
	BaseXPPerAchievement int `json:"base_xp_per_achievement"`

	// MaxDailyXP caps everything a user can earn within one UTC day.
	MaxDailyXP int `json:"max_daily_xp"`

	// QualityMultipliers is indexed by rating-1.
	QualityMultipliers    [5]float64            `json:"quality_multipliers"`
	DifficultyMultipliers DifficultyMultipliers `json:"difficulty_multipliers"`

	// StreakTiers must be sorted by MinDays; the first tier starts at 0.
	StreakTiers []StreakTier `json:"streak_tiers"`

	// LevelBaseXP is the cost of leaving level 1; level N costs N times that.
	LevelBaseXP int `json:"level_base_xp"`
}

// DefaultConfig returns the stock reward tables.
func DefaultConfig() Config {
	return Config{
		BaseXPPerCard:        10,
		BaseXPPerSession:     20,
		BaseXPPerCreatedCard: 5,
		BaseXPPerAchievement: 50,
		MaxDailyXP:           1000,
		QualityMultipliers:   [5]float64{0.5, 0.7, 1.0, 1.2, 1.5},
		DifficultyMultipliers: DifficultyMultipliers{
			Easy:   0.8,
			Medium: 1.0,
			Hard:   1.5,
		},
		StreakTiers: []StreakTier{
			{MinDays: 0, Multiplier: 1.0},
			{MinDays: 7, Multiplier: 1.1},
			{MinDays: 14, Multiplier: 1.25},
			{MinDays: 30, Multiplier: 1.5},
		},
		LevelBaseXP: 100,
	}
}

// LoadConfig builds a Config from defaults, an optional JSON file and
// environment overrides, then validates it.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, &ErrInvalidConfig{Field: "file", Reason: "read " + path, Err: err}
		}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, &ErrInvalidConfig{Field: "file", Reason: "decode " + path, Err: err}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	overrides := []struct {
		env    string
		target *int
	}{
		{"FLASHIZ_XP_PER_CARD", &c.BaseXPPerCard},
		{"FLASHIZ_XP_PER_SESSION", &c.BaseXPPerSession},
		{"FLASHIZ_XP_PER_CREATED_CARD", &c.BaseXPPerCreatedCard},
		{"FLASHIZ_XP_PER_ACHIEVEMENT", &c.BaseXPPerAchievement},
		{"FLASHIZ_MAX_DAILY_XP", &c.MaxDailyXP},
		{"FLASHIZ_LEVEL_BASE_XP", &c.LevelBaseXP},
	}
	for _, o := range overrides {
		v := os.Getenv(o.env)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return &ErrInvalidConfig{Field: o.env, Reason: "not an integer", Err: err}
		}
		*o.target = n
	}
	return nil
}

// Validate checks the tables for values the calculator cannot work with.
func (c Config) Validate() error {
	bases := []struct {
		name  string
		value int
	}{
		{"base_xp_per_card", c.BaseXPPerCard},
		{"base_xp_per_session", c.BaseXPPerSession},
		{"base_xp_per_created_card", c.BaseXPPerCreatedCard},
		{"base_xp_per_achievement", c.BaseXPPerAchievement},
	}
	for _, b := range bases {
		if b.value < 0 {
			return &ErrInvalidConfig{Field: b.name, Reason: fmt.Sprintf("must not be negative, got %d", b.value)}
		}
	}
	if c.MaxDailyXP <= 0 {
		return &ErrInvalidConfig{Field: "max_daily_xp", Reason: "must be positive"}
	}
	if c.LevelBaseXP <= 0 {
		return &ErrInvalidConfig{Field: "level_base_xp", Reason: "must be positive"}
	}

	for i, m := range c.QualityMultipliers {
		if m <= 0 {
			return &ErrInvalidConfig{Field: "quality_multipliers", Reason: fmt.Sprintf("rating %d multiplier must be positive", i+1)}
		}
		if i > 0 && m <= c.QualityMultipliers[i-1] {
			return &ErrInvalidConfig{Field: "quality_multipliers", Reason: "must strictly increase with the rating"}
		}
	}

	d := c.DifficultyMultipliers
	if d.Easy <= 0 || d.Medium <= 0 || d.Hard <= 0 {
		return &ErrInvalidConfig{Field: "difficulty_multipliers", Reason: "all tiers must be positive"}
	}

	if len(c.StreakTiers) == 0 {
		return &ErrInvalidConfig{Field: "streak_tiers", Reason: "at least one tier is required"}
	}
	if c.StreakTiers[0].MinDays != 0 {
		return &ErrInvalidConfig{Field: "streak_tiers", Reason: "first tier must start at 0 days"}
	}
	for i, tier := range c.StreakTiers {
		if tier.Multiplier <= 0 {
			return &ErrInvalidConfig{Field: "streak_tiers", Reason: fmt.Sprintf("tier %d multiplier must be positive", i)}
		}
		if i > 0 && tier.MinDays <= c.StreakTiers[i-1].MinDays {
			return &ErrInvalidConfig{Field: "streak_tiers", Reason: "tiers must be sorted by min_days without duplicates"}
		}
	}
	return nil
}
