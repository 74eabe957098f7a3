package rewards

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Valid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"negative card base", func(c *Config) { c.BaseXPPerCard = -1 }, "base_xp_per_card"},
		{"negative achievement base", func(c *Config) { c.BaseXPPerAchievement = -1 }, "base_xp_per_achievement"},
		{"zero cap", func(c *Config) { c.MaxDailyXP = 0 }, "max_daily_xp"},
		{"zero level base", func(c *Config) { c.LevelBaseXP = 0 }, "level_base_xp"},
		{"zero quality", func(c *Config) { c.QualityMultipliers[0] = 0 }, "quality_multipliers"},
		{"unordered quality", func(c *Config) { c.QualityMultipliers[4] = 1.1 }, "quality_multipliers"},
		{"zero difficulty", func(c *Config) { c.DifficultyMultipliers.Hard = 0 }, "difficulty_multipliers"},
		{"no tiers", func(c *Config) { c.StreakTiers = nil }, "streak_tiers"},
		{"first tier not zero", func(c *Config) { c.StreakTiers[0].MinDays = 1 }, "streak_tiers"},
		{"unsorted tiers", func(c *Config) { c.StreakTiers[2].MinDays = 7 }, "streak_tiers"},
		{"zero tier multiplier", func(c *Config) { c.StreakTiers[1].Multiplier = 0 }, "streak_tiers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			var cfgErr *ErrInvalidConfig
			require.True(t, errors.As(err, &cfgErr), "got %v", err)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rewards.json")
	body := `{"base_xp_per_card": 12, "max_daily_xp": 500,
		"streak_tiers": [{"min_days": 0, "multiplier": 1}, {"min_days": 3, "multiplier": 1.2}]}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	t.Setenv("FLASHIZ_MAX_DAILY_XP", "750")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.BaseXPPerCard)
	assert.Equal(t, 750, cfg.MaxDailyXP)
	assert.Len(t, cfg.StreakTiers, 2)
	assert.Equal(t, DefaultConfig().QualityMultipliers, cfg.QualityMultipliers)
}

func TestLoadConfig_RejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rewards.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"xp_per_card": 12}`), 0o644))

	_, err := LoadConfig(path)
	var cfgErr *ErrInvalidConfig
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "file", cfgErr.Field)
}

func TestLoadConfig_BadEnv(t *testing.T) {
	t.Setenv("FLASHIZ_XP_PER_CARD", "ten")
	_, err := LoadConfig("")
	var cfgErr *ErrInvalidConfig
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "FLASHIZ_XP_PER_CARD", cfgErr.Field)
}
