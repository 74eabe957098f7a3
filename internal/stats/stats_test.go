package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStudyHours(t *testing.T) {
	s := UserStatistics{TotalStudyTime: 2*time.Hour + 59*time.Minute}
	assert.Equal(t, 2, s.StudyHours())
}

func TestHasStudied(t *testing.T) {
	s := New("u1", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	assert.False(t, s.HasStudied())

	s.LastStudyDate = time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	assert.True(t, s.HasStudied())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		stats   UserStatistics
		wantErr bool
	}{
		{"zero value", UserStatistics{}, false},
		{"best above current", UserStatistics{CurrentStreak: 3, BestStreak: 5}, false},
		{"negative xp", UserStatistics{TotalXP: -1}, true},
		{"negative streak", UserStatistics{CurrentStreak: -1}, true},
		{"best below current", UserStatistics{CurrentStreak: 4, BestStreak: 2}, true},
		{"negative study time", UserStatistics{TotalStudyTime: -time.Second}, true},
		{"negative cards", UserStatistics{CardsStudied: -2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.stats.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
