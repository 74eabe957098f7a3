package stats

import (
	"fmt"
	"time"
)

// UserStatistics is the per-user aggregate that every study event updates.
type UserStatistics struct {
	UserID         string        `json:"user_id"`
	TotalXP        int           `json:"total_xp"`
	CurrentStreak  int           `json:"current_streak"`
	BestStreak     int           `json:"best_streak"`
	LastStudyDate  time.Time     `json:"last_study_date"` // UTC date; zero when the user never studied
	TotalStudyTime time.Duration `json:"total_study_time"`
	CardsStudied   int           `json:"cards_studied"`
	CardsCreated   int           `json:"cards_created"`
	PerfectStreak  int           `json:"perfect_streak"` // consecutive answers rated 5
	JoinedAt       time.Time     `json:"joined_at"`

	// Version is the optimistic lock token checked when the row is saved.
	Version int64 `json:"-"`
}

// New returns empty statistics for a user who joined at joinedAt.
func New(userID string, joinedAt time.Time) UserStatistics {
	return UserStatistics{UserID: userID, JoinedAt: joinedAt.UTC()}
}

// StudyHours returns the whole hours of accumulated study time.
func (s UserStatistics) StudyHours() int {
	return int(s.TotalStudyTime / time.Hour)
}

// HasStudied reports whether at least one study event was recorded.
func (s UserStatistics) HasStudied() bool {
	return !s.LastStudyDate.IsZero()
}

// Validate checks the aggregate invariants.
func (s UserStatistics) Validate() error {
	switch {
	case s.TotalXP < 0:
		return fmt.Errorf("total xp is negative: %d", s.TotalXP)
	case s.CurrentStreak < 0:
		return fmt.Errorf("current streak is negative: %d", s.CurrentStreak)
	case s.BestStreak < s.CurrentStreak:
		return fmt.Errorf("best streak %d is below current streak %d", s.BestStreak, s.CurrentStreak)
	case s.TotalStudyTime < 0:
		return fmt.Errorf("study time is negative: %s", s.TotalStudyTime)
	case s.CardsStudied < 0, s.CardsCreated < 0, s.PerfectStreak < 0:
		return fmt.Errorf("card counters must not be negative")
	}
	return nil
}
