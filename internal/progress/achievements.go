package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/flashiz/internal/achievements"
	"github.com/abhisek/flashiz/internal/rewards"
	"github.com/abhisek/flashiz/internal/stats"
	"github.com/abhisek/flashiz/internal/store"
)

// Unlock is an achievement granted by an operation.
type Unlock struct {
	Definition achievements.Definition
	BonusXP    int // after the daily cap
	UnlockedAt time.Time
}

// unlockAchievements grants every newly satisfied achievement. Bonus XP can
// satisfy further XP or level achievements, so evaluation repeats until a
// pass unlocks nothing.
func (s *Service) unlockAchievements(ctx context.Context, r store.Repos, st *stats.UserStatistics, budget *rewards.DailyBudget, at time.Time) ([]Unlock, error) {
	owned, err := r.Achievements.Unlocked(ctx, st.UserID)
	if err != nil {
		return nil, err
	}
	set := achievements.NewUnlockedSet()
	for id := range owned {
		set.Add(id)
	}

	var out []Unlock
	for {
		newly, err := s.eval.CheckUnlocked(*st, set)
		if err != nil {
			return nil, err
		}
		if len(newly) == 0 {
			return out, nil
		}
		for _, d := range newly {
			set.Add(d.ID)
			created, err := r.Achievements.Unlock(ctx, st.UserID, d.ID, at)
			if err != nil {
				return nil, fmt.Errorf("unlock %s: %w", d.ID, err)
			}
			if !created {
				continue
			}
			bonus, err := grant(ctx, r, st, budget, store.SourceAchievement, d.ID, s.calc.AchievementXP(), at)
			if err != nil {
				return nil, err
			}
			out = append(out, Unlock{Definition: d, BonusXP: bonus, UnlockedAt: at})
		}
	}
}

// CheckAchievements re-evaluates a user's statistics against the catalog
// and grants anything satisfied but not yet recorded. Running it twice is
// harmless: the second run finds nothing.
func (s *Service) CheckAchievements(ctx context.Context, userID string) ([]Unlock, error) {
	at := s.now().UTC()

	var unlocks []Unlock
	err := s.withRetry(ctx, "check achievements", func(r store.Repos) error {
		unlocks = nil

		st, err := loadStats(ctx, r, userID)
		if err != nil {
			return err
		}
		budget, err := s.budgetFor(ctx, r, userID, at)
		if err != nil {
			return err
		}
		unlocks, err = s.unlockAchievements(ctx, r, &st, budget, at)
		if err != nil {
			return err
		}
		if len(unlocks) == 0 {
			return nil
		}
		_, err = r.Stats.Save(ctx, st)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publishUnlocks(userID, unlocks)
	return unlocks, nil
}
