package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/flashiz/internal/achievements"
	"github.com/abhisek/flashiz/internal/level"
	"github.com/abhisek/flashiz/internal/notify"
	"github.com/abhisek/flashiz/internal/stats"
	"github.com/abhisek/flashiz/internal/streak"
)

// AchievementProgress is one catalog entry as seen by a user.
type AchievementProgress struct {
	achievements.Status
	UnlockedAt    time.Time // zero while locked
	EstimatedDays int       // 0 when unlocked or no estimate is possible
	Message       string    // empty once unlocked
}

// Overview is a user's progress at a point in time.
type Overview struct {
	Stats           stats.UserStatistics
	EffectiveStreak int  // 0 once the streak is broken
	StreakAtRisk    bool // studied yesterday, not yet today
	Level           level.Progress
	EarnedToday     int
	DailyCap        int
	Achievements    []AchievementProgress
}

// Overview computes the progress report shown by the stats and
// achievements commands.
func (s *Service) Overview(ctx context.Context, userID string) (*Overview, error) {
	now := s.now().UTC()
	r := s.store.Repos()

	st, err := loadStats(ctx, r, userID)
	if err != nil {
		return nil, err
	}
	owned, err := r.Achievements.Unlocked(ctx, userID)
	if err != nil {
		return nil, err
	}
	earned, err := r.Ledger.EarnedOn(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	today := streak.Date(now)
	ov := &Overview{
		Stats:           st,
		EffectiveStreak: streak.Effective(st.CurrentStreak, st.LastStudyDate, today),
		StreakAtRisk:    streak.AtRisk(st.LastStudyDate, today),
		EarnedToday:     earned,
		DailyCap:        s.calc.Config().MaxDailyXP,
	}
	if ov.Level, err = s.curve.Resolve(st.TotalXP); err != nil {
		return nil, err
	}

	// A broken streak no longer counts toward streak achievements.
	view := st
	view.CurrentStreak = ov.EffectiveStreak

	set := achievements.NewUnlockedSet()
	for id := range owned {
		set.Add(id)
	}
	for _, d := range s.eval.Catalog() {
		status, err := s.eval.Progress(d, view, set)
		if err != nil {
			return nil, err
		}
		ap := AchievementProgress{Status: status, UnlockedAt: owned[d.ID]}
		if !status.Unlocked {
			if ap.EstimatedDays, err = s.est.EstimateDaysToComplete(d.Condition, status.Remaining, view, now); err != nil {
				return nil, err
			}
			if ap.Message, err = achievements.GenerateMotivationalMessage(d.Condition, status.Remaining, d.Name); err != nil {
				return nil, err
			}
		}
		ov.Achievements = append(ov.Achievements, ap)
	}
	return ov, nil
}

// StreakReminders publishes a reminder to every user who studied
// yesterday but not yet today, naming their closest locked achievement.
// It returns the events it built.
func (s *Service) StreakReminders(ctx context.Context) ([]notify.Event, error) {
	now := s.now().UTC()
	today := streak.Date(now)

	candidates, err := s.store.Repos().Stats.StudiedOn(ctx, today.AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}

	var events []notify.Event
	for _, st := range candidates {
		if !streak.AtRisk(st.LastStudyDate, today) {
			continue
		}
		e, err := s.reminderFor(ctx, st, now)
		if err != nil {
			s.logger.Error("build streak reminder", "user", st.UserID, "error", err)
			continue
		}
		if !s.notifier.Publish(e) {
			s.logger.Debug("streak reminder not queued", "user", st.UserID)
		}
		events = append(events, e)
	}

	s.logger.Info("streak reminders sent", "count", len(events))
	return events, nil
}

func (s *Service) reminderFor(ctx context.Context, st stats.UserStatistics, now time.Time) (notify.Event, error) {
	e := notify.Event{
		Kind:      notify.KindReminder,
		UserID:    st.UserID,
		Title:     fmt.Sprintf("Your %d-day streak ends tonight", st.CurrentStreak),
		Body:      "Study one card today to keep it going.",
		Icon:      "🔥",
		CreatedAt: now,
	}

	owned, err := s.store.Repos().Achievements.Unlocked(ctx, st.UserID)
	if err != nil {
		return e, err
	}
	set := achievements.NewUnlockedSet()
	for id := range owned {
		set.Add(id)
	}
	closest, ok, err := s.eval.Closest(st, set)
	if err != nil || !ok {
		return e, err
	}
	msg, err := achievements.GenerateMotivationalMessage(closest.Definition.Condition, closest.Remaining, closest.Definition.Name)
	if err != nil {
		return e, err
	}
	e.AchievementID = closest.Definition.ID
	e.Body = msg
	return e, nil
}
