package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/flashiz/internal/level"
	"github.com/abhisek/flashiz/internal/rewards"
	"github.com/abhisek/flashiz/internal/stats"
	"github.com/abhisek/flashiz/internal/store"
	"github.com/abhisek/flashiz/internal/streak"
)

// Answer is one rated card in a session.
type Answer struct {
	CardID string
	Rating int
}

// SessionInput describes a finished study session.
type SessionInput struct {
	SessionID string // generated when empty
	Answers   []Answer
	Duration  time.Duration
	At        time.Time // defaults to now
}

// CardAward is the outcome of one answer.
type CardAward struct {
	CardID     string
	Rating     int
	Difficulty rewards.Difficulty
	XP         int // after the daily cap
}

// SessionResult summarizes what a session earned.
type SessionResult struct {
	SessionID       string
	Cards           []CardAward
	CardXP          int
	SessionXP       int
	BonusXP         int
	Capped          int // XP withheld by the daily cap
	Streak          int
	StreakIncreased bool
	Before          level.Progress
	After           level.Progress
	Unlocked        []Unlock
	Stats           stats.UserStatistics
}

// TotalXP is everything the session awarded.
func (r *SessionResult) TotalXP() int {
	return r.CardXP + r.SessionXP + r.BonusXP
}

// LeveledUp reports whether the session crossed a level threshold.
func (r *SessionResult) LeveledUp() bool {
	return r.After.Level > r.Before.Level
}

func (in SessionInput) validate() error {
	if len(in.Answers) == 0 {
		return ErrEmptySession
	}
	if in.Duration < 0 {
		return &rewards.ErrNegativeValue{Field: "duration seconds", Value: int(in.Duration / time.Second)}
	}
	for _, a := range in.Answers {
		if a.Rating < 1 || a.Rating > 5 {
			return &rewards.ErrInvalidRating{Rating: a.Rating}
		}
		if a.CardID == "" {
			return errors.New("answer without card id")
		}
	}
	return nil
}

// RecordSession applies a finished session to the user's progress in one
// transaction. The streak advances at most once per session; every answer
// earns XP from its card's history before the answer and is followed by an
// achievement check; the session bonus is granted once. Unlock notifications
// go out only after the commit.
func (s *Service) RecordSession(ctx context.Context, userID string, in SessionInput) (*SessionResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if in.At.IsZero() {
		in.At = s.now()
	}
	in.At = in.At.UTC()
	if in.SessionID == "" {
		in.SessionID = uuid.NewString()
	}

	var res *SessionResult
	err := s.withRetry(ctx, "record session", func(r store.Repos) error {
		var err error
		res, err = s.recordSession(ctx, r, userID, in)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("session recorded",
		"user", userID, "session", res.SessionID, "cards", len(res.Cards),
		"xp", res.TotalXP(), "capped", res.Capped, "streak", res.Streak,
		"level", res.After.Level, "unlocked", len(res.Unlocked))
	s.publishUnlocks(userID, res.Unlocked)
	return res, nil
}

func (s *Service) recordSession(ctx context.Context, r store.Repos, userID string, in SessionInput) (*SessionResult, error) {
	st, err := loadStats(ctx, r, userID)
	if err != nil {
		return nil, err
	}
	budget, err := s.budgetFor(ctx, r, userID, in.At)
	if err != nil {
		return nil, err
	}

	res := &SessionResult{SessionID: in.SessionID}
	if res.Before, err = s.curve.Resolve(st.TotalXP); err != nil {
		return nil, err
	}

	today := streak.Date(in.At)
	st.CurrentStreak, res.StreakIncreased = streak.Update(st.LastStudyDate, today, st.CurrentStreak)
	st.BestStreak = streak.Best(st.BestStreak, st.CurrentStreak)
	if !today.Before(st.LastStudyDate) {
		st.LastStudyDate = today
	}
	res.Streak = st.CurrentStreak

	for _, a := range in.Answers {
		if _, err := r.Cards.Get(ctx, userID, a.CardID); err != nil {
			return nil, fmt.Errorf("card %s: %w", a.CardID, err)
		}
		history, err := r.Cards.RatingHistory(ctx, a.CardID, rewards.HistoryWindow)
		if err != nil {
			return nil, err
		}
		xp, err := s.calc.CardXP(a.Rating, st.CurrentStreak, history)
		if err != nil {
			return nil, err
		}
		awarded, err := grant(ctx, r, &st, budget, store.SourceCard, a.CardID, xp, in.At)
		if err != nil {
			return nil, err
		}
		err = r.Cards.AppendReview(ctx, store.Review{
			CardID:     a.CardID,
			SessionID:  in.SessionID,
			Rating:     a.Rating,
			XP:         awarded,
			ReviewedAt: in.At,
		})
		if err != nil {
			return nil, err
		}

		st.CardsStudied++
		if a.Rating == 5 {
			st.PerfectStreak++
		} else {
			st.PerfectStreak = 0
		}
		res.CardXP += awarded
		res.Cards = append(res.Cards, CardAward{
			CardID:     a.CardID,
			Rating:     a.Rating,
			Difficulty: rewards.DifficultyFor(rewards.AverageRating(history)),
			XP:         awarded,
		})

		// A lower rating later in the session resets the perfect streak, so
		// each answer is checked while its counters are current.
		unlocked, err := s.unlockAchievements(ctx, r, &st, budget, in.At)
		if err != nil {
			return nil, err
		}
		res.Unlocked = append(res.Unlocked, unlocked...)
	}

	if res.SessionXP, err = grant(ctx, r, &st, budget, store.SourceSession, in.SessionID, s.calc.SessionXP(), in.At); err != nil {
		return nil, err
	}
	st.TotalStudyTime += in.Duration

	unlocked, err := s.unlockAchievements(ctx, r, &st, budget, in.At)
	if err != nil {
		return nil, err
	}
	res.Unlocked = append(res.Unlocked, unlocked...)
	for _, u := range res.Unlocked {
		res.BonusXP += u.BonusXP
	}

	if st.Version, err = r.Stats.Save(ctx, st); err != nil {
		return nil, err
	}
	if res.After, err = s.curve.Resolve(st.TotalXP); err != nil {
		return nil, err
	}
	res.Capped = budget.Capped()
	res.Stats = st
	return res, nil
}
