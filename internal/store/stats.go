package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/flashiz/internal/stats"
)

var statsColumns = []string{
	"user_id", "total_xp", "current_streak", "best_streak", "last_study_date",
	"study_seconds", "cards_studied", "cards_created", "perfect_streak",
	"joined_at", "version",
}

type statsRepo struct {
	q querier
}

func (r *statsRepo) Create(ctx context.Context, s stats.UserStatistics) error {
	query, args := builder().Insert("user_stats").
		Columns(statsColumns...).
		Values(
			s.UserID, s.TotalXP, s.CurrentStreak, s.BestStreak, nullDate(s.LastStudyDate),
			int64(s.TotalStudyTime/time.Second), s.CardsStudied, s.CardsCreated, s.PerfectStreak,
			s.JoinedAt.UTC(), int64(0),
		).
		Query()
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert user stats: %w", err)
	}
	return nil
}

func (r *statsRepo) Get(ctx context.Context, userID string) (stats.UserStatistics, error) {
	query, args := builder().Select(statsColumns...).
		From(entsql.Table("user_stats")).
		Where(entsql.EQ("user_id", userID)).
		Query()

	s, err := scanStats(r.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return stats.UserStatistics{}, ErrNotFound
	}
	if err != nil {
		return stats.UserStatistics{}, fmt.Errorf("query user stats: %w", err)
	}
	return s, nil
}

func (r *statsRepo) Save(ctx context.Context, s stats.UserStatistics) (int64, error) {
	if err := s.Validate(); err != nil {
		return 0, fmt.Errorf("save user stats: %w", err)
	}

	next := s.Version + 1
	query, args := builder().Update("user_stats").
		Set("total_xp", s.TotalXP).
		Set("current_streak", s.CurrentStreak).
		Set("best_streak", s.BestStreak).
		Set("last_study_date", nullDate(s.LastStudyDate)).
		Set("study_seconds", int64(s.TotalStudyTime/time.Second)).
		Set("cards_studied", s.CardsStudied).
		Set("cards_created", s.CardsCreated).
		Set("perfect_streak", s.PerfectStreak).
		Set("version", next).
		Where(entsql.And(
			entsql.EQ("user_id", s.UserID),
			entsql.EQ("version", s.Version),
			// Total XP never goes down.
			entsql.LTE("total_xp", s.TotalXP),
		)).
		Query()

	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("update user stats: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update user stats: %w", err)
	}
	if n == 0 {
		return 0, ErrConflict
	}
	return next, nil
}

func (r *statsRepo) StudiedOn(ctx context.Context, day time.Time) ([]stats.UserStatistics, error) {
	query, args := builder().Select(statsColumns...).
		From(entsql.Table("user_stats")).
		Where(entsql.EQ("last_study_date", dateOf(day))).
		OrderBy("user_id").
		Query()

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query user stats: %w", err)
	}
	defer rows.Close()

	var out []stats.UserStatistics
	for rows.Next() {
		s, err := scanStats(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user stats: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStats(row rowScanner) (stats.UserStatistics, error) {
	var (
		s            stats.UserStatistics
		lastStudy    sql.NullTime
		studySeconds int64
	)
	err := row.Scan(
		&s.UserID, &s.TotalXP, &s.CurrentStreak, &s.BestStreak, &lastStudy,
		&studySeconds, &s.CardsStudied, &s.CardsCreated, &s.PerfectStreak,
		&s.JoinedAt, &s.Version,
	)
	if err != nil {
		return stats.UserStatistics{}, err
	}
	if lastStudy.Valid {
		s.LastStudyDate = dateOf(lastStudy.Time)
	}
	s.TotalStudyTime = time.Duration(studySeconds) * time.Second
	s.JoinedAt = s.JoinedAt.UTC()
	return s, nil
}

// dateOf truncates t to its UTC calendar date.
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func nullDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return dateOf(t)
}
