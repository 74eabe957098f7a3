package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type achievementRepo struct {
	q querier
}

func (r *achievementRepo) Seed(ctx context.Context, defs []AchievementRecord) error {
	if len(defs) == 0 {
		return nil
	}
	ins := builder().Insert("achievements").
		Columns("id", "name", "description", "icon", "condition", "threshold", "rarity")
	for _, d := range defs {
		ins = ins.Values(d.ID, d.Name, d.Description, d.Icon, d.Condition, d.Threshold, d.Rarity)
	}
	query, args := ins.
		OnConflict(entsql.ConflictColumns("id"), entsql.DoNothing()).
		Query()
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("seed achievements: %w", err)
	}
	return nil
}

func (r *achievementRepo) Unlock(ctx context.Context, userID, achievementID string, at time.Time) (bool, error) {
	query, args := builder().Insert("user_achievements").
		Columns("user_id", "achievement_id", "unlocked_at").
		Values(userID, achievementID, at.UTC()).
		OnConflict(entsql.ConflictColumns("user_id", "achievement_id"), entsql.DoNothing()).
		Query()

	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("insert user achievement: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert user achievement: %w", err)
	}
	return n == 1, nil
}

func (r *achievementRepo) Unlocked(ctx context.Context, userID string) (map[string]time.Time, error) {
	query, args := builder().Select("achievement_id", "unlocked_at").
		From(entsql.Table("user_achievements")).
		Where(entsql.EQ("user_id", userID)).
		Query()

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query user achievements: %w", err)
	}
	defer rows.Close()

	out := make(map[string]time.Time)
	for rows.Next() {
		var (
			id string
			at time.Time
		)
		if err := rows.Scan(&id, &at); err != nil {
			return nil, fmt.Errorf("scan user achievement: %w", err)
		}
		out[id] = at
	}
	return out, rows.Err()
}
