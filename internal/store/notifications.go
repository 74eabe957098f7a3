package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

type notificationRepo struct {
	q querier
}

func (r *notificationRepo) Append(ctx context.Context, n Notification) error {
	query, args := builder().Insert("notifications").
		Columns("user_id", "kind", "achievement_id", "title", "body", "icon", "rarity", "bonus_xp", "created_at").
		Values(n.UserID, n.Kind, nullString(n.AchievementID), n.Title, n.Body, n.Icon, n.Rarity, n.BonusXP, n.CreatedAt.UTC()).
		Query()
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (r *notificationRepo) List(ctx context.Context, userID string, opts QueryOpts) ([]Notification, error) {
	preds := []*entsql.Predicate{entsql.EQ("user_id", userID)}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("created_at", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("created_at", opts.To.UTC()))
	}

	sel := builder().Select("id", "user_id", "kind", "achievement_id", "title", "body", "icon", "rarity", "bonus_xp", "created_at").
		From(entsql.Table("notifications")).
		Where(entsql.And(preds...)).
		OrderBy(entsql.Desc("created_at"), entsql.Desc("id"))
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var (
			n             Notification
			achievementID sql.NullString
		)
		err := rows.Scan(&n.ID, &n.UserID, &n.Kind, &achievementID, &n.Title, &n.Body, &n.Icon, &n.Rarity, &n.BonusXP, &n.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		if achievementID.Valid {
			id := achievementID.String
			n.AchievementID = &id
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
