package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

type cardRepo struct {
	q   querier
	seq *sequenceCounter
}

func (r *cardRepo) Create(ctx context.Context, c Card) error {
	query, args := builder().Insert("cards").
		Columns("id", "user_id", "front", "back", "created_at").
		Values(c.ID, c.UserID, c.Front, c.Back, c.CreatedAt.UTC()).
		Query()
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert card: %w", err)
	}
	return nil
}

func (r *cardRepo) Get(ctx context.Context, userID, cardID string) (*Card, error) {
	query, args := builder().Select("id", "user_id", "front", "back", "created_at").
		From(entsql.Table("cards")).
		Where(entsql.And(entsql.EQ("id", cardID), entsql.EQ("user_id", userID))).
		Query()

	var c Card
	err := r.q.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.UserID, &c.Front, &c.Back, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query card: %w", err)
	}
	return &c, nil
}

func (r *cardRepo) List(ctx context.Context, userID string) ([]Card, error) {
	query, args := builder().Select("id", "user_id", "front", "back", "created_at").
		From(entsql.Table("cards")).
		Where(entsql.EQ("user_id", userID)).
		OrderBy("created_at", "id").
		Query()

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	var cards []Card
	for rows.Next() {
		var c Card
		if err := rows.Scan(&c.ID, &c.UserID, &c.Front, &c.Back, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (r *cardRepo) AppendReview(ctx context.Context, rv Review) error {
	seqNum, err := r.seq.Next(ctx, r.q)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert("card_reviews").
		Columns("sequence", "card_id", "session_id", "rating", "xp", "reviewed_at").
		Values(seqNum, rv.CardID, rv.SessionID, rv.Rating, rv.XP, rv.ReviewedAt.UTC()).
		Query()
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert card review: %w", err)
	}
	return nil
}

func (r *cardRepo) RatingHistory(ctx context.Context, cardID string, limit int) ([]int, error) {
	sel := builder().Select("rating").
		From(entsql.Table("card_reviews")).
		Where(entsql.EQ("card_id", cardID)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query rating history: %w", err)
	}
	defer rows.Close()

	var newestFirst []int
	for rows.Next() {
		var rating int
		if err := rows.Scan(&rating); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		newestFirst = append(newestFirst, rating)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	history := make([]int, len(newestFirst))
	for i, rating := range newestFirst {
		history[len(newestFirst)-1-i] = rating
	}
	return history, nil
}
