package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type ledgerRepo struct {
	q   querier
	seq *sequenceCounter
}

func (r *ledgerRepo) Append(ctx context.Context, e LedgerEntry) error {
	if e.Amount < 0 {
		return fmt.Errorf("ledger amount must not be negative, got %d", e.Amount)
	}
	seqNum, err := r.seq.Next(ctx, r.q)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert("xp_ledger").
		Columns("sequence", "user_id", "source", "ref", "amount", "day", "earned_at").
		Values(seqNum, e.UserID, string(e.Source), e.Ref, e.Amount, dayKey(e.EarnedAt), e.EarnedAt.UTC()).
		Query()
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

func (r *ledgerRepo) EarnedOn(ctx context.Context, userID string, day time.Time) (int, error) {
	query, args := builder().Select("COALESCE(SUM(amount), 0)").
		From(entsql.Table("xp_ledger")).
		Where(entsql.And(entsql.EQ("user_id", userID), entsql.EQ("day", dayKey(day)))).
		Query()

	var total int
	if err := r.q.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum ledger: %w", err)
	}
	return total, nil
}
