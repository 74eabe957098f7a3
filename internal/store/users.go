package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

type userRepo struct {
	q querier
}

func (r *userRepo) Create(ctx context.Context, u User) error {
	query, args := builder().Insert("users").
		Columns("id", "name", "created_at").
		Values(u.ID, u.Name, u.CreatedAt.UTC()).
		Query()
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepo) Get(ctx context.Context, id string) (*User, error) {
	return r.getBy(ctx, entsql.EQ("id", id))
}

func (r *userRepo) GetByName(ctx context.Context, name string) (*User, error) {
	return r.getBy(ctx, entsql.EQ("name", name))
}

func (r *userRepo) getBy(ctx context.Context, p *entsql.Predicate) (*User, error) {
	query, args := builder().Select("id", "name", "created_at").
		From(entsql.Table("users")).
		Where(p).
		Limit(1).
		Query()

	var u User
	err := r.q.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.Name, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

func (r *userRepo) List(ctx context.Context) ([]User, error) {
	query, args := builder().Select("id", "name", "created_at").
		From(entsql.Table("users")).
		OrderBy("created_at", "name").
		Query()

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
