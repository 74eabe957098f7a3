package progress

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/flashiz/internal/stats"
	"github.com/abhisek/flashiz/internal/store"
)

// CreateUser registers a learner with empty statistics.
func (s *Service) CreateUser(ctx context.Context, name string) (*store.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	u := store.User{ID: uuid.NewString(), Name: name, CreatedAt: s.now().UTC()}
	err := s.store.InTx(ctx, func(r store.Repos) error {
		if _, err := r.Users.GetByName(ctx, name); err == nil {
			return fmt.Errorf("%q: %w", name, ErrUserExists)
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		if err := r.Users.Create(ctx, u); err != nil {
			return err
		}
		return r.Stats.Create(ctx, stats.New(u.ID, u.CreatedAt))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user created", "user", u.ID, "name", u.Name)
	return &u, nil
}

// ResolveUser finds a user by name, falling back to id.
func (s *Service) ResolveUser(ctx context.Context, nameOrID string) (*store.User, error) {
	users := s.store.Repos().Users
	u, err := users.GetByName(ctx, nameOrID)
	if errors.Is(err, store.ErrNotFound) {
		u, err = users.Get(ctx, nameOrID)
	}
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("user %q: %w", nameOrID, store.ErrNotFound)
	}
	return u, err
}

// ListUsers returns every learner.
func (s *Service) ListUsers(ctx context.Context) ([]store.User, error) {
	return s.store.Repos().Users.List(ctx)
}

// Inbox returns the newest delivered notifications of a user.
func (s *Service) Inbox(ctx context.Context, userID string, limit int) ([]store.Notification, error) {
	return s.store.Repos().Notifications.List(ctx, userID, store.QueryOpts{Limit: limit})
}
