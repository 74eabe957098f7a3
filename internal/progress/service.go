// Package progress records study activity and turns it into XP, streaks,
// levels and achievement unlocks.
package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/flashiz/internal/achievements"
	"github.com/abhisek/flashiz/internal/level"
	"github.com/abhisek/flashiz/internal/notify"
	"github.com/abhisek/flashiz/internal/rewards"
	"github.com/abhisek/flashiz/internal/stats"
	"github.com/abhisek/flashiz/internal/store"
)

// maxAttempts bounds retries of a transaction that lost an optimistic
// version check.
const maxAttempts = 3

var (
	ErrEmptySession = errors.New("session has no answers")
	ErrEmptyCard    = errors.New("card front and back must not be empty")
	ErrEmptyName    = errors.New("user name must not be empty")
	ErrUserExists   = errors.New("user already exists")
)

// Service coordinates the reward engine with storage and notifications.
type Service struct {
	store    *store.Store
	calc     *rewards.Calculator
	curve    level.Curve
	eval     *achievements.Evaluator
	est      *achievements.Estimator
	notifier notify.Publisher
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithPublisher sets where unlock and reminder events go.
func WithPublisher(p notify.Publisher) Option {
	return func(s *Service) { s.notifier = p }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService wires a Service. Events are discarded unless WithPublisher
// is given.
func NewService(st *store.Store, calc *rewards.Calculator, catalog achievements.Catalog, opts ...Option) *Service {
	curve := level.Curve{BaseXP: calc.Config().LevelBaseXP}
	s := &Service{
		store:    st,
		calc:     calc,
		curve:    curve,
		eval:     achievements.NewEvaluator(catalog, curve),
		est:      achievements.NewEstimator(curve),
		notifier: notify.Discard,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the achievement catalog in use.
func (s *Service) Catalog() achievements.Catalog {
	return s.eval.Catalog()
}

// Curve returns the level curve in use.
func (s *Service) Curve() level.Curve {
	return s.curve
}

// SeedCatalog stores catalog definitions that are not stored yet. It must
// run before any unlock is recorded.
func (s *Service) SeedCatalog(ctx context.Context) error {
	var records []store.AchievementRecord
	for _, d := range s.eval.Catalog() {
		records = append(records, store.AchievementRecord{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			Icon:        d.Icon,
			Condition:   string(d.Condition),
			Threshold:   d.Threshold,
			Rarity:      string(d.Rarity),
		})
	}
	if err := s.store.Repos().Achievements.Seed(ctx, records); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	return nil
}

// withRetry runs fn in a transaction and reruns it when the statistics row
// changed underneath. fn must rebuild all of its output on every call.
func (s *Service) withRetry(ctx context.Context, op string, fn func(store.Repos) error) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = s.store.InTx(ctx, fn)
		if !errors.Is(err, store.ErrConflict) {
			return err
		}
		s.logger.Debug("statistics changed concurrently, retrying", "op", op, "attempt", attempt)
	}
	return fmt.Errorf("%s: gave up after %d attempts: %w", op, maxAttempts, err)
}

// loadStats reads a user's statistics, mapping a missing row to a
// user-scoped not-found error.
func loadStats(ctx context.Context, r store.Repos, userID string) (stats.UserStatistics, error) {
	st, err := r.Stats.Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return stats.UserStatistics{}, fmt.Errorf("user %s: %w", userID, store.ErrNotFound)
	}
	return st, err
}

// budgetFor starts the daily budget for the UTC day containing at.
func (s *Service) budgetFor(ctx context.Context, r store.Repos, userID string, at time.Time) (*rewards.DailyBudget, error) {
	earned, err := r.Ledger.EarnedOn(ctx, userID, at)
	if err != nil {
		return nil, err
	}
	return s.calc.NewDailyBudget(earned)
}

// grant clamps amount to the budget, records the awarded part and adds it
// to the statistics.
func grant(ctx context.Context, r store.Repos, st *stats.UserStatistics, budget *rewards.DailyBudget, src store.LedgerSource, ref string, amount int, at time.Time) (int, error) {
	awarded := budget.Grant(amount)
	if awarded == 0 {
		return 0, nil
	}
	err := r.Ledger.Append(ctx, store.LedgerEntry{
		UserID:   st.UserID,
		Source:   src,
		Ref:      ref,
		Amount:   awarded,
		EarnedAt: at,
	})
	if err != nil {
		return 0, err
	}
	st.TotalXP += awarded
	return awarded, nil
}

// publishUnlocks hands committed unlocks to the notifier.
func (s *Service) publishUnlocks(userID string, unlocks []Unlock) {
	for _, u := range unlocks {
		ok := s.notifier.Publish(notify.Event{
			Kind:          notify.KindAchievement,
			UserID:        userID,
			AchievementID: u.Definition.ID,
			Title:         u.Definition.Name,
			Body:          u.Definition.Description,
			Icon:          u.Definition.Icon,
			Rarity:        string(u.Definition.Rarity),
			BonusXP:       u.BonusXP,
			CreatedAt:     u.UnlockedAt,
		})
		if !ok {
			s.logger.Debug("unlock notification not queued", "user", userID, "achievement", u.Definition.ID)
		}
	}
}
