package progress

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/flashiz/internal/stats"
	"github.com/abhisek/flashiz/internal/store"
)

// CardResult summarizes what creating a card earned.
type CardResult struct {
	Card     store.Card
	XP       int
	Unlocked []Unlock
	Stats    stats.UserStatistics
}

// CreateCard stores a new card and rewards its author.
func (s *Service) CreateCard(ctx context.Context, userID, front, back string) (*CardResult, error) {
	front, back = strings.TrimSpace(front), strings.TrimSpace(back)
	if front == "" || back == "" {
		return nil, ErrEmptyCard
	}
	at := s.now().UTC()
	card := store.Card{ID: uuid.NewString(), UserID: userID, Front: front, Back: back, CreatedAt: at}

	var res *CardResult
	err := s.withRetry(ctx, "create card", func(r store.Repos) error {
		res = &CardResult{Card: card}

		st, err := loadStats(ctx, r, userID)
		if err != nil {
			return err
		}
		budget, err := s.budgetFor(ctx, r, userID, at)
		if err != nil {
			return err
		}
		if err := r.Cards.Create(ctx, card); err != nil {
			return err
		}
		if res.XP, err = grant(ctx, r, &st, budget, store.SourceCreatedCard, card.ID, s.calc.CreatedCardXP(), at); err != nil {
			return err
		}
		st.CardsCreated++

		if res.Unlocked, err = s.unlockAchievements(ctx, r, &st, budget, at); err != nil {
			return err
		}
		if st.Version, err = r.Stats.Save(ctx, st); err != nil {
			return err
		}
		res.Stats = st
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("card created", "user", userID, "card", card.ID, "xp", res.XP)
	s.publishUnlocks(userID, res.Unlocked)
	return res, nil
}

// ListCards returns a user's cards, oldest first.
func (s *Service) ListCards(ctx context.Context, userID string) ([]store.Card, error) {
	return s.store.Repos().Cards.List(ctx, userID)
}
