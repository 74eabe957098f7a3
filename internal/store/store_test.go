package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/flashiz/internal/stats"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func createUser(t *testing.T, s *Store, name string) User {
	t.Helper()
	ctx := context.Background()
	u := User{ID: uuid.NewString(), Name: name, CreatedAt: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
	require.NoError(t, s.Repos().Users.Create(ctx, u))
	require.NoError(t, s.Repos().Stats.Create(ctx, stats.New(u.ID, u.CreatedAt)))
	return u
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)

	tests := []struct {
		pragma string
		want   string
	}{
		// journal_mode reports "memory" for in-memory databases.
		{"foreign_keys", "1"},
		{"synchronous", "1"},
	}
	for _, tt := range tests {
		var got string
		require.NoError(t, s.DB().QueryRow("PRAGMA "+tt.pragma).Scan(&got))
		assert.Equal(t, tt.want, got, "PRAGMA %s", tt.pragma)
	}
}

func TestUsers(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	users := s.Repos().Users

	alice := createUser(t, s, "alice")
	createUser(t, s, "bob")

	got, err := users.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Name)

	got, err = users.GetByName(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Name)

	_, err = users.GetByName(ctx, "carol")
	assert.ErrorIs(t, err, ErrNotFound)

	err = users.Create(ctx, User{ID: uuid.NewString(), Name: "alice", CreatedAt: time.Now()})
	assert.Error(t, err, "names are unique")

	all, err := users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestStatsSaveVersioning(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.Repos().Stats
	u := createUser(t, s, "alice")

	st, err := repo.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), st.Version)
	assert.False(t, st.HasStudied())

	st.TotalXP = 42
	st.CurrentStreak = 3
	st.BestStreak = 5
	st.CardsStudied = 7
	st.PerfectStreak = 2
	st.TotalStudyTime = 90 * time.Minute
	st.LastStudyDate = time.Date(2024, 3, 10, 17, 30, 0, 0, time.UTC)

	v, err := repo.Save(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	got, err := repo.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 42, got.TotalXP)
	assert.Equal(t, 3, got.CurrentStreak)
	assert.Equal(t, 5, got.BestStreak)
	assert.Equal(t, 7, got.CardsStudied)
	assert.Equal(t, 2, got.PerfectStreak)
	assert.Equal(t, 90*time.Minute, got.TotalStudyTime)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), got.LastStudyDate)
	assert.Equal(t, int64(1), got.Version)

	// A stale version is rejected.
	_, err = repo.Save(ctx, st)
	assert.ErrorIs(t, err, ErrConflict)

	// Total XP never decreases.
	got.TotalXP = 10
	_, err = repo.Save(ctx, got)
	assert.ErrorIs(t, err, ErrConflict)

	// Invalid aggregates never reach the database.
	got.TotalXP = 50
	got.BestStreak = 1
	_, err = repo.Save(ctx, got)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrConflict))

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStatsStudiedOn(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.Repos().Stats

	yesterday := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"alice", "bob", "carol"} {
		u := createUser(t, s, name)
		st, err := repo.Get(ctx, u.ID)
		require.NoError(t, err)
		if i == 2 {
			continue // carol never studied
		}
		st.CurrentStreak, st.BestStreak = 1, 1
		st.LastStudyDate = yesterday.AddDate(0, 0, i) // bob studied today
		_, err = repo.Save(ctx, st)
		require.NoError(t, err)
	}

	got, err := repo.StudiedOn(ctx, yesterday.Add(15*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, yesterday, got[0].LastStudyDate)
}

func TestCardsAndRatingHistory(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	cards := s.Repos().Cards
	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")

	card := Card{ID: uuid.NewString(), UserID: alice.ID, Front: "dog", Back: "собака", CreatedAt: time.Now()}
	require.NoError(t, cards.Create(ctx, card))

	got, err := cards.Get(ctx, alice.ID, card.ID)
	require.NoError(t, err)
	assert.Equal(t, "собака", got.Back)

	_, err = cards.Get(ctx, bob.ID, card.ID)
	assert.ErrorIs(t, err, ErrNotFound, "cards are scoped to their owner")

	list, err := cards.List(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	history, err := cards.RatingHistory(ctx, card.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, history)

	at := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	for i, rating := range []int{1, 2, 3, 4, 5} {
		require.NoError(t, cards.AppendReview(ctx, Review{
			CardID: card.ID, SessionID: "s1", Rating: rating, XP: 10,
			ReviewedAt: at.Add(time.Duration(i) * time.Minute),
		}))
	}

	history, err = cards.RatingHistory(ctx, card.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4, 5}, history)

	history, err = cards.RatingHistory(ctx, card.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, history)
}

func TestAchievementsSeedAndUnlock(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.Repos().Achievements
	u := createUser(t, s, "alice")

	defs := []AchievementRecord{
		{ID: "first_steps", Name: "Первые шаги", Condition: "total_xp", Threshold: 10, Rarity: "common"},
		{ID: "streak_7", Name: "Week", Condition: "current_streak", Threshold: 7, Rarity: "rare"},
	}
	require.NoError(t, repo.Seed(ctx, defs))

	// Reseeding never modifies stored definitions.
	changed := []AchievementRecord{{ID: "first_steps", Name: "Renamed", Condition: "total_xp", Threshold: 99, Rarity: "epic"}}
	require.NoError(t, repo.Seed(ctx, changed))

	var name string
	require.NoError(t, s.DB().QueryRow(`SELECT name FROM achievements WHERE id = 'first_steps'`).Scan(&name))
	assert.Equal(t, "Первые шаги", name)

	at := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	created, err := repo.Unlock(ctx, u.ID, "first_steps", at)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Unlock(ctx, u.ID, "first_steps", at.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, created, "second unlock is a no-op")

	unlocked, err := repo.Unlocked(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, unlocked, 1)
	assert.True(t, unlocked["first_steps"].Equal(at))
}

func TestLedgerEarnedOn(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	ledger := s.Repos().Ledger
	u := createUser(t, s, "alice")

	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	entries := []LedgerEntry{
		{UserID: u.ID, Source: SourceCard, Ref: "c1", Amount: 13, EarnedAt: day.Add(time.Hour)},
		{UserID: u.ID, Source: SourceSession, Ref: "s1", Amount: 20, EarnedAt: day.Add(23*time.Hour + 59*time.Minute)},
		{UserID: u.ID, Source: SourceCard, Ref: "c1", Amount: 7, EarnedAt: day.Add(24 * time.Hour)},
	}
	for _, e := range entries {
		require.NoError(t, ledger.Append(ctx, e))
	}

	earned, err := ledger.EarnedOn(ctx, u.ID, day.Add(12*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 33, earned)

	earned, err = ledger.EarnedOn(ctx, u.ID, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 7, earned)

	earned, err = ledger.EarnedOn(ctx, u.ID, day.AddDate(0, 0, -1))
	require.NoError(t, err)
	assert.Zero(t, earned)

	err = ledger.Append(ctx, LedgerEntry{UserID: u.ID, Source: SourceCard, Amount: -1, EarnedAt: day})
	assert.Error(t, err)
}

func TestNotificationsList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.Repos().Notifications
	u := createUser(t, s, "alice")

	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	achID := "first_steps"
	require.NoError(t, repo.Append(ctx, Notification{
		UserID: u.ID, Kind: "achievement", AchievementID: &achID,
		Title: "Первые шаги", Rarity: "common", BonusXP: 50, CreatedAt: base,
	}))
	require.NoError(t, repo.Append(ctx, Notification{
		UserID: u.ID, Kind: "reminder", Title: "Keep your streak", CreatedAt: base.Add(time.Hour),
	}))

	all, err := repo.List(ctx, u.ID, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "reminder", all[0].Kind, "newest first")
	assert.Nil(t, all[0].AchievementID)
	require.NotNil(t, all[1].AchievementID)
	assert.Equal(t, "first_steps", *all[1].AchievementID)
	assert.Equal(t, 50, all[1].BonusXP)

	limited, err := repo.List(ctx, u.ID, QueryOpts{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	ranged, err := repo.List(ctx, u.ID, QueryOpts{To: base.Add(time.Minute)})
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, "achievement", ranged[0].Kind)
}

func TestInTxRollback(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := s.InTx(ctx, func(r Repos) error {
		if err := r.Users.Create(ctx, User{ID: uuid.NewString(), Name: "ghost", CreatedAt: time.Now()}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = s.Repos().Users.GetByName(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)

	err = s.InTx(ctx, func(r Repos) error {
		return r.Users.Create(ctx, User{ID: uuid.NewString(), Name: "kept", CreatedAt: time.Now()})
	})
	require.NoError(t, err)

	_, err = s.Repos().Users.GetByName(ctx, "kept")
	assert.NoError(t, err)
}

func TestSequenceIsSharedAndMonotonic(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 3; i++ {
		n, err := s.seq.Next(ctx, s.db)
		require.NoError(t, err)
		seqs = append(seqs, n)
	}
	assert.Equal(t, []int64{1, 2, 3}, seqs)
}
