package store

import (
	"context"
	"database/sql"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/flashiz/internal/stats"
)

// QueryOpts configures list queries with filtering and pagination.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	From  time.Time // timestamp >= From
	To    time.Time // timestamp <= To
}

// User is a learner.
type User struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Card is a flashcard owned by a user.
type Card struct {
	ID        string
	UserID    string
	Front     string
	Back      string
	CreatedAt time.Time
}

// Review is one rated answer on a card.
type Review struct {
	CardID     string
	SessionID  string
	Rating     int
	XP         int
	ReviewedAt time.Time
	Sequence   int64
}

// AchievementRecord is a catalog definition as stored.
type AchievementRecord struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Condition   string
	Threshold   int
	Rarity      string
}

// LedgerSource tells where an XP ledger entry came from.
type LedgerSource string

const (
	SourceCard        LedgerSource = "card"
	SourceSession     LedgerSource = "session"
	SourceCreatedCard LedgerSource = "created_card"
	SourceAchievement LedgerSource = "achievement"
)

// LedgerEntry records XP actually awarded, after the daily cap.
type LedgerEntry struct {
	UserID   string
	Source   LedgerSource
	Ref      string // card, session or achievement id
	Amount   int
	EarnedAt time.Time
	Sequence int64
}

// Notification is an inbox entry.
type Notification struct {
	ID            int
	UserID        string
	Kind          string
	AchievementID *string
	Title         string
	Body          string
	Icon          string
	Rarity        string
	BonusXP       int
	CreatedAt     time.Time
}

// UserRepo manages learners.
type UserRepo interface {
	Create(ctx context.Context, u User) error
	Get(ctx context.Context, id string) (*User, error)
	GetByName(ctx context.Context, name string) (*User, error)
	List(ctx context.Context) ([]User, error)
}

// StatsRepo manages per-user statistics.
type StatsRepo interface {
	// Create inserts the initial row for a user.
	Create(ctx context.Context, s stats.UserStatistics) error

	// Get returns the statistics of a user or ErrNotFound.
	Get(ctx context.Context, userID string) (stats.UserStatistics, error)

	// Save writes s if its Version still matches the stored row and returns
	// the new version. A mismatch returns ErrConflict.
	Save(ctx context.Context, s stats.UserStatistics) (int64, error)

	// StudiedOn lists users whose last study date equals day.
	StudiedOn(ctx context.Context, day time.Time) ([]stats.UserStatistics, error)
}

// CardRepo manages cards and their review history.
type CardRepo interface {
	Create(ctx context.Context, c Card) error
	Get(ctx context.Context, userID, cardID string) (*Card, error)
	List(ctx context.Context, userID string) ([]Card, error)
	AppendReview(ctx context.Context, r Review) error

	// RatingHistory returns up to limit most recent ratings, oldest first.
	RatingHistory(ctx context.Context, cardID string, limit int) ([]int, error)
}

// AchievementRepo manages the stored catalog and user unlocks.
type AchievementRepo interface {
	// Seed inserts definitions that are not stored yet. Stored definitions
	// are never modified.
	Seed(ctx context.Context, defs []AchievementRecord) error

	// Unlock records the unlock once; it returns false when the user
	// already owned the achievement.
	Unlock(ctx context.Context, userID, achievementID string, at time.Time) (bool, error)

	// Unlocked returns the unlock time of every achievement the user owns.
	Unlocked(ctx context.Context, userID string) (map[string]time.Time, error)
}

// LedgerRepo records XP awards.
type LedgerRepo interface {
	Append(ctx context.Context, e LedgerEntry) error

	// EarnedOn sums the XP a user earned on the UTC day containing day.
	EarnedOn(ctx context.Context, userID string, day time.Time) (int, error)
}

// NotificationRepo stores delivered notifications.
type NotificationRepo interface {
	Append(ctx context.Context, n Notification) error
	List(ctx context.Context, userID string, opts QueryOpts) ([]Notification, error)
}

// Repos bundles the repositories bound to one connection or transaction.
type Repos struct {
	Users         UserRepo
	Stats         StatsRepo
	Cards         CardRepo
	Achievements  AchievementRepo
	Ledger        LedgerRepo
	Notifications NotificationRepo
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func newRepos(q querier, seq *sequenceCounter) Repos {
	return Repos{
		Users:         &userRepo{q: q},
		Stats:         &statsRepo{q: q},
		Cards:         &cardRepo{q: q, seq: seq},
		Achievements:  &achievementRepo{q: q},
		Ledger:        &ledgerRepo{q: q, seq: seq},
		Notifications: &notificationRepo{q: q},
	}
}

// builder returns the SQLite statement builder.
func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// dayKey formats the UTC calendar day used for daily aggregates.
func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
