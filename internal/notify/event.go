// Package notify delivers reward events to users without ever blocking or
// failing the code path that produced them.
package notify

import (
	"context"
	"time"
)

// Kind distinguishes notification types.
type Kind string

const (
	KindAchievement Kind = "achievement"
	KindReminder    Kind = "reminder"
)

// Event is one notification addressed to a user.
type Event struct {
	Kind          Kind
	UserID        string
	AchievementID string // empty for reminders
	Title         string
	Body          string
	Icon          string
	Rarity        string
	BonusXP       int
	CreatedAt     time.Time
}

// Sink delivers events somewhere: a terminal, the inbox table, a chat bot.
type Sink interface {
	Deliver(ctx context.Context, e Event) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, e Event) error

// Deliver calls f.
func (f SinkFunc) Deliver(ctx context.Context, e Event) error {
	return f(ctx, e)
}

// Publisher accepts events for asynchronous delivery. Publish never blocks
// and reports whether the event was queued.
type Publisher interface {
	Publish(e Event) bool
}

// Discard is a Publisher that drops everything.
var Discard Publisher = discard{}

type discard struct{}

func (discard) Publish(Event) bool { return false }
