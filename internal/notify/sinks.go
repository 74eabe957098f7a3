package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/abhisek/flashiz/internal/store"
	"github.com/abhisek/flashiz/internal/ui/components"
	"github.com/abhisek/flashiz/internal/ui/theme"
)

// SyncWriter serializes writes to w. Commands and the WriterSink share one
// so unlock cards never interleave with command output.
type SyncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewSyncWriter wraps w.
func NewSyncWriter(w io.Writer) *SyncWriter {
	if sw, ok := w.(*SyncWriter); ok {
		return sw
	}
	return &SyncWriter{w: w}
}

func (s *SyncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// WriterSink renders events to a terminal.
type WriterSink struct {
	w *SyncWriter
}

// NewWriterSink creates a sink writing to w. Pass the SyncWriter that the
// rest of the program writes through when w is shared.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: NewSyncWriter(w)}
}

// Deliver writes the rendered event.
func (s *WriterSink) Deliver(_ context.Context, e Event) error {
	var out string
	switch e.Kind {
	case KindAchievement:
		out = components.AchievementCard{
			Icon:    e.Icon,
			Title:   e.Title,
			Body:    e.Body,
			Rarity:  e.Rarity,
			BonusXP: e.BonusXP,
		}.View()
	default:
		out = theme.Warning.Render(e.Title)
		if e.Body != "" {
			out += "\n" + theme.Body.Render(e.Body)
		}
	}

	_, err := fmt.Fprintln(s.w, out)
	return err
}

// StoreSink keeps a copy of every event in the inbox table.
type StoreSink struct {
	repo store.NotificationRepo
}

// NewStoreSink creates a sink persisting to repo.
func NewStoreSink(repo store.NotificationRepo) *StoreSink {
	return &StoreSink{repo: repo}
}

// Deliver appends the event to the inbox.
func (s *StoreSink) Deliver(ctx context.Context, e Event) error {
	n := store.Notification{
		UserID:    e.UserID,
		Kind:      string(e.Kind),
		Title:     e.Title,
		Body:      e.Body,
		Icon:      e.Icon,
		Rarity:    e.Rarity,
		BonusXP:   e.BonusXP,
		CreatedAt: e.CreatedAt,
	}
	if e.AchievementID != "" {
		id := e.AchievementID
		n.AchievementID = &id
	}
	return s.repo.Append(ctx, n)
}

// MultiSink delivers to every sink and joins their errors.
type MultiSink []Sink

// Deliver tries every sink even when an earlier one fails.
func (m MultiSink) Deliver(ctx context.Context, e Event) error {
	var errs []error
	for _, s := range m {
		if err := s.Deliver(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
