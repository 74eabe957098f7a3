// Package reminder schedules the daily streak reminder run.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/abhisek/flashiz/internal/notify"
)

// DefaultHour is the UTC hour reminders go out when nothing is configured.
const DefaultHour = 18

// Source builds and publishes the reminders for the current moment.
type Source interface {
	StreakReminders(ctx context.Context) ([]notify.Event, error)
}

// Config sets the daily UTC run time.
type Config struct {
	Hour   int
	Minute int
}

// DefaultConfig returns the default run time, overridden by
// FLASHIZ_REMINDER_HOUR when set.
func DefaultConfig() Config {
	cfg := Config{Hour: DefaultHour}
	if v := os.Getenv("FLASHIZ_REMINDER_HOUR"); v != "" {
		if h, err := strconv.Atoi(v); err == nil {
			cfg.Hour = h
		}
	}
	return cfg
}

// Validate checks the run time.
func (c Config) Validate() error {
	if c.Hour < 0 || c.Hour > 23 {
		return fmt.Errorf("reminder hour must be in 0..23, got %d", c.Hour)
	}
	if c.Minute < 0 || c.Minute > 59 {
		return fmt.Errorf("reminder minute must be in 0..59, got %d", c.Minute)
	}
	return nil
}

func (c Config) at() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Scheduler runs Source once a day.
type Scheduler struct {
	scheduler *gocron.Scheduler
	source    Source
	cfg       Config
	logger    *slog.Logger
}

// New creates a scheduler. Start must be called to begin running.
func New(source Source, cfg Config, logger *slog.Logger) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		source:    source,
		cfg:       cfg,
		logger:    logger.With("component", "reminder"),
	}, nil
}

// Start schedules the daily job and returns without blocking.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.scheduler.Every(1).Day().At(s.cfg.at()).Do(s.run, ctx); err != nil {
		return fmt.Errorf("schedule reminders: %w", err)
	}
	s.scheduler.StartAsync()
	s.logger.Info("reminders scheduled", "at", s.cfg.at()+" UTC")
	return nil
}

// Stop terminates the scheduled job.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// NextRun returns when the job fires next; zero before Start.
func (s *Scheduler) NextRun() time.Time {
	_, next := s.scheduler.NextRun()
	return next
}

// RunOnce sends reminders immediately and returns how many were built.
func (s *Scheduler) RunOnce(ctx context.Context) (int, error) {
	events, err := s.source.StreakReminders(ctx)
	if err != nil {
		return 0, err
	}
	return len(events), nil
}

func (s *Scheduler) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	n, err := s.RunOnce(ctx)
	if err != nil {
		s.logger.Error("streak reminders failed", "error", err)
		return
	}
	s.logger.Info("streak reminders run", "count", n)
}
