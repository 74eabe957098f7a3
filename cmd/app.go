package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashiz/internal/achievements"
	"github.com/abhisek/flashiz/internal/notify"
	"github.com/abhisek/flashiz/internal/progress"
	"github.com/abhisek/flashiz/internal/rewards"
	"github.com/abhisek/flashiz/internal/store"
)

// app holds the dependencies a command needs. Commands print through out,
// which the terminal notification sink shares.
type app struct {
	store      *store.Store
	svc        *progress.Service
	dispatcher *notify.Dispatcher
	out        *notify.SyncWriter
}

type appOptions struct {
	quiet bool
}

type appOption func(*appOptions)

// withoutTerminalNotifications keeps notifications in the inbox only, for
// commands that render unlocks themselves.
func withoutTerminalNotifications() appOption {
	return func(o *appOptions) { o.quiet = true }
}

// openApp opens the store, loads configuration and wires the progress
// service. Notifications are printed to the command output and kept in
// the inbox.
func openApp(cmd *cobra.Command, opts ...appOption) (*app, error) {
	var o appOptions
	for _, opt := range opts {
		opt(&o)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := rewards.LoadConfig(flagOrEnv(cmd, "rewards", "FLASHIZ_REWARDS"))
	if err != nil {
		return nil, err
	}
	calc, err := rewards.NewCalculator(cfg)
	if err != nil {
		return nil, err
	}
	catalog, err := loadCatalog(cmd)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	logger := slog.Default()
	out := notify.NewSyncWriter(cmd.OutOrStdout())
	sink := notify.MultiSink{notify.NewStoreSink(st.Repos().Notifications)}
	if !o.quiet {
		sink = append(sink, notify.NewWriterSink(out))
	}
	d := notify.NewDispatcher(sink, notify.DefaultConfig(), logger)

	svc := progress.NewService(st, calc, catalog,
		progress.WithPublisher(d),
		progress.WithLogger(logger),
	)
	if err := svc.SeedCatalog(ctx); err != nil {
		d.Close()
		st.Close()
		return nil, err
	}
	return &app{store: st, svc: svc, dispatcher: d, out: out}, nil
}

// Close flushes pending notifications, then closes the database.
func (a *app) Close() error {
	return errors.Join(a.dispatcher.Close(), a.store.Close())
}

// currentUser resolves --user or FLASHIZ_USER.
func (a *app) currentUser(cmd *cobra.Command) (*store.User, error) {
	ref := flagOrEnv(cmd, "user", "FLASHIZ_USER")
	if ref == "" {
		return nil, errors.New("no user selected: pass --user or set FLASHIZ_USER")
	}
	return a.svc.ResolveUser(cmd.Context(), ref)
}

func loadCatalog(cmd *cobra.Command) (achievements.Catalog, error) {
	if p := flagOrEnv(cmd, "catalog", "FLASHIZ_CATALOG"); p != "" {
		return achievements.LoadCatalog(p)
	}
	return achievements.DefaultCatalog(), nil
}
