package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Config tunes the dispatcher.
type Config struct {
	Workers         int           // concurrent deliveries
	QueueSize       int           // events buffered before Publish drops
	PerUserRate     float64       // events per second per user, 0 = unlimited
	Burst           int           // per-user burst size
	DeliveryTimeout time.Duration // per delivery, including the rate wait
	MaxLimiters     int           // per-user limiters kept before idle ones are pruned
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		Workers:         2,
		QueueSize:       64,
		PerUserRate:     5,
		Burst:           10,
		DeliveryTimeout: 5 * time.Second,
		MaxLimiters:     1024,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Workers <= 0 {
		c.Workers = def.Workers
	}
	if c.QueueSize <= 0 {
		c.QueueSize = def.QueueSize
	}
	if c.Burst <= 0 {
		c.Burst = def.Burst
	}
	if c.DeliveryTimeout <= 0 {
		c.DeliveryTimeout = def.DeliveryTimeout
	}
	if c.MaxLimiters <= 0 {
		c.MaxLimiters = def.MaxLimiters
	}
	return c
}

// Dispatcher fans events out to a Sink from a bounded queue. Delivery is
// best effort: failures and drops are logged and counted, never returned
// to the publisher.
type Dispatcher struct {
	cfg    Config
	sink   Sink
	logger *slog.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan Event

	limMu     sync.Mutex
	limiters  map[string]*rate.Limiter
	unlimited *rate.Limiter

	g       errgroup.Group
	ctx     context.Context
	cancel  context.CancelFunc
	dropped atomic.Int64
	failed  atomic.Int64
}

var _ Publisher = (*Dispatcher)(nil)

// NewDispatcher starts the worker pool. Call Close to drain and stop it.
func NewDispatcher(sink Sink, cfg Config, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())

	d := &Dispatcher{
		cfg:       cfg,
		sink:      sink,
		logger:    logger.With("component", "notify"),
		queue:     make(chan Event, cfg.QueueSize),
		limiters:  make(map[string]*rate.Limiter),
		unlimited: rate.NewLimiter(rate.Inf, 0),
		ctx:       ctx,
		cancel:    cancel,
	}
	for i := 0; i < cfg.Workers; i++ {
		d.g.Go(func() error {
			for e := range d.queue {
				d.deliver(e)
			}
			return nil
		})
	}
	return d
}

// Publish queues e. It returns false when the queue is full or the
// dispatcher is closed.
func (d *Dispatcher) Publish(e Event) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.dropped.Add(1)
		return false
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	select {
	case d.queue <- e:
		return true
	default:
		d.dropped.Add(1)
		d.logger.Warn("notification queue full, dropping event",
			"kind", e.Kind, "user", e.UserID, "title", e.Title)
		return false
	}
}

// Close stops accepting events, delivers everything already queued and
// waits for the workers to exit. It is safe to call more than once.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	err := d.g.Wait()
	d.cancel()
	return err
}

// Dropped returns how many events were never handed to the sink.
func (d *Dispatcher) Dropped() int64 {
	return d.dropped.Load()
}

// Failed returns how many deliveries returned an error.
func (d *Dispatcher) Failed() int64 {
	return d.failed.Load()
}

func (d *Dispatcher) deliver(e Event) {
	ctx, cancel := context.WithTimeout(d.ctx, d.cfg.DeliveryTimeout)
	defer cancel()

	if err := d.limiter(e.UserID).Wait(ctx); err != nil {
		d.dropped.Add(1)
		d.logger.Warn("notification rate limited, dropping event",
			"kind", e.Kind, "user", e.UserID, "error", err)
		return
	}

	if err := d.safeDeliver(ctx, e); err != nil {
		d.failed.Add(1)
		d.logger.Error("notification delivery failed",
			"kind", e.Kind, "user", e.UserID, "title", e.Title, "error", err)
		return
	}
	d.logger.Debug("notification delivered", "kind", e.Kind, "user", e.UserID, "title", e.Title)
}

func (d *Dispatcher) safeDeliver(ctx context.Context, e Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sink panicked: %v", r)
		}
	}()
	return d.sink.Deliver(ctx, e)
}

func (d *Dispatcher) limiter(userID string) *rate.Limiter {
	if d.cfg.PerUserRate <= 0 {
		return d.unlimited
	}

	d.limMu.Lock()
	defer d.limMu.Unlock()

	if l, ok := d.limiters[userID]; ok {
		return l
	}
	if len(d.limiters) >= d.cfg.MaxLimiters {
		d.pruneLimiters(time.Now())
	}
	l := rate.NewLimiter(rate.Limit(d.cfg.PerUserRate), d.cfg.Burst)
	d.limiters[userID] = l
	return l
}

// pruneLimiters forgets users whose bucket has refilled. A full bucket
// behaves exactly like a new one, so pruning never loosens the limit.
// Callers hold limMu.
func (d *Dispatcher) pruneLimiters(now time.Time) {
	for id, l := range d.limiters {
		if l.TokensAt(now) >= float64(d.cfg.Burst) {
			delete(d.limiters, id)
		}
	}
}
