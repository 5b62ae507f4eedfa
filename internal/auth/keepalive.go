package auth

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultKeepaliveInterval is how often the maintenance timer forces a token
// exchange. Google revokes refresh tokens that go unused for extended
// periods; half-hourly renewal keeps the credential warm.
const DefaultKeepaliveInterval = 30 * time.Minute

// Keepalive periodically forces the OAuth provider to mint a fresh access
// token. Failures are logged and retried on the next tick; they never stop
// the timer and never propagate. The handle owns its lifecycle explicitly:
// Start once, Stop idempotently.
type Keepalive struct {
	provider Provider
	interval time.Duration
	logger   *slog.Logger

	// onResult, when set, observes the outcome of every renewal attempt.
	// Used to record metrics without coupling this package to them.
	onResult func(err error)

	mu      sync.Mutex
	stop    chan struct{}
	done    chan struct{}
	started bool
	stopped bool
}

// NewKeepalive creates a maintenance timer for the given provider. A zero
// or negative interval falls back to the default.
func NewKeepalive(provider Provider, interval time.Duration, logger *slog.Logger) *Keepalive {
	if interval <= 0 {
		interval = DefaultKeepaliveInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Keepalive{
		provider: provider,
		interval: interval,
		logger:   logger,
	}
}

// OnResult registers an observer for renewal outcomes. Must be called
// before Start.
func (k *Keepalive) OnResult(fn func(err error)) {
	k.onResult = fn
}

// Start begins the renewal loop. The first renewal fires immediately so a
// successful exchange is observed promptly rather than after the first
// 30-minute wait. Calling Start more than once is a no-op.
func (k *Keepalive) Start(ctx context.Context) {
	k.mu.Lock()
	if k.started || k.stopped {
		k.mu.Unlock()
		return
	}
	k.started = true
	k.stop = make(chan struct{})
	k.done = make(chan struct{})
	k.mu.Unlock()

	go k.run(ctx)
}

func (k *Keepalive) run(ctx context.Context) {
	defer close(k.done)

	k.renew(ctx)

	ticker := time.NewTicker(k.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			k.renew(ctx)
		case <-k.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (k *Keepalive) renew(ctx context.Context) {
	lease, err := k.provider.AcquireLease(ctx)
	if k.onResult != nil {
		k.onResult(err)
	}
	if err != nil {
		// Not fatal and not retried out of band; the next tick is the
		// retry.
		k.logger.Warn("token keepalive renewal failed", "error", err)
		return
	}
	k.logger.Info("token keepalive renewed access token",
		"acquired_at", lease.AcquiredAt.Format(time.RFC3339))
}

// Stop cancels the timer and waits for the loop to exit. It is safe to call
// multiple times and safe to call on a timer that was never started.
func (k *Keepalive) Stop() {
	k.mu.Lock()
	if !k.started || k.stopped {
		k.stopped = true
		k.mu.Unlock()
		return
	}
	k.stopped = true
	close(k.stop)
	done := k.done
	k.mu.Unlock()

	<-done
}

// Active reports whether the timer is running.
func (k *Keepalive) Active() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.started && !k.stopped
}
