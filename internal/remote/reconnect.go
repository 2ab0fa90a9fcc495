package remote

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const reconnectTimeout = 30 * time.Second

// Reconnector deduplicates concurrent recovery attempts: while one
// reconnect is in flight, every other caller waits on that same attempt and
// observes its outcome. At most one reconnect runs system-wide.
type Reconnector struct {
	reconnect func(context.Context) error

	mu       sync.Mutex
	inflight *attempt
}

type attempt struct {
	done chan struct{}
	err  error
}

// NewReconnector wraps the session's Reconnect.
func NewReconnector(session *Session) *Reconnector {
	return &Reconnector{reconnect: session.Reconnect}
}

// newReconnectorFunc exists for tests that count underlying attempts.
func newReconnectorFunc(fn func(context.Context) error) *Reconnector {
	return &Reconnector{reconnect: fn}
}

// Recover re-establishes the remote session, joining an in-flight attempt
// if one exists. The attempt itself runs detached with its own timeout, so
// one caller's cancellation cannot fail the others.
func (r *Reconnector) Recover(ctx context.Context) error {
	r.mu.Lock()
	a := r.inflight
	if a == nil {
		a = &attempt{done: make(chan struct{})}
		r.inflight = a
		slog.Info("Attempting to reconnect the bot session")
		go r.run(a)
	} else {
		slog.Info("Reconnection already in progress, waiting for it to complete")
	}
	r.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-a.done:
		return a.err
	}
}

func (r *Reconnector) run(a *attempt) {
	ctx, cancel := context.WithTimeout(context.Background(), reconnectTimeout)
	defer cancel()

	a.err = r.reconnect(ctx)

	// Clear the remembered attempt so a future call starts fresh.
	r.mu.Lock()
	if r.inflight == a {
		r.inflight = nil
	}
	r.mu.Unlock()

	if a.err != nil {
		slog.Error("Failed to reconnect the bot session", slog.Any("error", a.err))
	}
	close(a.done)
}
