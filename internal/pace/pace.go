// Package pace enforces minimum spacing between outbound requests.
//
// A Pacer wraps a golang.org/x/time/rate limiter with a burst of one, so the
// first call passes immediately and every later call waits until at least
// the configured interval has elapsed since the previous one started. A Gap
// instead measures from the end of the previous call, so slow calls are
// still followed by a full pause.
package pace

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces consecutive calls by a fixed interval
type Pacer struct {
	interval time.Duration
	limiter  *rate.Limiter
}

// New creates a Pacer. A zero or negative interval disables pacing.
func New(interval time.Duration) *Pacer {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Pacer{
		interval: interval,
		limiter:  rate.NewLimiter(limit, 1),
	}
}

// Wait blocks until the next call is allowed or ctx is done
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil {
		return ctx.Err()
	}
	return p.limiter.Wait(ctx)
}

// Interval returns the configured spacing
func (p *Pacer) Interval() time.Duration {
	if p == nil {
		return 0
	}
	return p.interval
}

// Sleep pauses for d or until ctx is done, whichever comes first
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Gap enforces a minimum idle time between the end of one call and the
// start of the next, however long the call itself took. A Gap is not safe
// for concurrent use.
type Gap struct {
	interval time.Duration
	last     time.Time
}

// NewGap creates a Gap. A zero or negative interval disables it.
func NewGap(interval time.Duration) *Gap {
	return &Gap{interval: interval}
}

// Wait blocks until the interval has passed since the last Done, or ctx is
// done. The first call does not wait.
func (g *Gap) Wait(ctx context.Context) error {
	if g == nil || g.interval <= 0 || g.last.IsZero() {
		return ctx.Err()
	}
	return Sleep(ctx, g.interval-time.Since(g.last))
}

// Done marks the end of a call
func (g *Gap) Done() {
	if g != nil {
		g.last = time.Now()
	}
}
