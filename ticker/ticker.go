// Package ticker synchronizes callers with chain-head progress.
//
// A Tracker maintains a single head-watch against the node and fans every
// advance out to any number of Tickers. Each Ticker.Next call resolves
// exactly once, after the head has advanced past the head observed at ticker
// creation (or at the previous resolution). Advances are latched: a head that
// arrives while no Next call is outstanding satisfies the next call
// immediately, so a caller looping on Next cannot miss a beat.
//
// The watch never surfaces node failures. Transient errors are retried
// internally with backoff while callers stay suspended, which lets a caller
// loop on Next without error-handling boilerplate.
package ticker

import (
	"context"
	"errors"
	"sync"

	"github.com/vireolabs/thorlink/internal/pkg/logger"
	"github.com/vireolabs/thorlink/internal/pkg/resilience/retry"
	"github.com/vireolabs/thorlink/types"
)

// ErrAlreadyStarted is returned when Start is called on a running tracker.
var ErrAlreadyStarted = errors.New("ticker: tracker already started")

// Source opens a head-watch stream against the node. The returned channel
// yields head summaries as the chain advances and is closed when the stream
// drops or ctx is canceled; the tracker reconnects on its own.
type Source interface {
	WatchHeads(ctx context.Context) (<-chan types.HeadSummary, error)
}

// RetryPolicy paces one reconnect burst of the watch loop. Satisfied by the
// SDK's internal backoff retrier, or by anything a host application brings.
type RetryPolicy interface {
	Execute(ctx context.Context, operation func() error) error
}

// Tracker owns the head-watch and the latched head state shared by all
// tickers derived from it.
type Tracker struct {
	src   Source
	retry RetryPolicy

	mu      sync.Mutex
	seq     uint64              // increments on every head advance
	head    types.HeadSummary   // head at seq; zero value until first advance
	advance chan struct{}       // closed and replaced on each advance
	started bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// config holds construction options for a Tracker.
type config struct {
	retry RetryPolicy
}

// Option configures a Tracker.
type Option func(*config)

// WithRetry replaces the backoff policy used between watch reconnect
// attempts. The tracker never gives up regardless of the policy's attempt
// budget; the policy only shapes the pacing of one reconnect burst.
func WithRetry(r RetryPolicy) Option {
	return func(c *config) {
		c.retry = r
	}
}

// NewTracker builds a tracker over src. Call Start to begin watching.
func NewTracker(src Source, opts ...Option) *Tracker {
	cfg := config{
		retry: retry.New(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Tracker{
		src:     src,
		retry:   cfg.retry,
		advance: make(chan struct{}),
	}
}

// Start launches the watch loop. The loop runs until Close is called or ctx
// is canceled.
func (t *Tracker) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return ErrAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	t.started = true
	t.cancel = cancel
	t.done = make(chan struct{})

	go t.run(ctx)
	return nil
}

// Close stops the watch loop and waits for it to exit. Outstanding Next
// calls stay suspended until their own contexts end.
func (t *Tracker) Close() {
	t.mu.Lock()
	if !t.started {
		t.mu.Unlock()
		return
	}
	cancel, done := t.cancel, t.done
	t.started = false
	t.cancel = nil
	t.mu.Unlock()

	cancel()
	<-done
}

// run keeps the head-watch alive for the lifetime of ctx. Connection errors
// are logged and retried forever; they are never observable through Next.
func (t *Tracker) run(ctx context.Context) {
	defer close(t.done)

	for ctx.Err() == nil {
		var heads <-chan types.HeadSummary
		err := t.retry.Execute(ctx, func() error {
			ch, err := t.src.WatchHeads(ctx)
			if err != nil {
				return err
			}
			heads = ch
			return nil
		})
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Warn(ctx, "head watch unavailable, reconnecting", "error", err)
			continue
		}

		for head := range heads {
			t.publish(head)
		}
	}
}

// publish records a new head and wakes every suspended waiter. Summaries
// repeating the current head id are dropped so a reconnect replaying the
// same head does not produce a spurious tick.
func (t *Tracker) publish(head types.HeadSummary) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.seq > 0 && head.ID == t.head.ID {
		return
	}

	t.seq++
	t.head = head
	close(t.advance)
	t.advance = make(chan struct{})
}

// Ticker returns a ticker anchored at the tracker's current head: its first
// Next resolves on the next advance after this call.
func (t *Tracker) Ticker() *Ticker {
	t.mu.Lock()
	defer t.mu.Unlock()
	return &Ticker{tracker: t, lastSeen: t.seq}
}

// Ticker is a handle for awaiting head advances. Independent tickers resolve
// independently from the same underlying watch. Safe for concurrent use:
// calls outstanding at the same time anchor to the same observed head, so
// one advance resolves them all.
type Ticker struct {
	tracker  *Tracker
	mu       sync.Mutex
	lastSeen uint64
}

// Next suspends until the chain head advances past the head this ticker had
// observed when the call was made, then returns the new head. An advance
// that happened while no Next call was outstanding resolves the call
// immediately (latched, not strictly edge-triggered).
//
// Node failures never surface here; the only possible error is ctx's own,
// returned when the caller abandons the wait. Abandoning leaks nothing.
func (tk *Ticker) Next(ctx context.Context) (types.HeadSummary, error) {
	tk.mu.Lock()
	anchor := tk.lastSeen
	tk.mu.Unlock()

	for {
		tk.tracker.mu.Lock()
		seq, head, advance := tk.tracker.seq, tk.tracker.head, tk.tracker.advance
		tk.tracker.mu.Unlock()

		if seq > anchor {
			tk.mu.Lock()
			if seq > tk.lastSeen {
				tk.lastSeen = seq
			}
			tk.mu.Unlock()
			return head, nil
		}

		select {
		case <-advance:
		case <-ctx.Done():
			return types.HeadSummary{}, ctx.Err()
		}
	}
}
