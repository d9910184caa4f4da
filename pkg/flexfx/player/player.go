// Package player provides the background play-list scheduler for flexfx
// performances. Producers enqueue [flexfx.Play] values; a single consumer
// goroutine drains them in FIFO order through an external [Renderer],
// broadcasting activity signals that the Await helpers block on.
package player

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/MrWong99/flexfx/pkg/flexfx"
)

// Renderer is the external sound service the scheduler drives. Render blocks
// the calling goroutine until every segment has been played; the segments of
// one call must be played back to back with no audible gap.
//
// Render is only ever invoked from the scheduler's consumer goroutine, one
// call at a time. The context is cancelled when the player is closed; a
// renderer may honour it or play the request out, the scheduler never
// interrupts an in-flight render itself.
type Renderer interface {
	Render(ctx context.Context, segments []flexfx.Segment) error
}

// RendererFunc adapts a plain function to the [Renderer] interface.
type RendererFunc func(ctx context.Context, segments []flexfx.Segment) error

// Render implements [Renderer].
func (f RendererFunc) Render(ctx context.Context, segments []flexfx.Segment) error {
	return f(ctx, segments)
}

// Metrics receives scheduler telemetry. Methods are called with internal
// player locks held: they must not block and must not call back into the
// [Player]. See the observe package for the OpenTelemetry implementation.
type Metrics interface {
	// PlayStarted is called when a tone Play begins rendering.
	PlayStarted()

	// PlayFinished is called when a tone Play finishes, with the time the
	// render actually took.
	PlayFinished(elapsed time.Duration)

	// QueueDepth is called with the new queue length after every enqueue,
	// dequeue and clear.
	QueueDepth(n int)
}

// State is the scheduler's lifecycle state.
type State int

const (
	// StateIdle means the consumer loop is not running and the queue has
	// been drained (or never filled). Enqueueing wakes the player up.
	StateIdle State = iota

	// StateActive means the consumer loop is running.
	StateActive

	// StateSuspended means draining has been suspended; queued Plays are
	// retained but nothing renders until Resume.
	StateSuspended
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateSuspended:
		return "suspended"
	}
	return "unknown"
}

// Option configures a [Player] during construction.
type Option func(*Player)

// WithLogger sets the structured logger used by the consumer loop.
// Defaults to [slog.Default].
func WithLogger(l *slog.Logger) Option {
	return func(p *Player) {
		if l != nil {
			p.log = l
		}
	}
}

// WithMetrics attaches scheduler telemetry. A nil Metrics disables it.
func WithMetrics(m Metrics) Option {
	return func(p *Player) {
		p.metrics = m
	}
}

// WithSleep substitutes the pause primitive used for silence Plays. The
// default waits out the duration on a timer, returning early only when ctx
// is cancelled. Tests substitute a no-op or a recording sleeper.
func WithSleep(sleep func(ctx context.Context, d time.Duration)) Option {
	return func(p *Player) {
		if sleep != nil {
			p.sleep = sleep
		}
	}
}

// Player is the background scheduler: an unbounded FIFO play-list drained by
// one consumer goroutine. Producers append with [Player.Enqueue] (or the
// PlayEffect / PlaySilence conveniences) and may block on the Await helpers;
// the consumer renders each Play to completion, in order, raising
// [StatusStarting] / [StatusFinished] around every tone Play and
// [StatusAllPlayed] when the queue runs dry.
//
// All exported methods are safe for concurrent use.
type Player struct {
	renderer Renderer
	sleep    func(ctx context.Context, d time.Duration)
	log      *slog.Logger
	metrics  Metrics

	ctx    context.Context // cancelled by Close; handed to every Render call
	cancel context.CancelFunc

	mu        sync.Mutex
	queue     []flexfx.Play
	state     State
	suspended bool // cooperative flag, checked at Play boundaries only
	playing   bool // true while a tone or silence Play is being rendered
	closed    bool
	waiters   map[Status][]chan struct{}
}

// New creates a [Player] that renders through r. The consumer goroutine is
// started lazily on the first enqueue or activation. Call [Player.Close] to
// release resources when the player is no longer needed.
func New(r Renderer, opts ...Option) *Player {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Player{
		renderer: r,
		sleep:    defaultSleep,
		log:      slog.Default(),
		ctx:      ctx,
		cancel:   cancel,
		waiters:  make(map[Status][]chan struct{}),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// defaultSleep waits out d, returning early only on context cancellation.
func defaultSleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// Enqueue appends play to the tail of the play-list and wakes the consumer
// loop unless the player is suspended. Empty Plays are skipped by the
// consumer without rendering or signalling. Enqueue never blocks and never
// fails — the queue is unbounded.
func (p *Player) Enqueue(play flexfx.Play) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.queue = append(p.queue, play)
	p.reportDepthLocked()
	p.activateLocked()
}

// PlayEffect scales the template under id from store and enqueues the
// resulting Play: the effect is performed shifted by pitchSteps semitones,
// levelled to volumeCeiling and stretched to targetDuration milliseconds.
// Returns [flexfx.ErrUnknownEffect] if id was never defined.
func (p *Player) PlayEffect(store *flexfx.Store, id string, pitchSteps, volumeCeiling, targetDuration float64) error {
	play, err := store.Scale(id, pitchSteps, volumeCeiling, targetDuration)
	if err != nil {
		return err
	}
	p.Enqueue(play)
	return nil
}

// PlaySilence enqueues a silent gap of d. The consumer waits it out with the
// pause primitive instead of invoking the renderer.
func (p *Player) PlaySilence(d time.Duration) {
	p.Enqueue(flexfx.NewSilence(d))
}

// Activate starts the consumer loop if the player is idle. It is idempotent:
// calling it while the loop is already running, or while the player is
// suspended or closed, is a no-op.
func (p *Player) Activate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.activateLocked()
}

// activateLocked starts the consumer goroutine when permitted.
// Must be called with p.mu held.
func (p *Player) activateLocked() {
	if p.closed || p.suspended || p.state != StateIdle {
		return
	}
	p.state = StateActive
	go p.drain()
}

// Suspend requests that draining stop at the next Play boundary. A Play that
// is already rendering always runs to completion — suspension is cooperative,
// never pre-emptive. Remaining Plays stay queued for [Player.Resume].
func (p *Player) Suspend() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || p.suspended {
		return
	}
	p.suspended = true
	if p.state == StateIdle {
		// Nothing running: the suspension takes effect immediately and
		// blocks future activation until Resume.
		p.state = StateSuspended
	}
}

// Resume clears a suspension and restarts draining from where it left off.
// A no-op when the player is not suspended.
func (p *Player) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || !p.suspended {
		return
	}
	p.suspended = false
	if p.state == StateSuspended {
		p.state = StateIdle
	}
	p.activateLocked()
}

// Clear discards every Play still queued. It does not touch a Play already
// being rendered; with the queue empty the consumer loop idles out on its
// next boundary check.
func (p *Player) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.queue = nil
	p.reportDepthLocked()
}

// QueueLength returns the number of Plays waiting in the play-list,
// excluding one currently rendering.
func (p *Player) QueueLength() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue)
}

// IsPlaying reports whether a tone or silence Play is being rendered right
// now.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// IsActive reports whether the consumer loop is running. False once the
// queue has drained (idle) or a suspension has taken effect.
func (p *Player) IsActive() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state == StateActive
}

// State returns the scheduler's current lifecycle state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Close shuts the player down: the queue is cleared, the render context is
// cancelled and all blocked waiters are released. An in-flight render is
// left to the renderer's own context handling. Close is idempotent.
func (p *Player) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.queue = nil
	p.reportDepthLocked()
	// Release every waiter; nothing will signal again after close.
	for st := range p.waiters {
		p.broadcastLocked(st)
	}
	p.mu.Unlock()

	p.cancel()
	return nil
}

// drain is the consumer loop. It runs in its own goroutine until the queue
// empties or a suspension is observed, rendering one Play at a time:
// strictly FIFO, one renderer call per tone Play (all segments concatenated,
// gapless), the pause primitive for silence Plays.
func (p *Player) drain() {
	for {
		p.mu.Lock()
		if p.closed {
			p.state = StateIdle
			p.mu.Unlock()
			return
		}
		if p.suspended {
			// Leave remaining Plays queued; no all-played signal.
			p.state = StateSuspended
			p.log.Debug("player suspended", "queued", len(p.queue))
			p.mu.Unlock()
			return
		}
		if len(p.queue) == 0 {
			p.state = StateIdle
			p.broadcastLocked(StatusAllPlayed)
			p.log.Debug("play-list drained")
			p.mu.Unlock()
			return
		}

		play := p.queue[0]
		p.queue = p.queue[1:]
		p.reportDepthLocked()

		if play.IsEmpty() {
			// A scaled zero-segment template: nothing audible, no signals.
			p.mu.Unlock()
			continue
		}

		p.playing = true
		if !play.IsSilence() {
			p.broadcastLocked(StatusStarting)
			if p.metrics != nil {
				p.metrics.PlayStarted()
			}
		}
		p.mu.Unlock()

		if play.IsSilence() {
			p.sleep(p.ctx, play.Silence)
			p.mu.Lock()
			p.playing = false
			p.mu.Unlock()
			continue
		}

		start := time.Now()
		err := p.renderer.Render(p.ctx, play.Segments)
		elapsed := time.Since(start)
		if err != nil {
			// Renderer failures are logged and swallowed: the scheduler
			// carries on with the next Play, it never dies mid-show.
			p.log.Error("render failed", "error", err, "segments", len(play.Segments))
		}

		p.mu.Lock()
		p.playing = false
		p.broadcastLocked(StatusFinished)
		if p.metrics != nil {
			p.metrics.PlayFinished(elapsed)
		}
		p.mu.Unlock()
	}
}

// reportDepthLocked pushes the current queue length to the metrics sink.
// Must be called with p.mu held.
func (p *Player) reportDepthLocked() {
	if p.metrics != nil {
		p.metrics.QueueDepth(len(p.queue))
	}
}
