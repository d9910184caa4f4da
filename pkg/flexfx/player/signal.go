package player

import "context"

// Status identifies an activity-signal transition broadcast by the consumer
// loop. Any number of waiters may observe the same broadcast.
type Status int

const (
	// StatusStarting fires just before a tone Play begins rendering.
	// Silence Plays do not raise it.
	StatusStarting Status = iota

	// StatusFinished fires after a tone Play's render call returns.
	StatusFinished

	// StatusAllPlayed fires when the consumer loop finds the play-list
	// empty and goes idle. A suspension does not raise it — the remaining
	// Plays are still pending.
	StatusAllPlayed
)

// String returns the status name for logging.
func (s Status) String() string {
	switch s {
	case StatusStarting:
		return "starting"
	case StatusFinished:
		return "finished"
	case StatusAllPlayed:
		return "all-played"
	}
	return "unknown"
}

// broadcastLocked releases every waiter registered for st.
// Must be called with p.mu held.
func (p *Player) broadcastLocked(st Status) {
	for _, ch := range p.waiters[st] {
		close(ch)
	}
	delete(p.waiters, st)
}

// subscribeLocked registers a single-broadcast waiter channel for st.
// Must be called with p.mu held.
func (p *Player) subscribeLocked(st Status) <-chan struct{} {
	ch := make(chan struct{})
	p.waiters[st] = append(p.waiters[st], ch)
	return ch
}

// Await blocks until the next broadcast of st, the context is cancelled, or
// the player is closed. Like all Await helpers it first lifts any suspension
// and activates the consumer loop; beyond that it is purely observational.
func (p *Player) Await(ctx context.Context, st Status) error {
	p.mu.Lock()
	ch := p.subscribeLocked(st)
	p.resumeAndActivateLocked()
	p.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-ch:
		return nil
	}
}

// AwaitPlayStart blocks until the next tone Play begins rendering. It can
// block indefinitely if nothing is ever enqueued.
func (p *Player) AwaitPlayStart(ctx context.Context) error {
	return p.Await(ctx, StatusStarting)
}

// AwaitPlayFinish blocks until the Play currently rendering finishes.
// Returns immediately when nothing is playing.
func (p *Player) AwaitPlayFinish(ctx context.Context) error {
	p.mu.Lock()
	if !p.playing {
		p.resumeAndActivateLocked()
		p.mu.Unlock()
		return nil
	}
	ch := p.subscribeLocked(StatusFinished)
	p.resumeAndActivateLocked()
	p.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-ch:
		return nil
	}
}

// AwaitAllFinished blocks until the play-list has fully drained. Returns
// immediately when the player is already idle with an empty queue.
func (p *Player) AwaitAllFinished(ctx context.Context) error {
	p.mu.Lock()
	if p.state == StateIdle && len(p.queue) == 0 && !p.playing && !p.suspended {
		p.mu.Unlock()
		return nil
	}
	ch := p.subscribeLocked(StatusAllPlayed)
	p.resumeAndActivateLocked()
	p.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-ch:
		return nil
	}
}

// resumeAndActivateLocked lifts a pending suspension and ensures the
// consumer loop is running, so a waiter can never deadlock on a scheduler it
// itself left suspended. Must be called with p.mu held.
func (p *Player) resumeAndActivateLocked() {
	if p.closed {
		return
	}
	if p.suspended {
		p.suspended = false
		if p.state == StateSuspended {
			p.state = StateIdle
		}
	}
	p.activateLocked()
}
