// Package mock provides an in-memory mock implementation of the
// [player.Renderer] interface for use in unit tests.
//
// The mock is safe for concurrent use. It records every Render call so that
// tests can assert on call counts and segment contents, and it exposes
// exported fields the test can set to control latency and return values.
//
// Typical usage:
//
//	r := &mock.Renderer{Delay: 5 * time.Millisecond}
//	p := player.New(r)
//	p.Enqueue(play)
//	p.AwaitAllFinished(ctx)
//	calls := r.Calls()
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/MrWong99/flexfx/pkg/flexfx"
	"github.com/MrWong99/flexfx/pkg/flexfx/player"
)

// Compile-time interface assertion.
var _ player.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of [player.Renderer].
// Set the exported fields before use; inspect recorded calls after.
type Renderer struct {
	mu sync.Mutex

	// Delay is how long each Render call blocks, simulating real playback
	// time. Zero means Render returns immediately.
	Delay time.Duration

	// RenderError is returned by every Render call.
	RenderError error

	// Block, when non-nil, is received from at the start of every Render
	// call, letting a test hold a render in flight until it decides to
	// release it.
	Block <-chan struct{}

	calls [][]flexfx.Segment
}

// Render implements [player.Renderer]. It records the segment slice (copied,
// so later mutations by the caller are not observed), optionally blocks, and
// returns RenderError.
func (r *Renderer) Render(ctx context.Context, segments []flexfx.Segment) error {
	recorded := make([]flexfx.Segment, len(segments))
	copy(recorded, segments)

	r.mu.Lock()
	r.calls = append(r.calls, recorded)
	block := r.Block
	delay := r.Delay
	err := r.RenderError
	r.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if delay > 0 {
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

// Calls returns a copy of every recorded Render invocation, in order.
func (r *Renderer) Calls() [][]flexfx.Segment {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]flexfx.Segment, len(r.calls))
	copy(out, r.calls)
	return out
}

// CallCount returns how many times Render was called.
func (r *Renderer) CallCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// Reset discards all recorded calls.
func (r *Renderer) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}
