package player_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MrWong99/flexfx/pkg/flexfx"
	"github.com/MrWong99/flexfx/pkg/flexfx/player"
	"github.com/MrWong99/flexfx/pkg/flexfx/player/mock"
)

// tonePlay builds a one-segment Play whose pitch doubles as a marker, so a
// test can verify the order plays were rendered in.
func tonePlay(marker float64) flexfx.Play {
	return flexfx.Play{Segments: []flexfx.Segment{{
		Wave:        flexfx.WaveSine,
		StartPitch:  marker,
		EndPitch:    marker,
		StartVolume: 100,
		EndVolume:   100,
		Duration:    20,
	}}}
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal(msg)
}

func TestFIFOOrder(t *testing.T) {
	t.Parallel()

	r := &mock.Renderer{}
	p := player.New(r)
	defer p.Close()

	const n = 10
	for i := 0; i < n; i++ {
		p.Enqueue(tonePlay(float64(100 + i)))
	}
	if err := p.AwaitAllFinished(context.Background()); err != nil {
		t.Fatalf("AwaitAllFinished: unexpected error: %v", err)
	}

	calls := r.Calls()
	if len(calls) != n {
		t.Fatalf("rendered %d plays, want %d", len(calls), n)
	}
	for i, segs := range calls {
		if got := segs[0].StartPitch; got != float64(100+i) {
			t.Errorf("render %d has marker %v, want %v (FIFO order violated)", i, got, 100+i)
		}
	}
}

func TestConcurrentProducersKeepPerProducerOrder(t *testing.T) {
	t.Parallel()

	r := &mock.Renderer{}
	p := player.New(r)
	defer p.Close()

	const producers, perProducer = 4, 25
	var wg sync.WaitGroup
	for prod := 0; prod < producers; prod++ {
		wg.Add(1)
		go func(prod int) {
			defer wg.Done()
			for seq := 0; seq < perProducer; seq++ {
				// The marker encodes producer and sequence number.
				p.Enqueue(tonePlay(float64(prod*1000 + seq + 100)))
			}
		}(prod)
	}
	wg.Wait()

	// The queue can momentarily run dry between producer bursts, so wait on
	// the render count instead of AwaitAllFinished.
	waitFor(t, 5*time.Second, func() bool {
		return r.CallCount() == producers*perProducer
	}, "not all plays were rendered")

	next := make(map[int]int)
	for i, segs := range r.Calls() {
		marker := int(segs[0].StartPitch) - 100
		prod, seq := marker/1000, marker%1000
		if seq != next[prod] {
			t.Fatalf("render %d: producer %d played sequence %d, want %d", i, prod, seq, next[prod])
		}
		next[prod]++
	}
	for prod := 0; prod < producers; prod++ {
		if next[prod] != perProducer {
			t.Errorf("producer %d had %d plays rendered, want %d", prod, next[prod], perProducer)
		}
	}
}

func TestGaplessConcatenation(t *testing.T) {
	t.Parallel()

	fx := flexfx.New("multi", 400, 80, flexfx.SegmentSpec{
		Wave: flexfx.WaveSine, EndPitch: 600, EndVolume: 60, Duration: 50,
	})
	fx.Extend(flexfx.SegmentSpec{Wave: flexfx.WaveSquare, EndPitch: 800, EndVolume: 40, Duration: 50})
	fx.Extend(flexfx.SegmentSpec{Wave: flexfx.WaveNoise, EndPitch: 200, EndVolume: 20, Duration: 50})

	r := &mock.Renderer{}
	p := player.New(r)
	defer p.Close()

	p.Enqueue(fx.Scale(0, 80, 150))
	if err := p.AwaitAllFinished(context.Background()); err != nil {
		t.Fatalf("AwaitAllFinished: unexpected error: %v", err)
	}

	calls := r.Calls()
	if len(calls) != 1 {
		t.Fatalf("got %d render calls, want 1 (all segments concatenated)", len(calls))
	}
	if len(calls[0]) != 3 {
		t.Errorf("render call carried %d segments, want 3", len(calls[0]))
	}
}

func TestSilenceUsesPausePrimitive(t *testing.T) {
	t.Parallel()

	r := &mock.Renderer{}
	var mu sync.Mutex
	var slept []time.Duration
	p := player.New(r, player.WithSleep(func(ctx context.Context, d time.Duration) {
		mu.Lock()
		slept = append(slept, d)
		mu.Unlock()
	}))
	defer p.Close()

	p.PlaySilence(300 * time.Millisecond)
	if err := p.AwaitAllFinished(context.Background()); err != nil {
		t.Fatalf("AwaitAllFinished: unexpected error: %v", err)
	}

	if got := r.CallCount(); got != 0 {
		t.Errorf("renderer invoked %d times for a silence play, want 0", got)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(slept) != 1 || slept[0] != 300*time.Millisecond {
		t.Errorf("pause primitive calls = %v, want one 300ms pause", slept)
	}
}

func TestEmptyPlayIsSkipped(t *testing.T) {
	t.Parallel()

	r := &mock.Renderer{}
	slept := 0
	var mu sync.Mutex
	p := player.New(r, player.WithSleep(func(ctx context.Context, d time.Duration) {
		mu.Lock()
		slept++
		mu.Unlock()
	}))
	defer p.Close()

	p.Enqueue(flexfx.Play{})
	p.Enqueue(tonePlay(440))
	if err := p.AwaitAllFinished(context.Background()); err != nil {
		t.Fatalf("AwaitAllFinished: unexpected error: %v", err)
	}

	if got := r.CallCount(); got != 1 {
		t.Errorf("renderer invoked %d times, want 1 (empty play skipped)", got)
	}
	mu.Lock()
	defer mu.Unlock()
	if slept != 0 {
		t.Errorf("pause primitive invoked %d times for an empty play, want 0", slept)
	}
}

func TestSuspendBeforeActivation(t *testing.T) {
	t.Parallel()

	r := &mock.Renderer{}
	p := player.New(r)
	defer p.Close()

	p.Suspend()
	for i := 0; i < 3; i++ {
		p.Enqueue(tonePlay(float64(100 + i)))
	}

	if got := p.QueueLength(); got != 3 {
		t.Fatalf("QueueLength = %d, want 3 (nothing drains while suspended)", got)
	}
	if p.IsActive() {
		t.Error("IsActive = true while suspended, want false")
	}
	if got := r.CallCount(); got != 0 {
		t.Fatalf("renderer invoked %d times while suspended, want 0", got)
	}

	p.Resume()
	if err := p.AwaitAllFinished(context.Background()); err != nil {
		t.Fatalf("AwaitAllFinished: unexpected error: %v", err)
	}
	calls := r.Calls()
	if len(calls) != 3 {
		t.Fatalf("rendered %d plays after resume, want 3", len(calls))
	}
	for i, segs := range calls {
		if got := segs[0].StartPitch; got != float64(100+i) {
			t.Errorf("render %d has marker %v, want %v", i, got, 100+i)
		}
	}
}

func TestSuspendMidDrainStopsAtPlayBoundary(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	r := &mock.Renderer{Block: block}
	p := player.New(r)
	defer p.Close()

	p.Enqueue(tonePlay(1))
	p.Enqueue(tonePlay(2))

	// Wait for the first render to be in flight, then request suspension.
	waitFor(t, 2*time.Second, p.IsPlaying, "first play never started")
	p.Suspend()

	// Suspension is not pre-emptive: the render is still in flight.
	if !p.IsPlaying() {
		t.Error("IsPlaying = false during an in-flight render")
	}

	close(block)
	waitFor(t, 2*time.Second, func() bool { return !p.IsActive() }, "loop never stopped after suspension")

	if got := r.CallCount(); got != 1 {
		t.Fatalf("rendered %d plays before suspension took effect, want 1", got)
	}
	if got := p.QueueLength(); got != 1 {
		t.Fatalf("QueueLength = %d after suspension, want 1 (remainder retained)", got)
	}

	// Resume renders exactly the remainder, in order, no duplication.
	p.Resume()
	if err := p.AwaitAllFinished(context.Background()); err != nil {
		t.Fatalf("AwaitAllFinished: unexpected error: %v", err)
	}
	calls := r.Calls()
	if len(calls) != 2 {
		t.Fatalf("rendered %d plays in total, want 2", len(calls))
	}
	if calls[1][0].StartPitch != 2 {
		t.Errorf("resumed render has marker %v, want 2", calls[1][0].StartPitch)
	}
}

func TestClearDiscardsQueuedPlays(t *testing.T) {
	t.Parallel()

	r := &mock.Renderer{}
	p := player.New(r)
	defer p.Close()

	p.Suspend()
	for i := 0; i < 4; i++ {
		p.Enqueue(tonePlay(float64(i)))
	}
	p.Clear()

	if got := p.QueueLength(); got != 0 {
		t.Fatalf("QueueLength = %d after Clear, want 0", got)
	}

	p.Resume()
	if err := p.AwaitAllFinished(context.Background()); err != nil {
		t.Fatalf("AwaitAllFinished: unexpected error: %v", err)
	}
	if got := r.CallCount(); got != 0 {
		t.Errorf("renderer invoked %d times after Clear, want 0", got)
	}
	waitFor(t, 2*time.Second, func() bool { return p.State() == player.StateIdle }, "player never idled after clear")
}

func TestAwaitAllFinishedReturnsImmediatelyWhenIdle(t *testing.T) {
	t.Parallel()

	p := player.New(&mock.Renderer{})
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := p.AwaitAllFinished(ctx); err != nil {
		t.Fatalf("AwaitAllFinished on an idle empty player: %v", err)
	}
}

func TestAwaitPlayFinishNoOpWhenNothingPlaying(t *testing.T) {
	t.Parallel()

	p := player.New(&mock.Renderer{})
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := p.AwaitPlayFinish(ctx); err != nil {
		t.Fatalf("AwaitPlayFinish with nothing playing: %v", err)
	}
}

func TestAwaitPlayStart(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	r := &mock.Renderer{Block: block}
	p := player.New(r)
	defer p.Close()

	started := make(chan error, 1)
	go func() {
		started <- p.AwaitPlayStart(context.Background())
	}()

	// Give the waiter a moment to register, then feed the queue.
	time.Sleep(10 * time.Millisecond)
	p.Enqueue(tonePlay(440))

	select {
	case err := <-started:
		if err != nil {
			t.Fatalf("AwaitPlayStart: unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("AwaitPlayStart never unblocked")
	}
	close(block)
}

func TestAwaitHelpersLiftSuspension(t *testing.T) {
	t.Parallel()

	r := &mock.Renderer{}
	p := player.New(r)
	defer p.Close()

	p.Suspend()
	p.Enqueue(tonePlay(440))

	// AwaitAllFinished must un-suspend and activate, then see the drain out.
	if err := p.AwaitAllFinished(context.Background()); err != nil {
		t.Fatalf("AwaitAllFinished: unexpected error: %v", err)
	}
	if got := r.CallCount(); got != 1 {
		t.Errorf("renderer invoked %d times, want 1", got)
	}
}

func TestRendererErrorsDoNotStopTheShow(t *testing.T) {
	t.Parallel()

	r := &mock.Renderer{RenderError: errors.New("device busy")}
	p := player.New(r)
	defer p.Close()

	p.Enqueue(tonePlay(1))
	p.Enqueue(tonePlay(2))
	if err := p.AwaitAllFinished(context.Background()); err != nil {
		t.Fatalf("AwaitAllFinished: unexpected error: %v", err)
	}
	if got := r.CallCount(); got != 2 {
		t.Errorf("rendered %d plays despite renderer errors, want 2", got)
	}
}

func TestPlayEffect(t *testing.T) {
	t.Parallel()

	store := flexfx.NewStore()
	store.Define("ting", 2000, 100, flexfx.SegmentSpec{
		Wave: flexfx.WaveSine, EndPitch: 2000, EndVolume: 25, Duration: 200,
	})

	r := &mock.Renderer{}
	p := player.New(r)
	defer p.Close()

	t.Run("unknown id", func(t *testing.T) {
		err := p.PlayEffect(store, "ghost", 0, 100, 200)
		if !errors.Is(err, flexfx.ErrUnknownEffect) {
			t.Fatalf("PlayEffect on unknown id: err = %v, want ErrUnknownEffect", err)
		}
	})

	t.Run("known id renders scaled segments", func(t *testing.T) {
		if err := p.PlayEffect(store, "ting", 12, 25, 200); err != nil {
			t.Fatalf("PlayEffect: unexpected error: %v", err)
		}
		if err := p.AwaitAllFinished(context.Background()); err != nil {
			t.Fatalf("AwaitAllFinished: unexpected error: %v", err)
		}
		calls := r.Calls()
		if len(calls) != 1 {
			t.Fatalf("rendered %d plays, want 1", len(calls))
		}
		seg := calls[0][0]
		if seg.StartPitch < 3999 || seg.StartPitch > 4001 {
			t.Errorf("start pitch %v, want ~4000 (one octave up)", seg.StartPitch)
		}
	})
}

func TestIsPlayingTracksRenderWindow(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	r := &mock.Renderer{Block: block}
	p := player.New(r)
	defer p.Close()

	if p.IsPlaying() {
		t.Fatal("IsPlaying = true before anything was enqueued")
	}

	p.Enqueue(tonePlay(440))
	waitFor(t, 2*time.Second, p.IsPlaying, "IsPlaying never became true")

	close(block)
	if err := p.AwaitAllFinished(context.Background()); err != nil {
		t.Fatalf("AwaitAllFinished: unexpected error: %v", err)
	}
	if p.IsPlaying() {
		t.Error("IsPlaying = true after the queue drained")
	}
}

func TestCloseReleasesWaiters(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	defer close(block)
	r := &mock.Renderer{Block: block}
	p := player.New(r)

	p.Enqueue(tonePlay(440))
	waitFor(t, 2*time.Second, p.IsPlaying, "play never started")

	done := make(chan error, 1)
	go func() {
		done <- p.AwaitAllFinished(context.Background())
	}()

	time.Sleep(10 * time.Millisecond)
	if err := p.Close(); err != nil {
		t.Fatalf("Close: unexpected error: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("AwaitAllFinished still blocked after Close")
	}
}
