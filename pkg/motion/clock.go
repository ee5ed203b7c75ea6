package motion

import (
	"sync"
	"time"
)

// Clock provides time for animations. Production code uses the host's
// frame-timing facility; tests inject a fake clock to control animation
// timing deterministically.
type Clock interface {
	Now() time.Time
}

// FrameSource drives a [Scheduler]. It delivers one callback per display
// refresh or timer period and supplies the monotonic timestamps the
// scheduler uses to advance animations.
//
// Hosts with their own frame loop (a render engine, a game loop) should
// implement FrameSource over that loop. [TickerSource] is provided for
// hosts without one.
type FrameSource interface {
	Clock

	// OnTick registers fn to be invoked once per frame with the current
	// timestamp. The returned function cancels the subscription.
	OnTick(fn func(now time.Time)) (cancel func())
}

// TickerSource is a FrameSource backed by a time.Ticker.
//
// Ticks are delivered on the source's own goroutine. A Scheduler is not
// safe for concurrent use, so callers using a TickerSource must issue
// Register/Cancel calls either before Start or from within tick
// callbacks.
type TickerSource struct {
	interval time.Duration

	mu      sync.Mutex
	subs    map[int]func(time.Time)
	nextID  int
	stop    chan struct{}
	running bool
}

// NewTickerSource creates a ticker source firing at the given interval.
// Sixteen milliseconds approximates a 60 Hz display.
func NewTickerSource(interval time.Duration) *TickerSource {
	return &TickerSource{
		interval: interval,
		subs:     make(map[int]func(time.Time)),
	}
}

// Now returns the current system time.
func (t *TickerSource) Now() time.Time { return time.Now() }

// OnTick registers a per-frame callback. The returned function cancels
// the subscription.
func (t *TickerSource) OnTick(fn func(now time.Time)) (cancel func()) {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.subs[id] = fn
	t.mu.Unlock()
	return func() {
		t.mu.Lock()
		delete(t.subs, id)
		t.mu.Unlock()
	}
}

// Start begins delivering ticks. Calling Start on a running source is a
// no-op.
func (t *TickerSource) Start() {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return
	}
	t.running = true
	t.stop = make(chan struct{})
	stop := t.stop
	t.mu.Unlock()

	go t.run(stop)
}

// Stop halts tick delivery. Subscriptions are kept; Start resumes them.
func (t *TickerSource) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return
	}
	t.running = false
	close(t.stop)
}

func (t *TickerSource) run(stop chan struct{}) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			// Copy to avoid holding the lock during callbacks.
			t.mu.Lock()
			subs := make([]func(time.Time), 0, len(t.subs))
			for _, fn := range t.subs {
				subs = append(subs, fn)
			}
			t.mu.Unlock()
			for _, fn := range subs {
				fn(now)
			}
		case <-stop:
			return
		}
	}
}
