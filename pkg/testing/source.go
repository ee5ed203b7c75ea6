package testing

import "time"

// ManualSource is a motion.FrameSource pumped by hand. Tests register a
// scheduler against it, then call Step to advance the clock one frame
// and deliver a tick.
//
// ManualSource delivers ticks synchronously on the calling goroutine,
// which makes it the single logical thread the scheduler requires.
type ManualSource struct {
	clock  *FakeClock
	subs   map[int]func(time.Time)
	nextID int
}

// NewManualSource returns a ManualSource over a fresh FakeClock.
func NewManualSource() *ManualSource {
	return &ManualSource{
		clock: NewFakeClock(),
		subs:  make(map[int]func(time.Time)),
	}
}

// Now returns the current fake time.
func (m *ManualSource) Now() time.Time { return m.clock.Now() }

// OnTick registers a per-frame callback. The returned function cancels
// the subscription.
func (m *ManualSource) OnTick(fn func(now time.Time)) (cancel func()) {
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	return func() { delete(m.subs, id) }
}

// Advance moves the clock forward by d without delivering a tick.
func (m *ManualSource) Advance(d time.Duration) { m.clock.Advance(d) }

// Tick delivers one frame at the current clock time.
func (m *ManualSource) Tick() {
	now := m.clock.Now()
	// Subscriptions are stable during a tick; schedulers defer their
	// own mutations internally.
	for _, fn := range m.subs {
		fn(now)
	}
}

// Step advances the clock by d and delivers a tick, like one frame of a
// real display loop.
func (m *ManualSource) Step(d time.Duration) {
	m.Advance(d)
	m.Tick()
}

// StepN delivers n frames of duration d each.
func (m *ManualSource) StepN(n int, d time.Duration) {
	for range n {
		m.Step(d)
	}
}
