// Package motion implements a per-object property animation scheduler.
//
// # Core Components
//
//   - [Scheduler]: owns the registry of running animations and drives
//     them from a [FrameSource], writing interpolated values through
//     caller-supplied accessors and firing per-frame and completion
//     callbacks in a defined order.
//
//   - [Spec]: describes how an animation advances. [Basic] is
//     time-bound easing toward a target, [Spring] is damped harmonic
//     motion, [Decay] is friction-only motion from an initial velocity.
//
//   - [Accessor]: the typed read/write pair bound to one property.
//     [PtrAccessor] and [FuncAccessor] cover the common cases;
//     [Value.Bind] maps the float64 track onto richer property types.
//
//   - [Curve]: easing functions for Basic animations, including
//     [CubicBezier] for custom curves.
//
// # Keys and replacement
//
// Every animation is registered under an (owner, key) slot and at most
// one animation occupies a slot at a time. Registering onto an occupied
// slot cancels the previous animation first: its completion callback
// fires with finished=false strictly before the new animation ticks.
// Completion callbacks fire exactly once per registered animation,
// either with finished=true on natural termination or finished=false on
// cancellation, replacement or accessor failure.
//
// # Concurrency
//
// The scheduler is single-threaded and cooperative. All registry
// mutation, interpolation and callbacks happen on the goroutine that
// delivers FrameSource ticks, which must be the same goroutine issuing
// Register and Cancel calls. Mutations requested from inside a callback
// are deferred until the current frame's pass completes, so a tick never
// observes its own side effects.
//
// A spring or decay animation whose threshold is never satisfied runs
// until explicitly cancelled; there is no timeout beyond each spec's own
// termination condition.
package motion

import (
	"fmt"
	"time"

	"github.com/go-motion/motion/pkg/errs"
)

// State is the lifecycle state of an animation. Animations move from
// StateRunning to exactly one terminal state and never re-enter
// StateRunning.
type State int

const (
	// StateRunning means the animation is registered and ticking.
	StateRunning State = iota
	// StateCompleted means the animation reached its terminal condition.
	StateCompleted
	// StateCancelled means the animation was cancelled, replaced, or
	// failed in its accessor.
	StateCancelled
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Callbacks carries the per-animation notification hooks. Both fields
// are optional.
type Callbacks struct {
	// OnFrame fires after each value write with the updated animation.
	OnFrame func(a *Animation)
	// OnComplete fires exactly once when the animation leaves
	// StateRunning: finished is true on natural termination, false on
	// cancellation, replacement or accessor failure.
	OnComplete func(finished bool)
}

// Animation is one registered animation. The scheduler mutates it every
// tick; callers observe it through the read-only accessors.
type Animation struct {
	handle    PropertyHandle
	key       string
	spec      Spec
	accessor  Accessor
	callbacks Callbacks

	start time.Time
	last  time.Time
	tr    track
	state State
}

// Owner returns the identity the animation is registered under.
func (a *Animation) Owner() any { return a.handle.Owner }

// Key returns the animation key within its owner.
func (a *Animation) Key() string { return a.key }

// Spec returns the immutable spec the animation was registered with.
func (a *Animation) Spec() Spec { return a.spec }

// Value returns the most recently written property value.
func (a *Animation) Value() float64 { return a.tr.value }

// Velocity returns the current velocity in value units per second.
func (a *Animation) Velocity() float64 { return a.tr.velocity }

// State returns the lifecycle state.
func (a *Animation) State() State { return a.state }

// Scheduler drives property animations from a FrameSource.
//
// A Scheduler subscribes to its source on creation and keeps ticking
// until Close. It is not safe for concurrent use; see the package
// documentation for the threading model.
type Scheduler struct {
	source     FrameSource
	cancelTick func()
	reg        *registry

	ticking bool
	pending []func()
	scratch []*Animation
}

// NewScheduler creates a scheduler driven by src.
func NewScheduler(src FrameSource) *Scheduler {
	s := &Scheduler{
		source: src,
		reg:    newRegistry(),
	}
	s.cancelTick = src.OnTick(s.tick)
	return s
}

// Close unsubscribes from the frame source and cancels every running
// animation, firing each completion callback with finished=false.
func (s *Scheduler) Close() {
	if s.cancelTick != nil {
		s.cancelTick()
		s.cancelTick = nil
	}
	for _, a := range s.reg.snapshot(nil) {
		s.reg.remove(a.handle.Owner, a.key)
		s.finish(a, false)
	}
}

// Register starts an animation on the (handle.Owner, key) slot.
//
// The spec is validated and the accessor's current value captured before
// anything is inserted; a malformed spec or failing read returns an
// error and leaves the registry untouched. If the slot is occupied the
// prior animation is cancelled first, its completion callback firing
// with finished=false before the new animation ever ticks.
//
// When called from inside a tick callback the insertion is deferred to
// the end of the current frame pass.
func (s *Scheduler) Register(handle PropertyHandle, key string, spec Spec, acc Accessor, cb Callbacks) (*Animation, error) {
	const op = "motion.Register"
	if handle.Owner == nil {
		return nil, &errs.Error{Op: op, Kind: errs.KindSpec, Key: key,
			Err: fmt.Errorf("property handle owner must not be nil")}
	}
	if key == "" {
		return nil, &errs.Error{Op: op, Kind: errs.KindSpec, Owner: handle.Owner,
			Err: fmt.Errorf("animation key must not be empty")}
	}
	if spec == nil {
		return nil, &errs.Error{Op: op, Kind: errs.KindSpec, Owner: handle.Owner, Key: key,
			Err: fmt.Errorf("spec must not be nil")}
	}
	if err := spec.Validate(); err != nil {
		return nil, &errs.Error{Op: op, Kind: errs.KindSpec, Owner: handle.Owner, Key: key, Err: err}
	}
	if acc == nil {
		return nil, &errs.Error{Op: op, Kind: errs.KindSpec, Owner: handle.Owner, Key: key,
			Err: fmt.Errorf("accessor must not be nil")}
	}

	from, err := safeRead(acc)
	if err != nil {
		return nil, &errs.Error{Op: op, Kind: errs.KindAccessor, Owner: handle.Owner, Key: key,
			Err: fmt.Errorf("property %q: %w", handle.Property, err)}
	}

	a := &Animation{
		handle:    handle,
		key:       key,
		spec:      spec,
		accessor:  acc,
		callbacks: cb,
		tr: track{
			from:     from,
			value:    from,
			velocity: spec.initialVelocity(),
		},
		state: StateRunning,
	}

	s.run(func() {
		if old, ok := s.reg.get(handle.Owner, key); ok {
			s.reg.remove(handle.Owner, key)
			s.finish(old, false)
		}
		a.start = s.source.Now()
		a.last = a.start
		s.reg.insert(a)
	})
	return a, nil
}

// Cancel removes the animation at (owner, key) and fires its completion
// callback with finished=false. Cancelling an unknown slot is a no-op.
// When called from inside a tick callback the cancellation applies after
// the current frame pass.
func (s *Scheduler) Cancel(owner any, key string) {
	s.run(func() {
		a, ok := s.reg.get(owner, key)
		if !ok {
			return
		}
		s.reg.remove(owner, key)
		s.finish(a, false)
	})
}

// CancelOwner cancels every animation registered under owner.
func (s *Scheduler) CancelOwner(owner any) {
	s.run(func() {
		for _, a := range s.reg.ownerAnimations(owner) {
			s.reg.remove(owner, a.key)
			s.finish(a, false)
		}
	})
}

// Active returns the number of running animations.
func (s *Scheduler) Active() int { return s.reg.size() }

// Running reports whether an animation occupies the (owner, key) slot.
func (s *Scheduler) Running(owner any, key string) bool {
	_, ok := s.reg.get(owner, key)
	return ok
}

// run executes a registry mutation now, or defers it to the end of the
// frame pass if a tick is in progress.
func (s *Scheduler) run(mutate func()) {
	if s.ticking {
		s.pending = append(s.pending, mutate)
		return
	}
	mutate()
}

// tick advances every animation registered before this frame. The
// snapshot is taken up front so callbacks can register and cancel freely
// without perturbing the pass; their mutations apply once the pass ends.
func (s *Scheduler) tick(now time.Time) {
	s.scratch = s.reg.snapshot(s.scratch[:0])
	s.ticking = true
	for _, a := range s.scratch {
		if a.state != StateRunning {
			continue
		}
		s.step(a, now)
	}
	s.ticking = false

	for len(s.pending) > 0 {
		mutate := s.pending[0]
		s.pending = s.pending[1:]
		mutate()
	}
}

func (s *Scheduler) step(a *Animation, now time.Time) {
	elapsed := now.Sub(a.start)
	dt := now.Sub(a.last)
	if dt < 0 {
		dt = 0
	}
	a.last = now

	done := a.spec.step(&a.tr, elapsed, dt, a.handle.threshold())

	if err := safeWrite(a.accessor, a.tr.value); err != nil {
		s.fail(a, err)
		return
	}
	if a.callbacks.OnFrame != nil {
		a.callbacks.OnFrame(a)
	}
	if done {
		s.removeLater(a)
		s.finish(a, true)
	}
}

// fail cancels a after an accessor error, reports the failure, and
// leaves the rest of the frame pass untouched.
func (s *Scheduler) fail(a *Animation, err error) {
	errs.Report(&errs.Error{
		Op:    "motion.tick",
		Kind:  errs.KindAccessor,
		Owner: a.handle.Owner,
		Key:   a.key,
		Err:   fmt.Errorf("property %q: %w", a.handle.Property, err),
	})
	s.removeLater(a)
	s.finish(a, false)
}

// removeLater queues a's eviction for the end of the frame pass. The
// identity check keeps the queued eviction from removing a replacement
// animation inserted on the same key during the same tick.
func (s *Scheduler) removeLater(a *Animation) {
	s.pending = append(s.pending, func() {
		if cur, ok := s.reg.get(a.handle.Owner, a.key); ok && cur == a {
			s.reg.remove(a.handle.Owner, a.key)
		}
	})
}

// finish moves a to its terminal state and fires the completion
// callback. The state guard makes completion exactly-once.
func (s *Scheduler) finish(a *Animation, finished bool) {
	if a.state != StateRunning {
		return
	}
	if finished {
		a.state = StateCompleted
	} else {
		a.state = StateCancelled
	}
	if a.callbacks.OnComplete != nil {
		a.callbacks.OnComplete(finished)
	}
}

func safeRead(acc Accessor) (v float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("accessor read panic: %v", r)
		}
	}()
	return acc.Read()
}

func safeWrite(acc Accessor, v float64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("accessor write panic: %v", r)
		}
	}()
	return acc.Write(v)
}
