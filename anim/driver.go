// Package anim drives per-scene frame loops.
//
// A Driver ticks on a Scheduler. Every tick drains tasks posted from other
// goroutines, advances the shared clock into each registered uniform set,
// runs the scene's update step, renders, and requests the next frame.
// All of that happens on the scheduler's goroutine, so scene state needs no
// locking. Stop is race-free: a tick already running finishes its render
// but never requests another frame.
package anim

import (
	"errors"
	"sync"
	"time"

	"github.com/gogpu/vista"
	"github.com/gogpu/vista/scene"
)

// DampingFactor is the fraction of the remaining distance covered per frame
// when easing toward a pointer target.
const DampingFactor = 0.05

// ErrStopped is returned when starting a driver that was stopped.
var ErrStopped = errors.New("anim: driver stopped")

// Damp moves current toward target by the fraction k. For 0 < k < 1 the
// sequence produced by repeated application is monotone and never passes
// target.
func Damp(current, target, k float64) float64 {
	return current + (target-current)*k
}

// Frame describes one tick.
type Frame struct {
	// Index counts ticks from zero.
	Index uint64
	// Now is the scheduler timestamp of the tick.
	Now time.Time
	// Elapsed is the time since the first tick.
	Elapsed time.Duration
}

// Seconds returns Elapsed in seconds, the unit shader time uniforms use.
func (f Frame) Seconds() float64 { return f.Elapsed.Seconds() }

// Option configures a Driver.
type Option func(*Driver)

// WithScheduler sets the frame source. Without it the driver creates a
// TickerScheduler and closes it on Stop.
func WithScheduler(s Scheduler) Option {
	return func(d *Driver) { d.sched = s }
}

// WithUniforms sets the source of uniform sets whose time entry is advanced
// every tick. It is called once per tick so sets added by late scene
// construction are picked up.
func WithUniforms(fn func() []*scene.Uniforms) Option {
	return func(d *Driver) { d.uniforms = fn }
}

// WithUpdate sets the per-scene update step.
func WithUpdate(fn func(Frame)) Option {
	return func(d *Driver) { d.update = fn }
}

// WithRender sets the render step. Render errors are logged and the loop
// keeps running.
func WithRender(fn func(Frame) error) Option {
	return func(d *Driver) { d.render = fn }
}

// Driver is a cooperative frame loop.
type Driver struct {
	sched    Scheduler
	owned    *TickerScheduler
	uniforms func() []*scene.Uniforms
	update   func(Frame)
	render   func(Frame) error

	mu       sync.Mutex
	tasks    []task
	running  bool
	stopped  bool
	inTick   bool
	pending  FrameID
	finalize []func()

	// loop goroutine only
	start     time.Time
	frames    uint64
	renderErr bool
}

// New returns a stopped driver.
func New(opts ...Option) *Driver {
	d := &Driver{}
	for _, opt := range opts {
		opt(d)
	}
	if d.sched == nil {
		d.owned = NewTickerScheduler(DefaultFrameInterval)
		d.sched = d.owned
	}
	return d
}

// task is a posted function and the cleanup to run instead when the loop
// stops before reaching it.
type task struct {
	run  func()
	drop func()
}

// Post queues fn to run on the loop goroutine at the start of the next
// tick. It reports false, dropping fn, once the driver is stopped.
func (d *Driver) Post(fn func()) bool {
	return d.PostOrDrop(fn, nil)
}

// PostOrDrop is Post with a cleanup: when the driver stops while fn is
// still queued, drop runs in its place. Exactly one of fn and drop runs for
// an accepted task. drop may be nil.
func (d *Driver) PostOrDrop(fn, drop func()) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return false
	}
	d.tasks = append(d.tasks, task{run: fn, drop: drop})
	return true
}

// Start requests the first frame. Starting a running driver is a no-op;
// a stopped driver cannot be restarted.
func (d *Driver) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return ErrStopped
	}
	if d.running {
		return nil
	}
	d.running = true
	d.pending = d.sched.RequestFrame(d.tick)
	vista.Logger().Debug("anim: loop started")
	return nil
}

// Stop cancels the loop. It is safe to call from any goroutine, including
// from inside a tick, and more than once.
func (d *Driver) Stop() { d.StopThen(nil) }

// StopThen cancels the loop and runs fn once no tick is in flight: right
// away when the loop is idle, or on the loop goroutine after the current
// tick has rendered. Queued tasks are dropped first. fn may be nil.
func (d *Driver) StopThen(fn func()) {
	d.mu.Lock()
	first := !d.stopped
	d.stopped = true
	d.running = false
	dropped := d.tasks
	d.tasks = nil
	pending := d.pending
	d.pending = 0
	deferred := d.inTick && fn != nil
	if deferred {
		d.finalize = append(d.finalize, fn)
	}
	d.mu.Unlock()

	if first {
		if pending != 0 {
			d.sched.CancelFrame(pending)
		}
		if d.owned != nil {
			d.owned.Close()
		}
		vista.Logger().Debug("anim: loop stopped", "dropped", len(dropped))
	}
	for _, t := range dropped {
		if t.drop != nil {
			t.drop()
		}
	}
	if fn != nil && !deferred {
		fn()
	}
}

// Running reports whether the loop is scheduled.
func (d *Driver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

// Stopped reports whether Stop was called.
func (d *Driver) Stopped() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stopped
}

func (d *Driver) tick(now time.Time) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.pending = 0
	d.inTick = true
	tasks := d.tasks
	d.tasks = nil
	d.mu.Unlock()

	for _, t := range tasks {
		t.run()
	}

	if d.frames == 0 {
		d.start = now
	}
	f := Frame{Index: d.frames, Now: now, Elapsed: now.Sub(d.start)}
	d.frames++

	if d.uniforms != nil {
		secs := f.Seconds()
		for _, u := range d.uniforms() {
			u.SetTime(secs)
		}
	}
	if d.update != nil {
		d.update(f)
	}
	if d.render != nil {
		if err := d.render(f); err != nil {
			// Logged once per loop; a failing surface fails every frame.
			if !d.renderErr {
				vista.Logger().Warn("anim: render failed", "frame", f.Index, "err", err)
			}
			d.renderErr = true
		}
	}

	d.mu.Lock()
	d.inTick = false
	if !d.stopped {
		d.pending = d.sched.RequestFrame(d.tick)
	}
	finalize := d.finalize
	d.finalize = nil
	d.mu.Unlock()

	for _, fn := range finalize {
		fn()
	}
}
