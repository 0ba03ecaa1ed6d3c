package anim

import (
	"sync"
	"time"
)

// FrameID identifies a requested frame callback. Zero is never issued.
type FrameID uint64

// Scheduler is the host's per-frame callback source.
//
// RequestFrame queues fn to run once on the next frame. CancelFrame drops a
// queued callback; cancelling an unknown or already run frame is a no-op.
type Scheduler interface {
	RequestFrame(fn func(now time.Time)) FrameID
	CancelFrame(id FrameID)
}

// DefaultFrameInterval is the TickerScheduler period used when none is
// given, about 60 frames per second.
const DefaultFrameInterval = time.Second / 60

type frameRequest struct {
	id FrameID
	fn func(time.Time)
}

// frameQueue holds pending frame callbacks in request order.
type frameQueue struct {
	mu      sync.Mutex
	nextID  FrameID
	pending []frameRequest
}

func (q *frameQueue) request(fn func(time.Time)) FrameID {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.nextID++
	q.pending = append(q.pending, frameRequest{id: q.nextID, fn: fn})
	return q.nextID
}

func (q *frameQueue) cancel(id FrameID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, r := range q.pending {
		if r.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// take removes and returns everything queued so far. Callbacks requested
// while these run land in the next frame.
func (q *frameQueue) take() []frameRequest {
	q.mu.Lock()
	defer q.mu.Unlock()
	reqs := q.pending
	q.pending = nil
	return reqs
}

func (q *frameQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// TickerScheduler runs frame callbacks on a single goroutine driven by a
// time.Ticker. The goroutine starts with the first request and exits on
// Close.
type TickerScheduler struct {
	interval time.Duration
	queue    frameQueue

	once    sync.Once
	mu      sync.Mutex
	started bool
	done    chan struct{}
}

// NewTickerScheduler returns a scheduler firing every interval. A
// non-positive interval selects DefaultFrameInterval.
func NewTickerScheduler(interval time.Duration) *TickerScheduler {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &TickerScheduler{interval: interval, done: make(chan struct{})}
}

// Interval returns the frame period.
func (s *TickerScheduler) Interval() time.Duration { return s.interval }

// RequestFrame implements Scheduler. Requests after Close never run.
func (s *TickerScheduler) RequestFrame(fn func(time.Time)) FrameID {
	id := s.queue.request(fn)
	s.mu.Lock()
	if !s.started {
		s.started = true
		go s.loop()
	}
	s.mu.Unlock()
	return id
}

// CancelFrame implements Scheduler.
func (s *TickerScheduler) CancelFrame(id FrameID) { s.queue.cancel(id) }

func (s *TickerScheduler) loop() {
	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-s.done:
			return
		case now := <-t.C:
			for _, r := range s.queue.take() {
				select {
				case <-s.done:
					return
				default:
				}
				r.fn(now)
			}
		}
	}
}

// Close stops the loop goroutine. Calling it again is a no-op.
func (s *TickerScheduler) Close() {
	s.once.Do(func() { close(s.done) })
}

// ManualScheduler runs frames only when Advance or Step is called, on the
// caller's goroutine. It drives tests and headless snapshots.
type ManualScheduler struct {
	queue frameQueue

	mu  sync.Mutex
	now time.Time
}

// NewManualScheduler returns a scheduler whose clock starts at start.
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

// RequestFrame implements Scheduler.
func (s *ManualScheduler) RequestFrame(fn func(time.Time)) FrameID {
	return s.queue.request(fn)
}

// CancelFrame implements Scheduler.
func (s *ManualScheduler) CancelFrame(id FrameID) { s.queue.cancel(id) }

// Pending returns the number of queued callbacks.
func (s *ManualScheduler) Pending() int { return s.queue.len() }

// Now returns the scheduler clock.
func (s *ManualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Advance moves the clock forward by d and runs one frame. It returns the
// number of callbacks run.
func (s *ManualScheduler) Advance(d time.Duration) int {
	s.mu.Lock()
	s.now = s.now.Add(d)
	now := s.now
	s.mu.Unlock()
	return s.run(now)
}

// Step runs n frames spaced by interval and returns the total number of
// callbacks run.
func (s *ManualScheduler) Step(n int, interval time.Duration) int {
	total := 0
	for range n {
		total += s.Advance(interval)
	}
	return total
}

func (s *ManualScheduler) run(now time.Time) int {
	reqs := s.queue.take()
	for _, r := range reqs {
		r.fn(now)
	}
	return len(reqs)
}
