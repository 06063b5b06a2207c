package dosage

import (
	"sync"
	"time"
)

// Session recomputes a plan once input changes have settled. Each Update
// re-arms the settle timer; only the newest input is ever calculated.
type Session struct {
	delay   time.Duration
	publish func(Plan, error)

	mu       sync.Mutex
	timer    *time.Timer
	gen      uint64
	latest   Input
	closed   bool
	inflight sync.WaitGroup
}

// NewSession calls publish from a timer goroutine after each settled burst
// of updates. publish must not call Close.
func NewSession(delay time.Duration, publish func(Plan, error)) *Session {
	return &Session{delay: delay, publish: publish}
}

func (s *Session) Update(in Input) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.gen++
	s.latest = in
	if s.timer != nil {
		s.timer.Stop()
	}
	g := s.gen
	s.timer = time.AfterFunc(s.delay, func() { s.fire(g) })
}

// pending reports whether an update is waiting for its settle delay.
func (s *Session) pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil && !s.closed
}

func (s *Session) fire(g uint64) {
	s.mu.Lock()
	if s.closed || g != s.gen {
		s.mu.Unlock()
		return
	}
	in := s.latest
	s.timer = nil
	s.inflight.Add(1)
	s.mu.Unlock()
	defer s.inflight.Done()

	plan, err := Calculate(in)

	s.mu.Lock()
	stale := s.closed || g != s.gen
	s.mu.Unlock()
	if stale {
		return
	}
	s.publish(plan, err)
}

// Flush publishes the pending input immediately on the caller's goroutine.
// It does nothing when no update is waiting.
func (s *Session) Flush() {
	s.mu.Lock()
	if s.closed || s.timer == nil {
		s.mu.Unlock()
		return
	}
	s.timer.Stop()
	// a timer that already fired now carries a stale generation
	s.gen++
	g := s.gen
	s.mu.Unlock()
	s.fire(g)
}

// Close cancels any pending recomputation and waits for an in-flight publish
// to return. No publish happens after Close returns.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	s.inflight.Wait()
}
