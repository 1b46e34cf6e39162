// Package timer wraps the pure session state with a real clock and a
// display tick. All business decisions stay in the session controller; the
// tick exists only so a UI can refresh the elapsed readout.
package timer

import (
	"sync"
	"time"

	"github.com/alexanderramin/chronomap/internal/domain"
)

// TickInterval is how often a running timer notifies its tick callback.
const TickInterval = time.Second

// Timer measures one editing session. A zero clock defaults to time.Now;
// tests inject a fake. Safe for use from multiple goroutines.
type Timer struct {
	mu      sync.Mutex
	now     func() time.Time
	session domain.Session

	onTick func(elapsed time.Duration)
	stop   chan struct{}
}

// Option configures a Timer.
type Option func(*Timer)

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Timer) { t.now = now }
}

// WithTick registers a callback invoked roughly once per second while the
// timer is running. The callback receives the current elapsed duration and
// must not call back into the Timer.
func WithTick(fn func(elapsed time.Duration)) Option {
	return func(t *Timer) { t.onTick = fn }
}

// New creates a stopped Timer.
func New(opts ...Option) *Timer {
	t := &Timer{now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start begins or resumes measuring. Idempotent while running.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	wasRunning := t.session.Started() && !t.session.Paused
	t.session.Start(t.now())
	if !wasRunning {
		t.startTickLocked()
	}
}

// Pause freezes measurement. A no-op when paused or stopped.
func (t *Timer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.session.Pause(t.now())
	t.stopTickLocked()
}

// Stop halts measurement and clears all session state. A no-op when the
// timer is neither running nor paused.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.session.Stop()
	t.stopTickLocked()
}

// Elapsed returns the current measured duration, recomputed on demand.
func (t *Timer) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session.Elapsed(t.now())
}

// Session returns a copy of the underlying session state.
func (t *Timer) Session() domain.Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session
}

// Running reports whether the timer is advancing.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session.Started() && !t.session.Paused
}

// Paused reports whether the timer is frozen mid-session.
func (t *Timer) Paused() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session.Paused
}

// MarkSeen records a work-unit id against the current session for
// deduplication.
func (t *Timer) MarkSeen(workUnitID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.session.LastSeenWorkUnitID = workUnitID
}

// Seen reports whether the given work-unit id was already accepted in this
// session.
func (t *Timer) Seen(workUnitID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session.LastSeenWorkUnitID == workUnitID
}

// ReportSnapshot freezes the timer for reporting: it returns the session
// start and the reportable duration as of now, and halts ticking. The
// session fields themselves are left for the controller to reset once the
// pipeline finalizes.
func (t *Timer) ReportSnapshot() (startedAt time.Time, duration time.Duration, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.session.Started() {
		return time.Time{}, 0, false
	}
	now := t.now()
	t.stopTickLocked()
	return *t.session.StartedAt, t.session.ReportableDuration(now), true
}

func (t *Timer) startTickLocked() {
	if t.onTick == nil || t.stop != nil {
		return
	}
	stop := make(chan struct{})
	t.stop = stop
	go func() {
		ticker := time.NewTicker(TickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				t.onTick(t.Elapsed())
			}
		}
	}()
}

func (t *Timer) stopTickLocked() {
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
}
