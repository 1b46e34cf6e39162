package domain

import "time"

// Session is one continuous (possibly paused) measurement of editing time,
// bounded by Start and the next reset. It is pure state: every transition
// takes the current time explicitly so callers control the clock.
type Session struct {
	StartedAt      *time.Time
	PauseStartedAt *time.Time
	PausedAccum    time.Duration
	Paused         bool

	// LastSeenWorkUnitID is the changeset id most recently accepted for
	// reporting in this session. A second event carrying the same id is
	// ignored for as long as the session is not reset.
	LastSeenWorkUnitID string
}

// Started reports whether the session has a start point, paused or not.
func (s *Session) Started() bool {
	return s.StartedAt != nil
}

// Start begins measuring at now, or resumes from a pause. Starting an
// already-running session is a no-op.
func (s *Session) Start(now time.Time) {
	if s.Started() && !s.Paused {
		return
	}
	if s.Paused {
		s.PausedAccum += now.Sub(*s.PauseStartedAt)
		s.Paused = false
		s.PauseStartedAt = nil
		return
	}
	t := now
	s.StartedAt = &t
	s.PausedAccum = 0
	s.LastSeenWorkUnitID = ""
}

// Pause freezes measurement at now. A no-op when already paused or not
// started.
func (s *Session) Pause(now time.Time) {
	if !s.Started() || s.Paused {
		return
	}
	t := now
	s.Paused = true
	s.PauseStartedAt = &t
}

// Stop resets every field to its zero value. Stopping a stopped session is
// a no-op, so Stop is idempotent.
func (s *Session) Stop() {
	*s = Session{}
}

// Elapsed returns the measured duration at now: wall-clock time since the
// start minus the accumulated paused time, clamped at zero. While paused
// the value is frozen at the moment the pause began.
func (s *Session) Elapsed(now time.Time) time.Duration {
	if !s.Started() {
		return 0
	}
	ref := now
	if s.Paused {
		ref = *s.PauseStartedAt
	}
	d := ref.Sub(*s.StartedAt) - s.PausedAccum
	if d < 0 {
		return 0
	}
	return d
}

// ReportableDuration returns the duration used for a work report detected at
// now. Unlike Elapsed it never subtracts an open pause interval: a changeset
// that lands mid-pause counts the pause as worked time, matching the
// accumulated-pause-only semantics of the report step.
func (s *Session) ReportableDuration(now time.Time) time.Duration {
	if !s.Started() {
		return 0
	}
	d := now.Sub(*s.StartedAt) - s.PausedAccum
	if d < 0 {
		return 0
	}
	return d
}
