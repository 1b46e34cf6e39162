package domain

type SessionState string

const (
	SessionIdle      SessionState = "idle"
	SessionRunning   SessionState = "running"
	SessionPaused    SessionState = "paused"
	SessionReporting SessionState = "reporting"
)

type ReportOutcome string

const (
	OutcomeSubmitted ReportOutcome = "submitted"
	OutcomeDegraded  ReportOutcome = "degraded"
	OutcomeCancelled ReportOutcome = "cancelled"
	OutcomeDiscarded ReportOutcome = "discarded"
	OutcomeFailed    ReportOutcome = "failed"

	// OutcomeIgnored means no pipeline ran: the event was a duplicate,
	// arrived during an in-flight report, or hit an inactive timer. Never
	// written to the report log.
	OutcomeIgnored ReportOutcome = "ignored"
)
