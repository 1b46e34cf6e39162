package service

import (
	"context"
	"time"

	"github.com/alexanderramin/chronomap/internal/domain"
)

// Accounting is the slice of the Rovas API the pipeline needs. Satisfied by
// rovas.Client.
type Accounting interface {
	CheckOrAddShareholder(ctx context.Context, creds domain.Credentials) (int64, error)
	CreateWorkReport(ctx context.Context, creds domain.Credentials, report domain.LaborReport) (int64, error)
	ChargeUsageFee(ctx context.Context, creds domain.Credentials, fee domain.FeeCharge) error
}

// MetadataFetcher retrieves the changeset comment. Satisfied by osm clients.
type MetadataFetcher interface {
	ChangesetComment(ctx context.Context, changesetID string) (string, error)
}

// CredentialSource yields the current Rovas key pair. Read immediately
// before each pipeline run, never cached across runs.
type CredentialSource interface {
	Current(ctx context.Context) (domain.Credentials, error)
}

// Notifier surfaces a message to the user. Implementations block until the
// user has had a chance to see it or queue it for display.
type Notifier interface {
	Notify(ctx context.Context, msg string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, msg string)

func (f NotifierFunc) Notify(ctx context.Context, msg string) { f(ctx, msg) }

// Confirmer asks the user a yes/no question. Only an explicit affirmative
// proceeds; anything else counts as cancellation.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmerFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// ControlStates tells the UI which of the three session controls are
// currently meaningful.
type ControlStates struct {
	Start bool
	Pause bool
	Stop  bool
}

// SessionController owns all mutable session state and orchestrates the
// detect-to-report lifecycle. One controller exists per editing context.
type SessionController interface {
	// Start begins or resumes the session. Idempotent while running.
	Start()

	// Pause freezes the session. A no-op when paused or stopped.
	Pause()

	// Stop clears the session without sending a report. Stopping during an
	// in-flight report is best effort: the pipeline is not aborted and its
	// finalization still restarts a fresh session.
	Stop(ctx context.Context)

	// State returns the current lifecycle state.
	State() domain.SessionState

	// Controls returns the per-state enablement of the UI controls.
	Controls() ControlStates

	// Elapsed returns the session's measured duration.
	Elapsed() time.Duration

	// HandleWorkUnit runs the report pipeline for a detected work unit,
	// blocking until finalization. Duplicate ids and events during an
	// in-flight report return immediately with no side effects.
	HandleWorkUnit(ctx context.Context, ev domain.WorkUnitEvent) domain.ReportOutcome
}
