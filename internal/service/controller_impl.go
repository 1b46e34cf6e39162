package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/chronomap/internal/domain"
	"github.com/alexanderramin/chronomap/internal/locale"
	"github.com/alexanderramin/chronomap/internal/repository"
	"github.com/alexanderramin/chronomap/internal/rovas"
	"github.com/alexanderramin/chronomap/internal/timer"
	"github.com/google/uuid"
)

type sessionController struct {
	tm         *timer.Timer
	creds      CredentialSource
	metadata   MetadataFetcher
	accounting Accounting
	confirm    Confirmer
	notify     Notifier
	reportLog  repository.ReportLogRepo // nil disables the audit trail
	tr         *locale.Translator
	observer   PipelineObserver

	mu        sync.Mutex
	reporting bool
}

// NewSessionController creates the controller owning one editing context's
// session state. reportLog may be nil.
func NewSessionController(
	tm *timer.Timer,
	creds CredentialSource,
	metadata MetadataFetcher,
	accounting Accounting,
	confirm Confirmer,
	notify Notifier,
	reportLog repository.ReportLogRepo,
	tr *locale.Translator,
	observers ...PipelineObserver,
) SessionController {
	return &sessionController{
		tm:         tm,
		creds:      creds,
		metadata:   metadata,
		accounting: accounting,
		confirm:    confirm,
		notify:     notify,
		reportLog:  reportLog,
		tr:         tr,
		observer:   pipelineObserverOrNoop(observers),
	}
}

func (c *sessionController) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.reporting {
		return
	}
	c.tm.Start()
}

func (c *sessionController) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.reporting {
		return
	}
	c.tm.Pause()
}

func (c *sessionController) Stop(ctx context.Context) {
	c.mu.Lock()
	if c.reporting {
		// Best effort only: an in-flight submission is not aborted, and
		// its finalization will restart a fresh session regardless.
		c.mu.Unlock()
		return
	}
	active := c.tm.Running() || c.tm.Paused()
	c.tm.Stop()
	c.mu.Unlock()

	if active {
		c.notify.Notify(ctx, c.tr.T(locale.KeySessionStopped, nil))
	}
}

func (c *sessionController) State() domain.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.reporting:
		return domain.SessionReporting
	case c.tm.Running():
		return domain.SessionRunning
	case c.tm.Paused():
		return domain.SessionPaused
	default:
		return domain.SessionIdle
	}
}

func (c *sessionController) Controls() ControlStates {
	switch c.State() {
	case domain.SessionRunning:
		return ControlStates{Start: false, Pause: true, Stop: true}
	case domain.SessionPaused:
		return ControlStates{Start: true, Pause: false, Stop: true}
	case domain.SessionReporting:
		return ControlStates{}
	default:
		return ControlStates{Start: true}
	}
}

func (c *sessionController) Elapsed() time.Duration {
	return c.tm.Elapsed()
}

func (c *sessionController) HandleWorkUnit(ctx context.Context, ev domain.WorkUnitEvent) domain.ReportOutcome {
	c.mu.Lock()
	if c.reporting || c.tm.Seen(ev.WorkUnitID) {
		c.mu.Unlock()
		return domain.OutcomeIgnored
	}
	sess := c.tm.Session()
	if !sess.Started() {
		c.mu.Unlock()
		c.notify.Notify(ctx, c.tr.T(locale.KeyTimerNotActive, nil))
		return domain.OutcomeIgnored
	}

	// The idempotency guard: the id is recorded and the Reporting state
	// entered before the first suspension point, so a duplicate arriving
	// while the pipeline runs is dropped above.
	c.tm.MarkSeen(ev.WorkUnitID)
	c.reporting = true
	c.mu.Unlock()

	startedAt, duration, _ := c.tm.ReportSnapshot()
	res := c.runPipeline(ctx, ev.WorkUnitID, startedAt, duration)

	// Finalize: every outcome converges here, so the controller can never
	// stay stuck in Reporting.
	c.mu.Lock()
	c.reporting = false
	c.tm.Stop()
	c.tm.Start()
	c.mu.Unlock()

	return res.outcome
}

// pipelineResult carries everything the observer and audit log need about
// one run.
type pipelineResult struct {
	outcome  domain.ReportOutcome
	err      error
	hours    float64
	fee      float64
	reportID *int64
	detail   string
}

func (c *sessionController) runPipeline(ctx context.Context, workUnitID string, startedAt time.Time, duration time.Duration) pipelineResult {
	began := time.Now()
	res := c.execute(ctx, workUnitID, startedAt, duration)

	fields := map[string]any{
		"work_unit_id": workUnitID,
		"outcome":      string(res.outcome),
		"hours":        res.hours,
	}
	if res.reportID != nil {
		fields["report_id"] = *res.reportID
	}
	c.observer.ObservePipeline(ctx, PipelineEvent{
		Name:      "report",
		Duration:  time.Since(began),
		Success:   res.outcome == domain.OutcomeSubmitted || res.outcome == domain.OutcomeDegraded,
		Err:       res.err,
		Fields:    fields,
		StartedAt: began,
	})

	c.recordOutcome(ctx, workUnitID, res)
	return res
}

func (c *sessionController) execute(ctx context.Context, workUnitID string, startedAt time.Time, duration time.Duration) pipelineResult {
	// Credentials are refreshed from the store on every run so a
	// mid-session change takes effect; missing credentials fail before any
	// network call.
	creds, err := c.creds.Current(ctx)
	if err == nil && creds.Missing() {
		err = rovas.ErrMissingCredentials
	}
	if err != nil {
		c.notify.Notify(ctx, c.tr.T(locale.KeyMissingCredentials, nil))
		return pipelineResult{outcome: domain.OutcomeFailed, err: err, detail: "missing credentials"}
	}

	if duration <= domain.MinReportableDuration {
		c.notify.Notify(ctx, c.tr.T(locale.KeyDurationShort, nil))
		return pipelineResult{outcome: domain.OutcomeDiscarded, detail: "duration below floor"}
	}

	comment, err := c.metadata.ChangesetComment(ctx, workUnitID)
	if err != nil {
		// Recoverable: the report falls back to a generic description.
		c.notify.Notify(ctx, c.tr.T(locale.KeyCommentError, nil))
		comment = ""
	}

	if _, err := c.accounting.CheckOrAddShareholder(ctx, creds); err != nil {
		key := locale.KeyShareholderError
		if errors.Is(err, rovas.ErrInvalidCredentials) {
			key = locale.KeyInvalidCredentials
		}
		c.notify.Notify(ctx, c.tr.T(key, nil))
		return pipelineResult{outcome: domain.OutcomeFailed, err: err, detail: "eligibility check failed"}
	}

	report := domain.NewLaborReport(workUnitID, comment, duration, startedAt)

	prompt := c.tr.T(locale.KeyConfirmSubmit, map[string]string{
		"id":       workUnitID,
		"duration": fmt.Sprintf("%.2f", duration.Minutes()),
	})
	confirmed, err := c.confirm.Confirm(ctx, prompt)
	if err != nil || !confirmed {
		c.notify.Notify(ctx, c.tr.T(locale.KeyReportCancelled, nil))
		return pipelineResult{outcome: domain.OutcomeCancelled, hours: report.Hours, detail: "user cancelled"}
	}

	reportID, err := c.accounting.CreateWorkReport(ctx, creds, report)
	if err != nil {
		c.notify.Notify(ctx, c.tr.T(locale.KeyReportError, map[string]string{"error": err.Error()}))
		return pipelineResult{outcome: domain.OutcomeFailed, err: err, hours: report.Hours, detail: "submission failed"}
	}
	if reportID == 0 {
		c.notify.Notify(ctx, c.tr.T(locale.KeyReportIDMissing, nil))
		return pipelineResult{outcome: domain.OutcomeDegraded, hours: report.Hours, detail: "report id missing"}
	}

	c.notify.Notify(ctx, c.tr.T(locale.KeyReportSuccess, map[string]string{"id": fmt.Sprintf("%d", reportID)}))

	fee := domain.NewFeeCharge(reportID, report.Hours)
	if err := c.accounting.ChargeUsageFee(ctx, creds, fee); err != nil {
		// A failed fee charge never surfaces to the user and never
		// reverses the report.
		c.observer.ObservePipeline(ctx, PipelineEvent{
			Name:    "charge_usage_fee",
			Success: false,
			Err:     err,
			Fields:  map[string]any{"work_unit_id": workUnitID, "report_id": reportID},
		})
	}

	return pipelineResult{
		outcome:  domain.OutcomeSubmitted,
		hours:    report.Hours,
		fee:      fee.UsageFee,
		reportID: &reportID,
	}
}

// recordOutcome appends the run to the local audit trail. Failures are
// observed but never affect the pipeline outcome.
func (c *sessionController) recordOutcome(ctx context.Context, workUnitID string, res pipelineResult) {
	if c.reportLog == nil {
		return
	}
	detail := res.detail
	if res.err != nil {
		detail = fmt.Sprintf("%s: %v", res.detail, res.err)
	}
	entry := &domain.ReportLogEntry{
		ID:         uuid.New().String(),
		WorkUnitID: workUnitID,
		ReportID:   res.reportID,
		Hours:      res.hours,
		UsageFee:   res.fee,
		Outcome:    res.outcome,
		Detail:     detail,
		CreatedAt:  time.Now().UTC(),
	}
	if err := c.reportLog.Create(ctx, entry); err != nil {
		c.observer.ObservePipeline(ctx, PipelineEvent{
			Name:    "record_outcome",
			Success: false,
			Err:     err,
			Fields:  map[string]any{"work_unit_id": workUnitID},
		})
	}
}
