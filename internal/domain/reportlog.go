package domain

import "time"

// ReportLogEntry is the local audit record of one completed report
// pipeline, written after finalization. It is informational only; nothing
// reads it back into the pipeline.
type ReportLogEntry struct {
	ID         string
	WorkUnitID string
	ReportID   *int64 // nil when no report id was returned
	Hours      float64
	UsageFee   float64
	Outcome    ReportOutcome
	Detail     string
	CreatedAt  time.Time
}
