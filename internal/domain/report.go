package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Fixed Rovas constants for reports filed against the OpenStreetMap project.
const (
	// WorkReportClassification is the Rovas classification code for
	// "creating map data".
	WorkReportClassification = 1645

	// OSMProjectID is the Rovas project the labor report is filed under.
	OSMProjectID = 1998

	// FeeProjectID is the Rovas project that levies the usage fee,
	// distinct from the project being reported against.
	FeeProjectID = 429681

	// ActivityName is the fixed activity label on every report.
	ActivityName = "Creating map data with iD"

	// FallbackDescription is used when the changeset has no comment or the
	// comment could not be fetched.
	FallbackDescription = "Made edits to the OpenStreetMap project using the iD editor. This report was created automatically by the browser extension."

	// FeeNote is the fixed note attached to every usage-fee charge.
	FeeNote = "3% usage fee, levied by the 'Rovas Connector for ID' project"

	// MinReportableDuration is the floor below which a detected changeset
	// is discarded as spurious instead of reported.
	MinReportableDuration = 10 * time.Millisecond
)

// LaborReport is the payload sent to the Rovas work-report endpoint.
type LaborReport struct {
	Classification  int     `json:"wr_classification"`
	Description     string  `json:"wr_description"`
	ActivityName    string  `json:"wr_activity_name"`
	Hours           float64 `json:"wr_hours"`
	WebAddress      string  `json:"wr_web_address"`
	ParentProjectID int     `json:"parent_project_nid"`
	DateStarted     int64   `json:"date_started"`
	AccessToken     string  `json:"access_token"`
	PublishStatus   int     `json:"publish_status"`
}

// FeeCharge is the usage-fee payload, tied to one created work report.
type FeeCharge struct {
	ProjectID int     `json:"project_id"`
	ReportID  int64   `json:"wr_id"`
	UsageFee  float64 `json:"usage_fee"`
	Note      string  `json:"note"`
}

// Hours converts a measured duration to billable hours: rounded to two
// decimals and floored at 0.01 regardless of how short the session was.
func Hours(d time.Duration) float64 {
	h := round2(float64(d.Milliseconds()) / 3_600_000)
	return math.Max(0.01, h)
}

// UsageFee computes the 3% fee on the labor value (hours at a rate of 10),
// rounded to two decimals.
func UsageFee(hours float64) float64 {
	return round2(hours * 10 * 0.03)
}

// ReferenceURL returns the achavi visualization link for a changeset,
// used as the report's web address.
func ReferenceURL(workUnitID string) string {
	return fmt.Sprintf("https://overpass-api.de/achavi/?changeset=%s", workUnitID)
}

// NewLaborReport assembles the report for one detected work unit. The
// description falls back to a fixed text when the changeset comment is
// empty.
func NewLaborReport(workUnitID, comment string, duration time.Duration, startedAt time.Time) LaborReport {
	desc := comment
	if desc == "" {
		desc = FallbackDescription
	}
	return LaborReport{
		Classification:  WorkReportClassification,
		Description:     desc,
		ActivityName:    ActivityName,
		Hours:           Hours(duration),
		WebAddress:      ReferenceURL(workUnitID),
		ParentProjectID: OSMProjectID,
		DateStarted:     startedAt.Unix(),
		AccessToken:     NewSubmissionNonce(),
		PublishStatus:   1,
	}
}

// NewFeeCharge builds the usage-fee payload for a created report.
func NewFeeCharge(reportID int64, hours float64) FeeCharge {
	return FeeCharge{
		ProjectID: FeeProjectID,
		ReportID:  reportID,
		UsageFee:  UsageFee(hours),
		Note:      FeeNote,
	}
}

// NewSubmissionNonce returns a 16-character random token identifying one
// submission attempt.
func NewSubmissionNonce() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
