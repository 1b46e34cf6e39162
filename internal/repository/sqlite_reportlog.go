package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/chronomap/internal/db"
	"github.com/alexanderramin/chronomap/internal/domain"
)

// SQLiteReportLogRepo implements ReportLogRepo using a SQLite database.
type SQLiteReportLogRepo struct {
	db db.DBTX
}

// NewSQLiteReportLogRepo creates a new SQLiteReportLogRepo.
func NewSQLiteReportLogRepo(dbtx db.DBTX) *SQLiteReportLogRepo {
	return &SQLiteReportLogRepo{db: dbtx}
}

func (r *SQLiteReportLogRepo) Create(ctx context.Context, e *domain.ReportLogEntry) error {
	query := `INSERT INTO report_log (id, work_unit_id, report_id, hours, usage_fee, outcome, detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	var reportID any
	if e.ReportID != nil {
		reportID = *e.ReportID
	}
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.WorkUnitID,
		reportID,
		e.Hours,
		e.UsageFee,
		string(e.Outcome),
		e.Detail,
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting report log entry: %w", err)
	}
	return nil
}

// Prune deletes all but the newest keep entries.
func (r *SQLiteReportLogRepo) Prune(ctx context.Context, keep int) error {
	query := `DELETE FROM report_log WHERE id NOT IN (
		SELECT id FROM report_log ORDER BY created_at DESC, id LIMIT ?)`
	if _, err := r.db.ExecContext(ctx, query, keep); err != nil {
		return fmt.Errorf("pruning report log: %w", err)
	}
	return nil
}

func (r *SQLiteReportLogRepo) ListRecent(ctx context.Context, limit int) ([]*domain.ReportLogEntry, error) {
	query := `SELECT id, work_unit_id, report_id, hours, usage_fee, outcome, detail, created_at
		FROM report_log ORDER BY created_at DESC, id LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing report log: %w", err)
	}
	defer rows.Close()

	var entries []*domain.ReportLogEntry
	for rows.Next() {
		var e domain.ReportLogEntry
		var reportID sql.NullInt64
		var outcome, createdAt string
		if err := rows.Scan(&e.ID, &e.WorkUnitID, &reportID, &e.Hours, &e.UsageFee, &outcome, &e.Detail, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning report log entry: %w", err)
		}
		if reportID.Valid {
			id := reportID.Int64
			e.ReportID = &id
		}
		e.Outcome = domain.ReportOutcome(outcome)
		t, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		e.CreatedAt = t
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating report log: %w", err)
	}
	return entries, nil
}
