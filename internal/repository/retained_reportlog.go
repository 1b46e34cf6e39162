package repository

import (
	"context"

	"github.com/alexanderramin/chronomap/internal/db"
	"github.com/alexanderramin/chronomap/internal/domain"
)

// RetainedReportLog is a ReportLogRepo that caps the audit trail at a fixed
// number of entries. Each Create inserts the new entry and prunes the
// overflow inside one transaction, so a crash between the two never leaves
// the table over the cap with the entry missing.
type RetainedReportLog struct {
	db        *SQLiteReportLogRepo
	uow       db.UnitOfWork
	retention int
}

// NewRetainedReportLog wraps the report log with a retention cap. A
// retention of zero or less disables pruning.
func NewRetainedReportLog(dbtx db.DBTX, uow db.UnitOfWork, retention int) *RetainedReportLog {
	return &RetainedReportLog{
		db:        NewSQLiteReportLogRepo(dbtx),
		uow:       uow,
		retention: retention,
	}
}

func (r *RetainedReportLog) Create(ctx context.Context, e *domain.ReportLogEntry) error {
	if r.retention <= 0 {
		return r.db.Create(ctx, e)
	}
	return r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := NewSQLiteReportLogRepo(tx)
		if err := repo.Create(ctx, e); err != nil {
			return err
		}
		return repo.Prune(ctx, r.retention)
	})
}

func (r *RetainedReportLog) ListRecent(ctx context.Context, limit int) ([]*domain.ReportLogEntry, error) {
	return r.db.ListRecent(ctx, limit)
}
