package repository

import (
	"context"

	"github.com/alexanderramin/chronomap/internal/domain"
)

// CredentialRepo stores the single Rovas API key pair.
type CredentialRepo interface {
	// Get returns the stored pair, or an empty pair when none was saved.
	Get(ctx context.Context) (domain.Credentials, error)
	Set(ctx context.Context, creds domain.Credentials) error
	Clear(ctx context.Context) error
}

// ReportLogRepo stores the audit trail of pipeline outcomes.
type ReportLogRepo interface {
	Create(ctx context.Context, e *domain.ReportLogEntry) error
	ListRecent(ctx context.Context, limit int) ([]*domain.ReportLogEntry, error)
}
