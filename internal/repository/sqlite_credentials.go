package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/chronomap/internal/db"
	"github.com/alexanderramin/chronomap/internal/domain"
)

// SQLiteCredentialRepo implements CredentialRepo using a SQLite database.
type SQLiteCredentialRepo struct {
	db db.DBTX
}

// NewSQLiteCredentialRepo creates a new SQLiteCredentialRepo.
func NewSQLiteCredentialRepo(dbtx db.DBTX) *SQLiteCredentialRepo {
	return &SQLiteCredentialRepo{db: dbtx}
}

func (r *SQLiteCredentialRepo) Get(ctx context.Context) (domain.Credentials, error) {
	query := `SELECT api_key, token FROM credentials WHERE id = 1`
	var creds domain.Credentials
	err := r.db.QueryRowContext(ctx, query).Scan(&creds.APIKey, &creds.Token)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Credentials{}, nil
	}
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("loading credentials: %w", err)
	}
	return creds, nil
}

func (r *SQLiteCredentialRepo) Set(ctx context.Context, creds domain.Credentials) error {
	query := `INSERT INTO credentials (id, api_key, token, updated_at) VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET api_key = excluded.api_key, token = excluded.token, updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query, creds.APIKey, creds.Token, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}
	return nil
}

func (r *SQLiteCredentialRepo) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM credentials WHERE id = 1`)
	if err != nil {
		return fmt.Errorf("clearing credentials: %w", err)
	}
	return nil
}
