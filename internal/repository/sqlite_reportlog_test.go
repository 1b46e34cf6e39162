package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/chronomap/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEntry(workUnitID string, outcome domain.ReportOutcome, createdAt time.Time) *domain.ReportLogEntry {
	return &domain.ReportLogEntry{
		ID:         uuid.New().String(),
		WorkUnitID: workUnitID,
		Hours:      1.5,
		UsageFee:   0.45,
		Outcome:    outcome,
		CreatedAt:  createdAt,
	}
}

func TestReportLogRepo_CreateAndList(t *testing.T) {
	_, logs := setupRepos(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	e := newEntry("100", domain.OutcomeSubmitted, base)
	reportID := int64(42)
	e.ReportID = &reportID
	require.NoError(t, logs.Create(ctx, e))

	got, err := logs.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "100", got[0].WorkUnitID)
	require.NotNil(t, got[0].ReportID)
	assert.Equal(t, int64(42), *got[0].ReportID)
	assert.Equal(t, domain.OutcomeSubmitted, got[0].Outcome)
	assert.Equal(t, base, got[0].CreatedAt)
}

func TestReportLogRepo_NilReportID(t *testing.T) {
	_, logs := setupRepos(t)
	ctx := context.Background()

	require.NoError(t, logs.Create(ctx, newEntry("7", domain.OutcomeCancelled, time.Now().UTC().Truncate(time.Second))))

	got, err := logs.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].ReportID)
}

func TestReportLogRepo_ListRecentOrdersAndLimits(t *testing.T) {
	_, logs := setupRepos(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		e := newEntry("100", domain.OutcomeFailed, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, logs.Create(ctx, e))
	}

	got, err := logs.ListRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, got[0].CreatedAt.After(got[1].CreatedAt), "newest first")
}
