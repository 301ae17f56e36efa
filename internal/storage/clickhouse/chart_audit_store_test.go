package clickhouse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"humandesign/internal/domain"
	"humandesign/internal/storage"
)

func TestChartAuditStore_InsertAndGetByChartID(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewChartAuditStore(conn)
	ctx := context.Background()

	audit := &domain.ChartAudit{
		ChartID:           "4Yx7kQmZ2p",
		InputDate:         "1990-05-15 14:30",
		Timezone:          "Asia/Taipei",
		PrecisionMode:     domain.PrecisionAnalytic,
		CenterDerivation:  domain.DeriveFromChannels,
		TimezoneEstimated: false,
		HashFallbacks:     0,
		SolverIterations:  4,
		SolverConverged:   true,
		DurationMs:        12,
		ComputedAt:        1700000000000,
	}

	require.NoError(t, store.Insert(ctx, audit))

	records, err := store.GetByChartID(ctx, "4Yx7kQmZ2p")
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, audit.ChartID, got.ChartID)
	assert.Equal(t, audit.InputDate, got.InputDate)
	assert.Equal(t, audit.Timezone, got.Timezone)
	assert.Equal(t, domain.PrecisionAnalytic, got.PrecisionMode)
	assert.Equal(t, domain.DeriveFromChannels, got.CenterDerivation)
	assert.Equal(t, 4, got.SolverIterations)
	assert.True(t, got.SolverConverged)
	assert.Equal(t, int64(1700000000000), got.ComputedAt)
}

func TestChartAuditStore_RecomputesAppend(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewChartAuditStore(conn)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		audit := &domain.ChartAudit{
			ChartID:    "chart-recompute",
			ComputedAt: i * 1000,
		}
		require.NoError(t, store.Insert(ctx, audit))
	}

	records, err := store.GetByChartID(ctx, "chart-recompute")
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Ordered by computed_at ASC
	assert.Equal(t, int64(1000), records[0].ComputedAt)
	assert.Equal(t, int64(3000), records[2].ComputedAt)
}

func TestChartAuditStore_GetRecent(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewChartAuditStore(conn)
	ctx := context.Background()

	for i := int64(1); i <= 5; i++ {
		audit := &domain.ChartAudit{
			ChartID:    "chart-recent",
			ComputedAt: i * 100,
		}
		require.NoError(t, store.Insert(ctx, audit))
	}

	records, err := store.GetRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, int64(500), records[0].ComputedAt)
	assert.Equal(t, int64(400), records[1].ComputedAt)
}

func TestChartAuditStore_InvalidInput(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewChartAuditStore(conn)
	ctx := context.Background()

	assert.ErrorIs(t, store.Insert(ctx, nil), storage.ErrInvalidInput)
	assert.ErrorIs(t, store.Insert(ctx, &domain.ChartAudit{}), storage.ErrInvalidInput)

	_, err := store.GetRecent(ctx, 0)
	assert.ErrorIs(t, err, storage.ErrInvalidInput)
}
