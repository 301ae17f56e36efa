package storage

import (
	"context"

	"humandesign/internal/domain"
)

// GeneKeyStore provides access to the gene_keys reference table.
type GeneKeyStore interface {
	// Insert adds one gene key record. Returns ErrDuplicateKey if the gate exists.
	Insert(ctx context.Context, gk *domain.GeneKey) error

	// InsertBulk adds multiple records atomically. Fails entire batch on any duplicate.
	InsertBulk(ctx context.Context, keys []*domain.GeneKey) error

	// GetByGate retrieves the record for a gate 1-64. Returns ErrNotFound if not loaded.
	GetByGate(ctx context.Context, gate int) (*domain.GeneKey, error)

	// Count returns the number of loaded records.
	Count(ctx context.Context) (int, error)
}

// ChartAuditStore provides access to chart_audits storage. Append-only.
type ChartAuditStore interface {
	// Insert appends one audit record.
	Insert(ctx context.Context, a *domain.ChartAudit) error

	// GetByChartID retrieves all audit records for a chart ID, ordered by
	// computed_at ASC. The same chart may be recomputed any number of times.
	GetByChartID(ctx context.Context, chartID string) ([]*domain.ChartAudit, error)

	// GetRecent retrieves the most recent records, ordered by computed_at DESC.
	GetRecent(ctx context.Context, limit int) ([]*domain.ChartAudit, error)
}
