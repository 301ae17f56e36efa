package clickhouse

import (
	"context"
	"fmt"

	"humandesign/internal/domain"
	"humandesign/internal/storage"
)

// ChartAuditStore implements storage.ChartAuditStore using ClickHouse.
// MergeTree does not enforce uniqueness, which suits the append-only audit
// log: every computation of the same chart becomes its own row.
type ChartAuditStore struct {
	conn *Conn
}

// NewChartAuditStore creates a new ChartAuditStore.
func NewChartAuditStore(conn *Conn) *ChartAuditStore {
	return &ChartAuditStore{conn: conn}
}

// Compile-time interface check.
var _ storage.ChartAuditStore = (*ChartAuditStore)(nil)

// Insert appends one audit record.
func (s *ChartAuditStore) Insert(ctx context.Context, a *domain.ChartAudit) error {
	if a == nil || a.ChartID == "" {
		return storage.ErrInvalidInput
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO chart_audits (
			chart_id, input_date, timezone, precision_mode, center_derivation,
			timezone_estimated, hash_fallbacks, solver_iterations, solver_converged,
			duration_ms, computed_at
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	err = batch.Append(
		a.ChartID,
		a.InputDate,
		a.Timezone,
		string(a.PrecisionMode),
		string(a.CenterDerivation),
		a.TimezoneEstimated,
		uint16(a.HashFallbacks),
		uint16(a.SolverIterations),
		a.SolverConverged,
		uint64(a.DurationMs),
		uint64(a.ComputedAt),
	)
	if err != nil {
		return fmt.Errorf("append to batch: %w", err)
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

// GetByChartID retrieves all records for a chart ID, ordered by computed_at ASC.
func (s *ChartAuditStore) GetByChartID(ctx context.Context, chartID string) ([]*domain.ChartAudit, error) {
	query := auditSelect + `
		WHERE chart_id = ?
		ORDER BY computed_at ASC
	`

	rows, err := s.conn.Query(ctx, query, chartID)
	if err != nil {
		return nil, fmt.Errorf("query by chart id: %w", err)
	}
	defer rows.Close()

	return scanChartAudits(rows)
}

// GetRecent retrieves the most recent records, ordered by computed_at DESC.
func (s *ChartAuditStore) GetRecent(ctx context.Context, limit int) ([]*domain.ChartAudit, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidInput
	}

	query := auditSelect + `
		ORDER BY computed_at DESC
		LIMIT ?
	`

	rows, err := s.conn.Query(ctx, query, uint64(limit))
	if err != nil {
		return nil, fmt.Errorf("query recent: %w", err)
	}
	defer rows.Close()

	return scanChartAudits(rows)
}

const auditSelect = `
	SELECT chart_id, input_date, timezone, precision_mode, center_derivation,
	       timezone_estimated, hash_fallbacks, solver_iterations, solver_converged,
	       duration_ms, computed_at
	FROM chart_audits
`

type chRows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// scanChartAudits scans multiple rows.
func scanChartAudits(rows chRows) ([]*domain.ChartAudit, error) {
	var out []*domain.ChartAudit
	for rows.Next() {
		var (
			a             domain.ChartAudit
			precision     string
			derivation    string
			hashFallbacks uint16
			solverIter    uint16
			durationMs    uint64
			computedAt    uint64
		)
		err := rows.Scan(
			&a.ChartID,
			&a.InputDate,
			&a.Timezone,
			&precision,
			&derivation,
			&a.TimezoneEstimated,
			&hashFallbacks,
			&solverIter,
			&a.SolverConverged,
			&durationMs,
			&computedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan chart audit: %w", err)
		}
		a.PrecisionMode = domain.PrecisionMode(precision)
		a.CenterDerivation = domain.CenterDerivation(derivation)
		a.HashFallbacks = int(hashFallbacks)
		a.SolverIterations = int(solverIter)
		a.DurationMs = int64(durationMs)
		a.ComputedAt = int64(computedAt)
		out = append(out, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chart audits: %w", err)
	}
	return out, nil
}
