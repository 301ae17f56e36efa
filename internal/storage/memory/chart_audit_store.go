package memory

import (
	"context"
	"sort"
	"sync"

	"humandesign/internal/domain"
	"humandesign/internal/storage"
)

// ChartAuditStore is an in-memory implementation of storage.ChartAuditStore.
type ChartAuditStore struct {
	mu      sync.RWMutex
	records []*domain.ChartAudit
}

// NewChartAuditStore creates a new in-memory chart audit store.
func NewChartAuditStore() *ChartAuditStore {
	return &ChartAuditStore{}
}

var _ storage.ChartAuditStore = (*ChartAuditStore)(nil)

// Insert appends one audit record.
func (s *ChartAuditStore) Insert(_ context.Context, a *domain.ChartAudit) error {
	if a == nil || a.ChartID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	auditCopy := *a
	s.records = append(s.records, &auditCopy)
	return nil
}

// GetByChartID retrieves all records for a chart ID, ordered by computed_at ASC.
func (s *ChartAuditStore) GetByChartID(_ context.Context, chartID string) ([]*domain.ChartAudit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.ChartAudit
	for _, a := range s.records {
		if a.ChartID == chartID {
			auditCopy := *a
			out = append(out, &auditCopy)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ComputedAt < out[j].ComputedAt })
	return out, nil
}

// GetRecent retrieves the most recent records, ordered by computed_at DESC.
func (s *ChartAuditStore) GetRecent(_ context.Context, limit int) ([]*domain.ChartAudit, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidInput
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.ChartAudit, 0, len(s.records))
	for _, a := range s.records {
		auditCopy := *a
		out = append(out, &auditCopy)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ComputedAt > out[j].ComputedAt })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
