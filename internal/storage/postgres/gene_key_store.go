package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"humandesign/internal/domain"
	"humandesign/internal/storage"
)

// GeneKeyStore implements storage.GeneKeyStore using PostgreSQL.
type GeneKeyStore struct {
	pool *Pool
}

// NewGeneKeyStore creates a new GeneKeyStore.
func NewGeneKeyStore(pool *Pool) *GeneKeyStore {
	return &GeneKeyStore{pool: pool}
}

// Compile-time interface check.
var _ storage.GeneKeyStore = (*GeneKeyStore)(nil)

const geneKeyColumns = `
	gate, name, meaning, shadow, manifestation, gift,
	transformation, siddhi, final_state, synthesis
`

// Insert adds one gene key record. Returns ErrDuplicateKey if the gate exists.
func (s *GeneKeyStore) Insert(ctx context.Context, gk *domain.GeneKey) error {
	if gk == nil || gk.Gate < 1 || gk.Gate > 64 {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO gene_keys (` + geneKeyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := s.pool.Exec(ctx, query,
		gk.Gate,
		gk.Name,
		gk.Meaning,
		gk.Shadow,
		gk.Manifestation,
		gk.Gift,
		gk.Transformation,
		gk.Siddhi,
		gk.FinalState,
		gk.Synthesis,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert gene key: %w", err)
	}
	return nil
}

// InsertBulk adds multiple records atomically inside one transaction.
func (s *GeneKeyStore) InsertBulk(ctx context.Context, keys []*domain.GeneKey) error {
	if len(keys) == 0 {
		return nil
	}
	for _, gk := range keys {
		if gk == nil || gk.Gate < 1 || gk.Gate > 64 {
			return storage.ErrInvalidInput
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO gene_keys (` + geneKeyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	for _, gk := range keys {
		_, err := tx.Exec(ctx, query,
			gk.Gate, gk.Name, gk.Meaning, gk.Shadow, gk.Manifestation,
			gk.Gift, gk.Transformation, gk.Siddhi, gk.FinalState, gk.Synthesis,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert gene key %d: %w", gk.Gate, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetByGate retrieves the record for a gate. Returns ErrNotFound if not loaded.
func (s *GeneKeyStore) GetByGate(ctx context.Context, gate int) (*domain.GeneKey, error) {
	query := `
		SELECT ` + geneKeyColumns + `
		FROM gene_keys
		WHERE gate = $1
	`

	row := s.pool.QueryRow(ctx, query, gate)
	gk, err := scanGeneKey(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get gene key by gate: %w", err)
	}
	return gk, nil
}

// Count returns the number of loaded records.
func (s *GeneKeyStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM gene_keys`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count gene keys: %w", err)
	}
	return n, nil
}

// scanGeneKey scans a single row into GeneKey.
func scanGeneKey(row pgx.Row) (*domain.GeneKey, error) {
	var gk domain.GeneKey

	err := row.Scan(
		&gk.Gate,
		&gk.Name,
		&gk.Meaning,
		&gk.Shadow,
		&gk.Manifestation,
		&gk.Gift,
		&gk.Transformation,
		&gk.Siddhi,
		&gk.FinalState,
		&gk.Synthesis,
	)
	if err != nil {
		return nil, err
	}

	return &gk, nil
}
