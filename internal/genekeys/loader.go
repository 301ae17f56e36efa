package genekeys

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"humandesign/internal/domain"
	"humandesign/internal/storage"
)

// Loader lazily populates a GeneKeyStore from the CSV on first use.
// Concurrent first lookups share one load through singleflight.
type Loader struct {
	csvPath string
	store   storage.GeneKeyStore
	logger  *log.Logger

	group  singleflight.Group
	loaded atomic.Bool
}

// NewLoader creates a loader over the given store. logger may be nil.
func NewLoader(csvPath string, store storage.GeneKeyStore, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(os.Stderr, "[genekeys] ", log.LstdFlags)
	}
	return &Loader{csvPath: csvPath, store: store, logger: logger}
}

// Get returns the gene key for a gate, loading the CSV on first call.
// Returns storage.ErrNotFound for gates absent from the table.
func (l *Loader) Get(ctx context.Context, gate int) (*domain.GeneKey, error) {
	if gate < 1 || gate > 64 {
		return nil, storage.ErrInvalidInput
	}
	if err := l.ensure(ctx); err != nil {
		return nil, err
	}
	return l.store.GetByGate(ctx, gate)
}

// Count reports how many records are loaded, forcing a load first.
func (l *Loader) Count(ctx context.Context) (int, error) {
	if err := l.ensure(ctx); err != nil {
		return 0, err
	}
	return l.store.Count(ctx)
}

// ensure loads the CSV into the store exactly once. A store already holding
// records (for example a pre-seeded database) skips the file read.
func (l *Loader) ensure(ctx context.Context) error {
	if l.loaded.Load() {
		return nil
	}

	_, err, _ := l.group.Do("load", func() (interface{}, error) {
		if l.loaded.Load() {
			return nil, nil
		}

		n, err := l.store.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("count gene keys: %w", err)
		}
		if n > 0 {
			l.logger.Printf("store already holds %d gene keys, skipping csv load", n)
			l.loaded.Store(true)
			return nil, nil
		}

		f, err := os.Open(l.csvPath)
		if err != nil {
			return nil, fmt.Errorf("open gene keys csv: %w", err)
		}
		defer f.Close()

		keys, err := ParseCSV(f)
		if err != nil {
			return nil, fmt.Errorf("parse gene keys csv: %w", err)
		}

		if err := l.store.InsertBulk(ctx, keys); err != nil {
			// A concurrent writer beat us to it; treat the store as loaded.
			if errors.Is(err, storage.ErrDuplicateKey) {
				l.loaded.Store(true)
				return nil, nil
			}
			return nil, fmt.Errorf("store gene keys: %w", err)
		}

		l.logger.Printf("loaded %d gene keys from %s", len(keys), l.csvPath)
		l.loaded.Store(true)
		return nil, nil
	})
	return err
}
