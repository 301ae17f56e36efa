package storage

import "errors"

// Sentinel errors shared by every GeneKeyStore and ChartAuditStore backend.
var (
	// ErrNotFound is returned when a gate has no gene key record or a
	// chart id has no audit rows.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when inserting a gene key for a gate
	// that already holds one. The reference table never updates in place;
	// reseeding requires a fresh store.
	ErrDuplicateKey = errors.New("duplicate key: append-only store does not allow updates")

	// ErrInvalidInput is returned for out-of-range gates (valid: 1-64)
	// and non-positive limits.
	ErrInvalidInput = errors.New("invalid input")
)
