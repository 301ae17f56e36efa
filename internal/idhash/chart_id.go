// Package idhash derives deterministic identifiers and seeds from chart
// inputs. Identical inputs always hash to identical values, so chart IDs
// and fallback readings are reproducible across processes.
package idhash

import (
	"crypto/sha256"
	"fmt"

	"github.com/mr-tron/base58"
)

// ComputeChartID computes a deterministic chart identifier.
// Formula: base58(SHA256(input_date|timezone|longitude|latitude)[:16]).
// The truncation keeps the ID short enough to share while 128 bits of
// digest keep collisions out of reach for this input space.
func ComputeChartID(inputDate, timezone string, longitude, latitude float64) string {
	data := fmt.Sprintf("%s|%s|%.6f|%.6f", inputDate, timezone, longitude, latitude)
	hash := sha256.Sum256([]byte(data))
	return base58.Encode(hash[:16])
}
