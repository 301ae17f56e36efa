package domain

import "fmt"

// PositionSource names the mechanism that produced a reading.
type PositionSource string

const (
	// SourceEphemeris marks a reading computed from the ephemeris provider.
	SourceEphemeris PositionSource = "ephemeris"
	// SourceHashFallback marks a reading produced by the deterministic
	// hash generator after an ephemeris failure. Lower fidelity.
	SourceHashFallback PositionSource = "hash_fallback"
)

// Dignity is the retrograde/exaltation arrow attached to a reading.
type Dignity string

const (
	DignityNone    Dignity = ""
	DignityRising  Dignity = "▲"
	DignityFalling Dignity = "▼"
)

// BodyReading is one body's position at one instant, expressed in mandala
// coordinates. Immutable once built.
type BodyReading struct {
	Body      Body           `json:"planet"`
	Gate      int            `json:"gate"` // 1-64
	Line      int            `json:"line"` // 1-6
	GateLine  string         `json:"gate_line"`
	Sign      string         `json:"sign"`
	Longitude float64        `json:"longitude"`            // degrees [0,360)
	Speed     float64        `json:"speed"`                // degrees/day, negative = retrograde
	Zodiac    string         `json:"constellation_symbol"` // one of the 12 glyphs
	Arrow     Dignity        `json:"arrow_direction"`
	Source    PositionSource `json:"source"`
}

// Label returns the "gate.line" form, e.g. "15.2".
func (r BodyReading) Label() string {
	return fmt.Sprintf("%d.%d", r.Gate, r.Line)
}
