// Package mandala maps ecliptic longitudes onto the fixed 64-gate wheel.
package mandala

import (
	"math"

	"humandesign/internal/domain"
)

const (
	// GateDegrees is the arc width of one gate (360/64).
	GateDegrees = 5.625
	// LineDegrees is the arc width of one line (GateDegrees/6).
	LineDegrees = 0.9375
	// AriesOffset aligns tropical 0° to the wheel: 302.0° (2° Aquarius)
	// marks the start of gate 41, putting 0° Aries inside gate 25.
	AriesOffset = 58.0
)

// GateSequence is the fixed wheel order: sequential 5.625° slices of the
// offset ecliptic map to these gate numbers, starting from gate 41. The
// order is load-bearing and must be reproduced exactly.
var GateSequence = [64]int{
	41, 19, 13, 49, 30, 55, 37, 63, 22, 36, 25, 17, 21, 51, 42, 3,
	27, 24, 2, 23, 8, 20, 16, 35, 45, 12, 15, 52, 39, 53, 62, 56,
	31, 33, 7, 4, 29, 59, 40, 64, 47, 6, 46, 18, 48, 57, 32, 50,
	28, 44, 1, 43, 14, 34, 9, 5, 26, 11, 10, 58, 38, 54, 61, 60,
}

// MapLongitude converts an ecliptic longitude in degrees to a gate and
// line. Total over all reals: input is reduced mod 360 with negative
// values wrapping positive, so MapLongitude(x) == MapLongitude(x+360).
func MapLongitude(longitude float64) (gate, line int) {
	lon := math.Mod(longitude, 360.0)
	if lon < 0 {
		lon += 360.0
	}

	adjusted := math.Mod(lon+AriesOffset, 360.0)

	gateIndex := int(adjusted/GateDegrees) % 64
	gate = GateSequence[gateIndex]

	positionInGate := math.Mod(adjusted, GateDegrees)
	line = int(positionInGate/LineDegrees) + 1
	if line > 6 {
		line = 6
	} else if line < 1 {
		line = 1
	}
	return gate, line
}

// DignityArrow classifies a reading's arrow from its angular velocity:
// falling for retrograde motion, rising for direct motion in the upper
// lines (4-6). The 0.001°/day thresholds guard against floating-point
// noise around stations, nothing more.
func DignityArrow(speed float64, line int) domain.Dignity {
	if speed < -0.001 {
		return domain.DignityFalling
	}
	if speed > 0.001 && line >= 4 {
		return domain.DignityRising
	}
	return domain.DignityNone
}
