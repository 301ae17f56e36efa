package domain

// Body identifies one of the 13 celestial bodies used in a chart.
type Body string

// The 13 chart bodies, in the fixed order they appear in every chart.
const (
	BodySun       Body = "Sun"
	BodyEarth     Body = "Earth"
	BodyMoon      Body = "Moon"
	BodyNorthNode Body = "North Node"
	BodySouthNode Body = "South Node"
	BodyMercury   Body = "Mercury"
	BodyVenus     Body = "Venus"
	BodyMars      Body = "Mars"
	BodyJupiter   Body = "Jupiter"
	BodySaturn    Body = "Saturn"
	BodyUranus    Body = "Uranus"
	BodyNeptune   Body = "Neptune"
	BodyPluto     Body = "Pluto"
)

// Bodies lists all chart bodies in chart order. The order is part of the
// output contract and must not change.
var Bodies = []Body{
	BodySun,
	BodyEarth,
	BodyMoon,
	BodyNorthNode,
	BodySouthNode,
	BodyMercury,
	BodyVenus,
	BodyMars,
	BodyJupiter,
	BodySaturn,
	BodyUranus,
	BodyNeptune,
	BodyPluto,
}

// BaseBody returns the body whose ephemeris position this body is derived
// from, and whether the derivation is the antipodal one (+180 degrees,
// negated speed). Earth derives from the Sun and the South Node from the
// North Node; every other body is its own base.
func (b Body) BaseBody() (base Body, antipodal bool) {
	switch b {
	case BodyEarth:
		return BodySun, true
	case BodySouthNode:
		return BodyNorthNode, true
	default:
		return b, false
	}
}

// Valid reports whether b is one of the 13 chart bodies.
func (b Body) Valid() bool {
	for _, known := range Bodies {
		if b == known {
			return true
		}
	}
	return false
}
