package ephemeris

import "math"

// J2000 is the Julian day of the J2000.0 epoch (2000-01-01 12:00 UTC).
const J2000 = 2451545.0

// JulianDay converts a Gregorian calendar date plus decimal hours (UTC) to
// a continuous Julian day number. The fractional part encodes time of day.
func JulianDay(year, month, day int, hours float64) float64 {
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3

	jdn := day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
	return float64(jdn) + (hours-12.0)/24.0
}

// JulianCenturies returns centuries elapsed since J2000.0.
func JulianCenturies(jd float64) float64 {
	return (jd - J2000) / 36525.0
}

// Normalize360 reduces an angle in degrees to [0, 360).
func Normalize360(deg float64) float64 {
	deg = math.Mod(deg, 360.0)
	if deg < 0 {
		deg += 360.0
	}
	return deg
}

// Wrap180 reduces an angular difference in degrees to (-180, 180], always
// selecting the shorter arc.
func Wrap180(deg float64) float64 {
	deg = math.Mod(deg, 360.0)
	if deg > 180.0 {
		deg -= 360.0
	} else if deg <= -180.0 {
		deg += 360.0
	}
	return deg
}
