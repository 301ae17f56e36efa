package ephemeris

import (
	"fmt"
	"math"

	"humandesign/internal/domain"
)

// AnalyticProvider implements Provider with a built-in analytic model:
// a trigonometric solar theory, a truncated lunar series, the mean lunar
// node, and Keplerian mean elements for the planets. Accuracy is of order
// an arcminute for the planets and a few hundredths of a degree for the
// Sun and Moon, which is the documented degraded tier when no precise
// ephemeris data files are staged.
type AnalyticProvider struct{}

// NewAnalyticProvider returns the analytic engine. It is stateless and
// safe for concurrent use.
func NewAnalyticProvider() *AnalyticProvider {
	return &AnalyticProvider{}
}

var _ Provider = (*AnalyticProvider)(nil)

// Longitude returns the geocentric ecliptic longitude of a base body,
// referred to the mean equinox of date, in degrees [0, 360).
func (p *AnalyticProvider) Longitude(jd float64, body domain.Body) (float64, error) {
	switch body {
	case domain.BodySun:
		return sunLongitude(jd), nil
	case domain.BodyMoon:
		return moonLongitude(jd), nil
	case domain.BodyNorthNode:
		return meanNodeLongitude(jd), nil
	case domain.BodyMercury, domain.BodyVenus, domain.BodyMars,
		domain.BodyJupiter, domain.BodySaturn, domain.BodyUranus,
		domain.BodyNeptune, domain.BodyPluto:
		return planetLongitude(jd, body)
	default:
		// Earth and South Node are derived by the caller, not served here.
		return 0, fmt.Errorf("no direct ephemeris for body %q", body)
	}
}

func rad(deg float64) float64 { return deg * math.Pi / 180.0 }
func deg(r float64) float64   { return r * 180.0 / math.Pi }

// generalPrecession is the accumulated general precession in longitude,
// in degrees, from J2000 to the epoch of date. Applied to positions
// computed against the J2000 equinox to obtain tropical longitudes.
func generalPrecession(t float64) float64 {
	return 1.3969713 * t
}

// sunLongitude returns the apparent geocentric longitude of the Sun,
// including the equation of center, aberration and the principal nutation
// term. Referred to the equinox of date.
func sunLongitude(jd float64) float64 {
	t := JulianCenturies(jd)

	l0 := 280.46646 + 36000.76983*t + 0.0003032*t*t
	m := rad(357.52911 + 35999.05029*t - 0.0001537*t*t)

	c := (1.914602-0.004817*t-0.000014*t*t)*math.Sin(m) +
		(0.019993-0.000101*t)*math.Sin(2*m) +
		0.000289*math.Sin(3*m)

	trueLong := l0 + c

	omega := rad(125.04 - 1934.136*t)
	apparent := trueLong - 0.00569 - 0.00478*math.Sin(omega)

	return Normalize360(apparent)
}

// meanNodeLongitude returns the mean ascending lunar node. The node
// regresses, so its speed estimate comes out negative.
func meanNodeLongitude(jd float64) float64 {
	t := JulianCenturies(jd)
	omega := 125.0445479 - 1934.1362891*t + 0.0020754*t*t +
		t*t*t/467441.0 - t*t*t*t/60616000.0
	return Normalize360(omega)
}

// keplerElements holds mean orbital elements at J2000 plus per-century
// rates: semi-major axis (au), eccentricity, inclination, mean longitude,
// longitude of perihelion and longitude of the ascending node (degrees).
type keplerElements struct {
	a, e, i, l, lp, node     float64
	da, de, di, dl, dlp, dnode float64
}

// Mean elements valid for 1800-2050, J2000 ecliptic.
var planetElements = map[domain.Body]keplerElements{
	domain.BodyMercury: {
		0.38709927, 0.20563593, 7.00497902, 252.25032350, 77.45779628, 48.33076593,
		0.00000037, 0.00001906, -0.00594749, 149472.67411175, 0.16047689, -0.12534081,
	},
	domain.BodyVenus: {
		0.72333566, 0.00677672, 3.39467605, 181.97909950, 131.60246718, 76.67984255,
		0.00000390, -0.00004107, -0.00078890, 58517.81538729, 0.00268329, -0.27769418,
	},
	bodyEarthMoonBary: {
		1.00000261, 0.01671123, -0.00001531, 100.46457166, 102.93768193, 0.0,
		0.00000562, -0.00004392, -0.01294668, 35999.37244981, 0.32327364, 0.0,
	},
	domain.BodyMars: {
		1.52371034, 0.09339410, 1.84969142, -4.55343205, -23.94362959, 49.55953891,
		0.00001847, 0.00007882, -0.00813131, 19140.30268499, 0.44441088, -0.29257343,
	},
	domain.BodyJupiter: {
		5.20288700, 0.04838624, 1.30439695, 34.39644051, 14.72847983, 100.47390909,
		-0.00011607, -0.00013253, -0.00183714, 3034.74612775, 0.21252668, 0.20469106,
	},
	domain.BodySaturn: {
		9.53667594, 0.05386179, 2.48599187, 49.95424423, 92.59887831, 113.66242448,
		-0.00125060, -0.00050991, 0.00193609, 1222.49362201, -0.41897216, -0.28867794,
	},
	domain.BodyUranus: {
		19.18916464, 0.04725744, 0.77263783, 313.23810451, 170.95427630, 74.01692503,
		-0.00196176, -0.00004397, -0.00242939, 428.48202785, 0.40805281, 0.04240589,
	},
	domain.BodyNeptune: {
		30.06992276, 0.00859048, 1.77004347, -55.12002969, 44.96476227, 131.78422574,
		0.00026291, 0.00005105, 0.00035372, 218.45945325, -0.32241464, -0.00508664,
	},
	domain.BodyPluto: {
		39.48211675, 0.24882730, 17.14001206, 238.92903833, 224.06891629, 110.30393684,
		-0.00031596, 0.00005170, 0.00004818, 145.20780515, -0.04062942, -0.01183482,
	},
}

// bodyEarthMoonBary keys the Earth-Moon barycenter elements, used only as
// the observer position when reducing heliocentric places to geocentric.
const bodyEarthMoonBary domain.Body = "Earth-Moon Barycenter"

// planetLongitude returns the geocentric ecliptic longitude of a planet,
// referred to the equinox of date.
func planetLongitude(jd float64, body domain.Body) (float64, error) {
	el, ok := planetElements[body]
	if !ok {
		return 0, fmt.Errorf("no orbital elements for body %q", body)
	}

	t := JulianCenturies(jd)

	px, py, _ := heliocentric(el, t)
	ex, ey, _ := heliocentric(planetElements[bodyEarthMoonBary], t)

	lon := deg(math.Atan2(py-ey, px-ex))
	return Normalize360(lon + generalPrecession(t)), nil
}

// heliocentric returns ecliptic J2000 rectangular coordinates (au) from
// mean Keplerian elements at t centuries past J2000.
func heliocentric(el keplerElements, t float64) (x, y, z float64) {
	a := el.a + el.da*t
	e := el.e + el.de*t
	i := rad(el.i + el.di*t)
	l := el.l + el.dl*t
	lp := el.lp + el.dlp*t
	node := rad(el.node + el.dnode*t)

	// Argument of perihelion and mean anomaly.
	w := rad(lp) - node
	m := rad(Wrap180(l - lp))

	ea := solveKepler(m, e)

	// Position in the orbital plane.
	xp := a * (math.Cos(ea) - e)
	yp := a * math.Sqrt(1-e*e) * math.Sin(ea)

	cw, sw := math.Cos(w), math.Sin(w)
	cn, sn := math.Cos(node), math.Sin(node)
	ci, si := math.Cos(i), math.Sin(i)

	x = (cw*cn-sw*sn*ci)*xp + (-sw*cn-cw*sn*ci)*yp
	y = (cw*sn+sw*cn*ci)*xp + (-sw*sn+cw*cn*ci)*yp
	z = sw*si*xp + cw*si*yp
	return x, y, z
}

// solveKepler iterates Kepler's equation E - e sin E = M to 1e-8 rad.
func solveKepler(m, e float64) float64 {
	ea := m + e*math.Sin(m)
	for iter := 0; iter < 30; iter++ {
		delta := (m - (ea - e*math.Sin(ea))) / (1 - e*math.Cos(ea))
		ea += delta
		if math.Abs(delta) < 1e-8 {
			break
		}
	}
	return ea
}
