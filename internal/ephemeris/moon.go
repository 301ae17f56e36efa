package ephemeris

import "math"

// lunarTerm is one periodic term of the lunar longitude series: a
// multiple-angle combination of D, M, M' and F with a coefficient in
// millionths of a degree. Terms involving the solar anomaly M are scaled
// by the eccentricity factor E per power of M.
type lunarTerm struct {
	d, m, mp, f int
	coeff       float64
}

// Principal terms of the lunar longitude series, truncated where the
// contribution drops below ~0.005 degrees.
var lunarLongitudeTerms = []lunarTerm{
	{0, 0, 1, 0, 6288774},
	{2, 0, -1, 0, 1274027},
	{2, 0, 0, 0, 658314},
	{0, 0, 2, 0, 213618},
	{0, 1, 0, 0, -185116},
	{0, 0, 0, 2, -114332},
	{2, 0, -2, 0, 58793},
	{2, -1, -1, 0, 57066},
	{2, 0, 1, 0, 53322},
	{2, -1, 0, 0, 45758},
	{0, 1, -1, 0, -40923},
	{1, 0, 0, 0, -34720},
	{0, 1, 1, 0, -30383},
	{2, 0, 0, -2, 15327},
	{0, 0, 1, 2, -12528},
	{0, 0, 1, -2, 10980},
	{4, 0, -1, 0, 10675},
	{0, 0, 3, 0, 10034},
	{4, 0, -2, 0, 8548},
	{2, 1, -1, 0, -7888},
	{2, 1, 0, 0, -6766},
	{1, 0, -1, 0, -5163},
	{1, 1, 0, 0, 4987},
	{2, -1, 1, 0, 4036},
}

// moonLongitude returns the geocentric longitude of the Moon referred to
// the mean equinox of date.
func moonLongitude(jd float64) float64 {
	t := JulianCenturies(jd)
	t2 := t * t
	t3 := t2 * t
	t4 := t3 * t

	// Mean longitude, elongation, anomalies and argument of latitude.
	lp := 218.3164477 + 481267.88123421*t - 0.0015786*t2 + t3/538841.0 - t4/65194000.0
	d := 297.8501921 + 445267.1114034*t - 0.0018819*t2 + t3/545868.0 - t4/113065000.0
	m := 357.5291092 + 35999.0502909*t - 0.0001536*t2 + t3/24490000.0
	mp := 134.9633964 + 477198.8675055*t + 0.0087414*t2 + t3/69699.0 - t4/14712000.0
	f := 93.2720950 + 483202.0175233*t - 0.0036539*t2 - t3/3526000.0 + t4/863310000.0

	// Eccentricity of Earth's orbit decays slowly; terms in M shrink with it.
	e := 1 - 0.002516*t - 0.0000074*t2

	var sum float64
	for _, term := range lunarLongitudeTerms {
		arg := rad(float64(term.d)*d + float64(term.m)*m +
			float64(term.mp)*mp + float64(term.f)*f)
		coeff := term.coeff
		switch term.m {
		case 1, -1:
			coeff *= e
		case 2, -2:
			coeff *= e * e
		}
		sum += coeff * math.Sin(arg)
	}

	// Venus and Jupiter perturbations plus the flattening term.
	a1 := rad(119.75 + 131.849*t)
	a2 := rad(53.09 + 479264.290*t)
	sum += 3958*math.Sin(a1) + 1962*math.Sin(rad(lp-f)) + 318*math.Sin(a2)

	return Normalize360(lp + sum/1e6)
}
