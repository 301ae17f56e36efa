// Package ephemeris computes geocentric ecliptic longitudes for the chart
// bodies. The Provider interface is the seam where a precise data-file
// backed engine plugs in; the built-in AnalyticProvider is the
// always-available fallback engine.
package ephemeris

import (
	"fmt"

	"humandesign/internal/domain"
)

// SpeedSampleStep is the symmetric-difference offset, in days, used for
// angular velocity estimation (about 1.44 minutes).
const SpeedSampleStep = 0.001

// Provider computes the geocentric ecliptic longitude of a body at a
// Julian day (UTC). Only base bodies are served directly; Earth and the
// South Node are derived by callers via domain.Body.BaseBody.
type Provider interface {
	Longitude(jd float64, body domain.Body) (float64, error)
}

// LongitudeAndSpeed samples p at jd±SpeedSampleStep and returns the
// longitude at jd together with the estimated angular velocity in
// degrees/day. The wrapped difference always takes the shorter arc, so a
// body crossing 0° does not produce a ~360°/day artifact.
func LongitudeAndSpeed(p Provider, jd float64, body domain.Body) (lon, speed float64, err error) {
	before, err := p.Longitude(jd-SpeedSampleStep, body)
	if err != nil {
		return 0, 0, fmt.Errorf("sample before: %w", err)
	}
	lon, err = p.Longitude(jd, body)
	if err != nil {
		return 0, 0, fmt.Errorf("sample at: %w", err)
	}
	after, err := p.Longitude(jd+SpeedSampleStep, body)
	if err != nil {
		return 0, 0, fmt.Errorf("sample after: %w", err)
	}

	speed = Wrap180(after-before) / (2 * SpeedSampleStep)
	return lon, speed, nil
}
