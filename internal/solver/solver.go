// Package solver locates the design instant: the moment the Sun sat
// exactly 88° of arc before its birth position.
package solver

import (
	"fmt"
	"math"

	"humandesign/internal/domain"
	"humandesign/internal/ephemeris"
)

const (
	// DesignArc is the solar arc, in degrees, separating birth from the
	// design instant.
	DesignArc = 88.0
	// meanSolarMotion is the Sun's mean daily motion in degrees/day.
	// Used only to seed the search and as a stand-in velocity when the
	// sampled estimate is too small to divide by.
	meanSolarMotion = 0.9856
	// tolerance is the convergence threshold in degrees (~0.036 arcsec,
	// about 8.6 seconds of time at solar speed).
	tolerance = 0.00001
	// maxStepDays clamps a single Newton step to keep a bad velocity
	// estimate from flinging the search.
	maxStepDays = 10.0
	// maxIterations bounds the search; past it the best trial stands.
	maxIterations = 200
	// minMotion is the velocity magnitude below which the sampled solar
	// speed is replaced with meanSolarMotion to avoid dividing by noise.
	minMotion = 0.001
)

// Result is the outcome of a design-time search. A non-converged result
// still carries the best trial found; callers decide whether to surface
// the degradation.
type Result struct {
	JD         float64
	Converged  bool
	Iterations int
}

// SolveDesignJD finds the Julian day at which the Sun's longitude equals
// the birth longitude minus exactly 88°, by Newton iteration on the
// wrapped angular difference. Solar motion varies (~0.95-1.02°/day), so a
// flat "88 days earlier" would misplace gates near boundaries; the search
// matches professional reference tools at gate-boundary resolution.
func SolveDesignJD(p ephemeris.Provider, birthJD float64) (Result, error) {
	birthSun, err := p.Longitude(birthJD, domain.BodySun)
	if err != nil {
		return Result{}, fmt.Errorf("sun at birth: %w", err)
	}
	target := ephemeris.Normalize360(birthSun - DesignArc)

	seed := birthJD - DesignArc/meanSolarMotion
	trial := seed

	res := Result{JD: trial}
	for iter := 0; iter < maxIterations; iter++ {
		res.Iterations = iter + 1

		current, err := p.Longitude(trial, domain.BodySun)
		if err != nil {
			return Result{}, fmt.Errorf("sun at trial: %w", err)
		}

		diff := ephemeris.Wrap180(current - target)
		if math.Abs(diff) < tolerance {
			res.Converged = true
			break
		}

		before, err := p.Longitude(trial-ephemeris.SpeedSampleStep, domain.BodySun)
		if err != nil {
			return Result{}, fmt.Errorf("sun before trial: %w", err)
		}
		after, err := p.Longitude(trial+ephemeris.SpeedSampleStep, domain.BodySun)
		if err != nil {
			return Result{}, fmt.Errorf("sun after trial: %w", err)
		}
		motion := ephemeris.Wrap180(after-before) / (2 * ephemeris.SpeedSampleStep)
		if math.Abs(motion) < minMotion {
			motion = meanSolarMotion
		}

		step := -diff / motion
		if step > maxStepDays {
			step = maxStepDays
		} else if step < -maxStepDays {
			step = -maxStepDays
		}
		trial += step
	}
	res.JD = trial

	// The design instant always precedes birth. A later result means the
	// search walked the wrong way; fall back to the uncorrected seed.
	if res.JD > birthJD {
		res.JD = seed
		res.Converged = false
	}
	return res, nil
}
