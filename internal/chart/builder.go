// Package chart orchestrates the full computation: time normalization,
// design-time solving, per-body readings, and bodygraph analysis.
package chart

import (
	"fmt"
	"log"
	"os"
	"time"

	"humandesign/internal/bodygraph"
	"humandesign/internal/domain"
	"humandesign/internal/ephemeris"
	"humandesign/internal/idhash"
	"humandesign/internal/mandala"
	"humandesign/internal/observability"
	"humandesign/internal/solver"
	"humandesign/internal/timeconv"
)

// Request carries the birth data for one chart computation. Timezone is
// optional; an empty or invalid identifier falls back to a longitude-based
// offset estimate. Longitude and latitude default to 0.0 (Greenwich/equator).
type Request struct {
	Year      int
	Month     int
	Day       int
	Hour      int
	Minute    int
	Timezone  string
	Longitude float64
	Latitude  float64
}

// Options configures a Builder.
type Options struct {
	Ephemeris ephemeris.Provider
	// Precision is reported in every chart; set from ephemeris.Probe at startup.
	Precision domain.PrecisionMode
	// Derivation selects how center activation is produced. Defaults to
	// deriving from defined channels.
	Derivation domain.CenterDerivation
	// Clock stamps audit records; nil means time.Now.
	Clock func() time.Time
	// Logger may be nil.
	Logger *log.Logger
}

// Builder computes charts. Safe for concurrent use.
type Builder struct {
	provider   ephemeris.Provider
	precision  domain.PrecisionMode
	derivation domain.CenterDerivation
	clock      func() time.Time
	logger     *log.Logger
}

// NewBuilder creates a Builder from options.
func NewBuilder(opts Options) *Builder {
	b := &Builder{
		provider:   opts.Ephemeris,
		precision:  opts.Precision,
		derivation: opts.Derivation,
		clock:      opts.Clock,
		logger:     opts.Logger,
	}
	if b.provider == nil {
		b.provider = ephemeris.NewAnalyticProvider()
	}
	if b.precision == "" {
		b.precision = domain.PrecisionAnalytic
	}
	if b.derivation == "" {
		b.derivation = domain.DeriveFromChannels
	}
	if b.clock == nil {
		b.clock = time.Now
	}
	if b.logger == nil {
		b.logger = log.New(os.Stderr, "[chart] ", log.LstdFlags)
	}
	return b
}

// Build computes the chart and its audit record for one birth instant.
// Ephemeris failures degrade per body to the deterministic hash generator
// rather than failing the chart; only invalid civil input is an error.
func (b *Builder) Build(req Request) (*domain.Chart, *domain.ChartAudit, error) {
	started := b.clock()

	birthJD, tzEstimated, err := timeconv.ToUTCJulianDay(
		req.Year, req.Month, req.Day, req.Hour, req.Minute, req.Timezone, req.Longitude,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("normalize birth time: %w", err)
	}
	if tzEstimated {
		b.logger.Printf("timezone %q unusable, estimated offset from longitude %.2f", req.Timezone, req.Longitude)
		observability.RecordTimezoneEstimate()
	}

	inputDate := fmt.Sprintf("%04d-%02d-%02d %02d:%02d", req.Year, req.Month, req.Day, req.Hour, req.Minute)
	seedDate := fmt.Sprintf("%04d-%02d-%02d-%02d-%02d", req.Year, req.Month, req.Day, req.Hour, req.Minute)

	var (
		designJD  float64
		solve     solver.Result
		solverErr error
	)
	solve, solverErr = solver.SolveDesignJD(b.provider, birthJD)
	if solverErr != nil {
		// Without a design instant every design reading degrades to the
		// hash generator, which does not need a JD.
		b.logger.Printf("design solve failed, degrading to hash readings: %v", solverErr)
	} else {
		designJD = solve.JD
		observability.RecordSolve(solve.Iterations, solve.Converged)
		if !solve.Converged {
			b.logger.Printf("design solve did not converge after %d iterations, using best estimate", solve.Iterations)
		}
	}

	fallbacks := 0
	personality := b.readings(birthJD, false, seedDate, true, &fallbacks)
	design := b.readings(designJD, solverErr != nil, seedDate, false, &fallbacks)

	analysis := bodygraph.Analyze(personality, design, b.derivation, seedDate)

	ch := &domain.Chart{
		ID:                idhash.ComputeChartID(inputDate, req.Timezone, req.Longitude, req.Latitude),
		InputDate:         inputDate,
		Personality:       personality,
		Design:            design,
		BirthJD:           birthJD,
		DesignJD:          designJD,
		Type:              analysis.Type,
		Strategy:          analysis.Strategy,
		Authority:         analysis.Authority,
		DecisionMode:      analysis.DecisionMode,
		Profile:           analysis.Profile,
		NotSelfTheme:      analysis.NotSelfTheme,
		DefinedGates:      analysis.ActivatedGates,
		DefinedCenters:    analysis.Centers.Defined(),
		DefinedChannels:   analysis.DefinedChannels,
		PrecisionMode:     b.precision,
		TimezoneEstimated: tzEstimated,
		CenterDerivation:  analysis.Derivation,
	}

	finished := b.clock()
	audit := &domain.ChartAudit{
		ChartID:           ch.ID,
		InputDate:         inputDate,
		Timezone:          req.Timezone,
		PrecisionMode:     b.precision,
		CenterDerivation:  analysis.Derivation,
		TimezoneEstimated: tzEstimated,
		HashFallbacks:     fallbacks,
		SolverIterations:  solve.Iterations,
		SolverConverged:   solverErr == nil && solve.Converged,
		DurationMs:        finished.Sub(started).Milliseconds(),
		ComputedAt:        finished.UnixMilli(),
	}

	observability.RecordChart(ch.Type, finished.Sub(started).Seconds())
	observability.RecordHashFallbacks(fallbacks)

	return ch, audit, nil
}

// readings computes the 13 body readings for one instant. forceFallback
// routes every body through the hash generator, used when no design JD
// could be solved.
func (b *Builder) readings(jd float64, forceFallback bool, seedDate string, conscious bool, fallbacks *int) []domain.BodyReading {
	out := make([]domain.BodyReading, 0, len(domain.Bodies))
	for _, body := range domain.Bodies {
		if forceFallback {
			out = append(out, FallbackReading(seedDate, body, conscious))
			*fallbacks++
			continue
		}

		base, antipodal := body.BaseBody()
		lon, speed, err := ephemeris.LongitudeAndSpeed(b.provider, jd, base)
		if err != nil {
			b.logger.Printf("ephemeris failed for %s, using hash reading: %v", body, err)
			out = append(out, FallbackReading(seedDate, body, conscious))
			*fallbacks++
			continue
		}
		if antipodal {
			lon = ephemeris.Normalize360(lon + 180.0)
			speed = -speed
		}

		gate, line := mandala.MapLongitude(lon)
		r := domain.BodyReading{
			Body:      body,
			Gate:      gate,
			Line:      line,
			Sign:      mandala.GateSign(gate),
			Longitude: lon,
			Speed:     speed,
			Zodiac:    mandala.Zodiac(lon),
			Arrow:     mandala.DignityArrow(speed, line),
			Source:    domain.SourceEphemeris,
		}
		r.GateLine = r.Label()
		out = append(out, r)
	}
	return out
}
