package ephemeris

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"humandesign/internal/domain"
)

func TestJulianDay_KnownEpochs(t *testing.T) {
	// J2000.0: 2000-01-01 12:00 UTC.
	if got := JulianDay(2000, 1, 1, 12.0); got != 2451545.0 {
		t.Errorf("J2000 epoch: got %f, want 2451545.0", got)
	}

	// 1990-05-15 00:00 UTC.
	if got := JulianDay(1990, 5, 15, 0.0); got != 2448026.5 {
		t.Errorf("1990-05-15: got %f, want 2448026.5", got)
	}

	// Fractional day must advance by exactly 1/24 per hour.
	diff := JulianDay(2024, 3, 10, 7.0) - JulianDay(2024, 3, 10, 6.0)
	if math.Abs(diff-1.0/24.0) > 1e-12 {
		t.Errorf("hour increment: got %g, want %g", diff, 1.0/24.0)
	}
}

func TestNormalize360(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{360, 0},
		{720.5, 0.5},
		{-1, 359},
		{-725, 355},
	}
	for _, tc := range cases {
		if got := Normalize360(tc.in); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Normalize360(%f) = %f, want %f", tc.in, got, tc.want)
		}
	}
}

func TestWrap180(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{180, 180},
		{181, -179},
		{-180, 180},
		{359, -1},
		{-359, 1},
	}
	for _, tc := range cases {
		if got := Wrap180(tc.in); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Wrap180(%f) = %f, want %f", tc.in, got, tc.want)
		}
	}
}

func TestSunLongitude_Equinox(t *testing.T) {
	// Around the March 2000 equinox (2000-03-20 07:35 UTC) the Sun sits
	// at 0° tropical longitude. The analytic model should be within a
	// few hundredths of a degree.
	jd := JulianDay(2000, 3, 20, 7.0+35.0/60.0)
	p := NewAnalyticProvider()
	lon, err := p.Longitude(jd, domain.BodySun)
	if err != nil {
		t.Fatalf("Longitude failed: %v", err)
	}
	if d := math.Abs(Wrap180(lon - 0.0)); d > 0.05 {
		t.Errorf("Sun at equinox: got %f, want ~0 (diff %f)", lon, d)
	}
}

func TestSunSpeed_NearMeanMotion(t *testing.T) {
	p := NewAnalyticProvider()
	jd := JulianDay(1990, 5, 15, 12.0)
	_, speed, err := LongitudeAndSpeed(p, jd, domain.BodySun)
	if err != nil {
		t.Fatalf("LongitudeAndSpeed failed: %v", err)
	}
	// Solar motion stays within ~0.95-1.02 deg/day through the year.
	if speed < 0.93 || speed > 1.04 {
		t.Errorf("Sun speed %f outside plausible range", speed)
	}
}

func TestMoonSpeed_Plausible(t *testing.T) {
	p := NewAnalyticProvider()
	jd := JulianDay(2010, 1, 1, 0.0)
	_, speed, err := LongitudeAndSpeed(p, jd, domain.BodyMoon)
	if err != nil {
		t.Fatalf("LongitudeAndSpeed failed: %v", err)
	}
	// The Moon covers roughly 11.8-15.4 deg/day.
	if speed < 11.0 || speed > 16.0 {
		t.Errorf("Moon speed %f outside plausible range", speed)
	}
}

func TestNodeRegresses(t *testing.T) {
	p := NewAnalyticProvider()
	jd := JulianDay(1995, 7, 1, 0.0)
	_, speed, err := LongitudeAndSpeed(p, jd, domain.BodyNorthNode)
	if err != nil {
		t.Fatalf("LongitudeAndSpeed failed: %v", err)
	}
	if speed >= 0 {
		t.Errorf("mean node speed %f, want negative (retrograde)", speed)
	}
}

func TestPlanetLongitudes_AllBaseBodies(t *testing.T) {
	p := NewAnalyticProvider()
	jd := JulianDay(1984, 11, 3, 6.5)

	for _, body := range domain.Bodies {
		base, antipodal := body.BaseBody()
		if antipodal {
			continue // Earth and South Node have no direct ephemeris
		}
		lon, err := p.Longitude(jd, base)
		if err != nil {
			t.Errorf("Longitude(%s) failed: %v", base, err)
			continue
		}
		if lon < 0 || lon >= 360 {
			t.Errorf("Longitude(%s) = %f outside [0,360)", base, lon)
		}
	}
}

func TestLongitude_DerivedBodiesRejected(t *testing.T) {
	p := NewAnalyticProvider()
	jd := JulianDay(2000, 1, 1, 0.0)
	for _, body := range []domain.Body{domain.BodyEarth, domain.BodySouthNode} {
		if _, err := p.Longitude(jd, body); err == nil {
			t.Errorf("Longitude(%s) succeeded, want error", body)
		}
	}
}

func TestLongitude_Deterministic(t *testing.T) {
	p := NewAnalyticProvider()
	jd := JulianDay(1977, 2, 9, 21.25)
	a, err := p.Longitude(jd, domain.BodyMercury)
	if err != nil {
		t.Fatalf("Longitude failed: %v", err)
	}
	b, _ := p.Longitude(jd, domain.BodyMercury)
	if a != b {
		t.Errorf("longitude not deterministic: %v != %v", a, b)
	}
}

func TestProbe(t *testing.T) {
	if mode := Probe(""); mode != domain.PrecisionAnalytic {
		t.Errorf("empty path: got %s, want analytic", mode)
	}
	if mode := Probe(filepath.Join(t.TempDir(), "missing")); mode != domain.PrecisionAnalytic {
		t.Errorf("missing dir: got %s, want analytic", mode)
	}

	dir := t.TempDir()
	if mode := Probe(dir); mode != domain.PrecisionAnalytic {
		t.Errorf("empty dir: got %s, want analytic", mode)
	}

	for _, name := range requiredDataFiles {
		if err := os.WriteFile(filepath.Join(dir, name), []byte{0}, 0o644); err != nil {
			t.Fatalf("write stub data file: %v", err)
		}
	}
	if mode := Probe(dir); mode != domain.PrecisionPrecise {
		t.Errorf("staged dir: got %s, want precise", mode)
	}
	if missing := MissingDataFiles(dir); len(missing) != 0 {
		t.Errorf("staged dir: unexpected missing files %v", missing)
	}
}
