// Package timeconv turns local civil birth times into UTC Julian days.
package timeconv

import (
	"fmt"
	"time"

	"humandesign/internal/ephemeris"
)

// ToUTCJulianDay converts a naive local date/time to a UTC Julian day.
//
// With a valid IANA timezone identifier the wall-clock time is interpreted
// in that zone, DST rules included, then converted to UTC. An empty or
// unrecognized identifier falls back to a crude longitude estimate
// (15° per hour), which ignores DST and political boundaries; estimated
// reports when that degraded path was taken. The fallback is deliberate:
// a bad timezone string reduces precision instead of failing the request.
func ToUTCJulianDay(year, month, day, hour, minute int, tzID string, fallbackLonDeg float64) (jd float64, estimated bool, err error) {
	if err := validateCivil(year, month, day, hour, minute); err != nil {
		return 0, false, err
	}

	if tzID != "" {
		if loc, locErr := time.LoadLocation(tzID); locErr == nil {
			local := time.Date(year, time.Month(month), day, hour, minute, 0, 0, loc)
			utc := local.UTC()
			return jdFromUTC(utc), false, nil
		}
		// Unknown identifier: degrade to the longitude estimate below.
		estimated = true
	}

	// Longitude estimate: UTC = local - lon/15 hours.
	offsetHours := fallbackLonDeg / 15.0
	local := time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)
	utc := local.Add(-time.Duration(offsetHours * float64(time.Hour)))
	return jdFromUTC(utc), true, nil
}

func jdFromUTC(t time.Time) float64 {
	hours := float64(t.Hour()) + float64(t.Minute())/60.0 +
		(float64(t.Second())+float64(t.Nanosecond())/1e9)/3600.0
	return ephemeris.JulianDay(t.Year(), int(t.Month()), t.Day(), hours)
}

func validateCivil(year, month, day, hour, minute int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("month %d out of range", month)
	}
	if day < 1 || day > 31 {
		return fmt.Errorf("day %d out of range", day)
	}
	if hour < 0 || hour > 23 {
		return fmt.Errorf("hour %d out of range", hour)
	}
	if minute < 0 || minute > 59 {
		return fmt.Errorf("minute %d out of range", minute)
	}
	return nil
}
