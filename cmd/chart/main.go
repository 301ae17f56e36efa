// Package main computes a single chart and prints it as JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"humandesign/internal/chart"
	"humandesign/internal/domain"
	"humandesign/internal/ephemeris"
)

func main() {
	date := flag.String("date", "", "Birth date, YYYY-MM-DD (required)")
	clock := flag.String("time", "", "Birth time, HH:MM (required)")
	timezone := flag.String("timezone", "", "IANA timezone name (default: estimated from longitude)")
	longitude := flag.Float64("longitude", 0, "Birth longitude in degrees east")
	latitude := flag.Float64("latitude", 0, "Birth latitude in degrees north")
	ephePath := flag.String("ephe-path", os.Getenv("EPHE_PATH"), "Directory with precise ephemeris data files")
	derivation := flag.String("center-derivation", "channels", "Center derivation mode (channels, simulated)")
	pretty := flag.Bool("pretty", true, "Indent JSON output")

	flag.Parse()

	logger := log.New(os.Stderr, "[chart] ", log.LstdFlags)

	if *date == "" || *clock == "" {
		logger.Fatal("--date and --time are required")
	}

	year, month, day, err := parseDate(*date)
	if err != nil {
		logger.Fatalf("Invalid --date: %v", err)
	}
	hour, minute, err := parseTime(*clock)
	if err != nil {
		logger.Fatalf("Invalid --time: %v", err)
	}

	builder := chart.NewBuilder(chart.Options{
		Precision:  ephemeris.Probe(*ephePath),
		Derivation: domain.CenterDerivation(*derivation),
		Logger:     logger,
	})

	ch, _, err := builder.Build(chart.Request{
		Year: year, Month: month, Day: day, Hour: hour, Minute: minute,
		Timezone: *timezone, Longitude: *longitude, Latitude: *latitude,
	})
	if err != nil {
		logger.Fatalf("Chart computation failed: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(ch); err != nil {
		logger.Fatalf("Encode chart: %v", err)
	}
}

func parseDate(value string) (year, month, day int, err error) {
	parts := strings.Split(value, "-")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("want YYYY-MM-DD, got %q", value)
	}
	year, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	day, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, fmt.Errorf("want YYYY-MM-DD, got %q", value)
	}
	return year, month, day, nil
}

func parseTime(value string) (hour, minute int, err error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("want HH:MM, got %q", value)
	}
	hour, err1 := strconv.Atoi(parts[0])
	minute, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("want HH:MM, got %q", value)
	}
	return hour, minute, nil
}
