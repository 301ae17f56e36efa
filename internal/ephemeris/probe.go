package ephemeris

import (
	"os"
	"path/filepath"

	"humandesign/internal/domain"
)

// requiredDataFiles are the precise ephemeris data files that must all be
// present for the deployment to count as running at full precision.
var requiredDataFiles = []string{"seas_18.se1", "sem_18.se1"}

// Probe inspects an ephemeris data directory and reports the precision
// tier. Missing directory or any missing data file degrades to the
// analytic tier; the result is surfaced on /health and /status so
// operators can confirm full precision is staged.
func Probe(ephePath string) domain.PrecisionMode {
	if ephePath == "" {
		return domain.PrecisionAnalytic
	}
	if info, err := os.Stat(ephePath); err != nil || !info.IsDir() {
		return domain.PrecisionAnalytic
	}
	for _, name := range requiredDataFiles {
		if _, err := os.Stat(filepath.Join(ephePath, name)); err != nil {
			return domain.PrecisionAnalytic
		}
	}
	return domain.PrecisionPrecise
}

// MissingDataFiles lists the required data files absent from ephePath,
// for startup logging. An empty slice means the full set is staged.
func MissingDataFiles(ephePath string) []string {
	var missing []string
	for _, name := range requiredDataFiles {
		if _, err := os.Stat(filepath.Join(ephePath, name)); err != nil {
			missing = append(missing, name)
		}
	}
	return missing
}
