package download

import (
	"strconv"
	"strings"

	"github.com/streamscribe/streamscribe/internal/engine"
)

// progressTracker folds raw engine observations into a normalized 0-100
// percentage. The output never decreases within one job; conflicting or
// missing signals repeat the last known value.
type progressTracker struct {
	last float64
}

// Observe returns the normalized percentage for one observation. Sources
// are tried in order: engine percent string, exact byte ratio, estimated
// byte ratio, last known value.
func (t *progressTracker) Observe(record engine.ProgressRecord) float64 {
	percent, ok := percentFromString(record.PercentStr)

	if !ok && record.TotalBytes > 0 {
		percent = float64(record.DownloadedBytes) / float64(record.TotalBytes) * 100
		ok = true
	}
	if !ok && record.TotalBytesEst > 0 {
		percent = float64(record.DownloadedBytes) / float64(record.TotalBytesEst) * 100
		ok = true
	}
	if !ok {
		percent = t.last
	}

	if record.Status == engine.StatusFinished {
		percent = 100
	}

	if percent < t.last {
		percent = t.last
	}
	if percent > 100 {
		percent = 100
	}

	t.last = percent
	return percent
}

// percentFromString parses values like "45.2%", tolerating padding.
func percentFromString(s string) (float64, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil || value < 0 {
		return 0, false
	}
	return value, true
}
