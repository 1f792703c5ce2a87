// Package efficiency turns raw shift rows into worked hours, efficiency ratios
// and per-employee aggregates.
package efficiency

import (
	"fmt"
	"math"
	"time"

	"shiftstat/internal/timeutil"
)

// Duration returns the hours elapsed between two "HH:MM:SS" clock values,
// rounded to one decimal. A clock-out earlier than the clock-in is read as the
// next day.
func Duration(clockIn, clockOut string) (float64, error) {
	in, err := timeutil.ParseClock(clockIn)
	if err != nil {
		return 0, fmt.Errorf("parse clock in: %w", err)
	}
	out, err := timeutil.ParseClock(clockOut)
	if err != nil {
		return 0, fmt.Errorf("parse clock out: %w", err)
	}
	return HoursBetween(in, out), nil
}

// HoursBetween is Duration for clock values already parsed to offsets from midnight.
func HoursBetween(clockIn, clockOut time.Duration) float64 {
	elapsed := clockOut - clockIn
	if elapsed < 0 {
		elapsed += timeutil.Day
	}
	return round(elapsed.Hours(), 1)
}

// round rounds half to even, so 8.25 hours becomes 8.2 and 0.0625 becomes 0.062.
func round(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.RoundToEven(value*scale) / scale
}
