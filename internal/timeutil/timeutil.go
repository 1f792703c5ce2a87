package timeutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const Day = 24 * time.Hour

func StartOfDay(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, value.Location())
}

// ParseClock parses a "H:MM:SS" or "HH:MM:SS" time of day and returns the offset
// from midnight.
func ParseClock(raw string) (time.Duration, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, fmt.Errorf("empty time of day")
	}

	parsed, err := time.Parse("15:04:05", value)
	if err != nil {
		return 0, fmt.Errorf("parse time of day %q (expected HH:MM:SS): %w", raw, err)
	}
	return time.Duration(parsed.Hour())*time.Hour +
		time.Duration(parsed.Minute())*time.Minute +
		time.Duration(parsed.Second())*time.Second, nil
}

// ParseClockSerial parses an Excel time cell, a day fraction in [0, 1) where
// "0.5" is noon. Text in HH:MM:SS form is accepted too.
func ParseClockSerial(raw string) (time.Duration, error) {
	value := strings.TrimSpace(raw)
	if strings.Contains(value, ":") {
		return ParseClock(value)
	}

	fraction, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("parse time of day %q: %w", raw, err)
	}
	if fraction < 0 || fraction >= 1 {
		return 0, fmt.Errorf("time of day %q must be a day fraction in [0, 1)", raw)
	}
	seconds := math.Round(fraction * Day.Seconds())
	return time.Duration(seconds) * time.Second % Day, nil
}

// ParseDate parses a "YYYY/MM/DD" date (single-digit month and day allowed, an
// optional " HH:MM:SS" suffix is discarded). The result is midnight in loc.
func ParseDate(raw string, loc *time.Location) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range []string{"2006/1/2", "2006/1/2 15:04:05"} {
		if parsed, err := time.ParseInLocation(layout, value, loc); err == nil {
			return StartOfDay(parsed), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date format: %q (expected YYYY/MM/DD)", raw)
}

// ParseDateSerial parses an Excel date cell given as a serial day number. Text
// accepted by ParseDate is accepted too.
func ParseDateSerial(raw string, loc *time.Location) (time.Time, error) {
	value := strings.TrimSpace(raw)
	serial, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return ParseDate(value, loc)
	}
	if serial < 1 {
		return time.Time{}, fmt.Errorf("date serial %q must be at least 1", raw)
	}
	parsed, err := excelize.ExcelDateToTime(math.Floor(serial), false)
	if err != nil {
		return time.Time{}, fmt.Errorf("convert date serial %q: %w", raw, err)
	}
	return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, loc), nil
}
