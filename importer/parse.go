package importer

import (
	"fmt"
	"strconv"
	"strings"
)

// parseDecimalHours accepts "6", "6.5" and "6,5".
func parseDecimalHours(raw string) (float64, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return 0, fmt.Errorf("empty hours value")
	}
	if strings.Contains(cleaned, ",") {
		if strings.Contains(cleaned, ".") {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
		}
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}

	hours, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("parse hours %q: %w", raw, err)
	}
	if hours < 0 {
		return 0, fmt.Errorf("hours must not be negative")
	}
	return hours, nil
}

// normalizeIdentifier strips the ".0" suffix Excel leaves on numeric ids read as
// raw cell values.
func normalizeIdentifier(raw string) string {
	value := strings.TrimSpace(raw)
	if number, err := strconv.ParseFloat(value, 64); err == nil && strings.HasSuffix(value, ".0") {
		return strconv.FormatFloat(number, 'f', -1, 64)
	}
	return value
}
