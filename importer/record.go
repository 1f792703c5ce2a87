package importer

import (
	"strings"
)

type Record struct {
	RowNumber int
	Values    map[string]string
	// RawCells marks values read from spreadsheet cells, where dates and times
	// may arrive as Excel serial numbers.
	RawCells bool
}

func (r Record) Get(keys ...string) string {
	for _, key := range keys {
		normalized := normalizeHeader(key)
		if value, ok := r.Values[normalized]; ok {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// Has reports whether any of keys names a column of the record.
func (r Record) Has(keys ...string) bool {
	for _, key := range keys {
		if _, ok := r.Values[normalizeHeader(key)]; ok {
			return true
		}
	}
	return false
}

// IsBlank reports whether every cell of the row is empty.
func (r Record) IsBlank() bool {
	for _, value := range r.Values {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

func normalizeHeader(input string) string {
	trimmed := strings.TrimSpace(strings.ToLower(input))
	trimmed = strings.ReplaceAll(trimmed, "_", "")
	trimmed = strings.ReplaceAll(trimmed, "-", "")
	trimmed = strings.ReplaceAll(trimmed, " ", "")
	return trimmed
}
