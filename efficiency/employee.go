package efficiency

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"shiftstat/shift"
)

const DefaultWindow = 30

var ErrNoShifts = errors.New("employee has no shifts")

var whitespaceRun = regexp.MustCompile(`\s+`)

// DateEntry is one row of the recent-window view.
type DateEntry struct {
	DateWorked     time.Time
	HoursDigitized float64
	HoursWorked    float64
	Efficiency     float64
}

// FormatEntry is one row of the format breakdown.
type FormatEntry struct {
	Format         string
	Efficiency     float64
	SampleSize     int
	HoursDigitized float64
	HoursWorked    float64
}

// Employee holds the enriched shifts of one person. It is not modified after
// NewEmployee returns.
type Employee struct {
	name              string
	records           []shift.Record
	totalDigitized    float64
	totalWorked       float64
	overallEfficiency float64
}

// NewEmployee enriches every raw row in input order. The first row that cannot
// be enriched fails the whole employee.
func NewEmployee(name string, raws []shift.Raw) (*Employee, error) {
	normalized := NormalizeName(name)
	if normalized == "" {
		return nil, fmt.Errorf("employee name is required")
	}
	if len(raws) == 0 {
		return nil, fmt.Errorf("%s: %w", normalized, ErrNoShifts)
	}

	emp := &Employee{
		name:    normalized,
		records: make([]shift.Record, 0, len(raws)),
	}
	for _, raw := range raws {
		record, err := Enrich(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", normalized, err)
		}
		emp.records = append(emp.records, record)
		emp.totalDigitized += record.HoursDigitized
		emp.totalWorked += record.HoursWorked
	}
	emp.overallEfficiency = round(emp.totalDigitized/emp.totalWorked, 3)

	return emp, nil
}

// NormalizeName trims a display name and replaces whitespace runs with "_".
func NormalizeName(name string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(name), "_")
}

func (e *Employee) Name() string {
	return e.name
}

// EmployeeID returns the employee_id of the first shift.
func (e *Employee) EmployeeID() string {
	return e.records[0].EmployeeID
}

func (e *Employee) OverallEfficiency() float64 {
	return e.overallEfficiency
}

func (e *Employee) TotalDigitized() float64 {
	return round(e.totalDigitized, 3)
}

func (e *Employee) TotalWorked() float64 {
	return round(e.totalWorked, 1)
}

// Records returns a copy of the enriched shifts in input order.
func (e *Employee) Records() []shift.Record {
	out := make([]shift.Record, len(e.records))
	copy(out, e.records)
	return out
}

// Preview returns up to n shifts from the start of the input.
func (e *Employee) Preview(n int) []shift.Record {
	if n <= 0 || n > len(e.records) {
		n = len(e.records)
	}
	return e.Records()[:n]
}

// RecentWindow sorts shifts by date and returns the last n. Shifts on the same
// date keep their input order. A non-positive n returns every shift.
func (e *Employee) RecentWindow(n int) []DateEntry {
	sorted := e.Records()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DateWorked.Before(sorted[j].DateWorked)
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[len(sorted)-n:]
	}

	entries := make([]DateEntry, 0, len(sorted))
	for _, record := range sorted {
		entries = append(entries, DateEntry{
			DateWorked:     record.DateWorked,
			HoursDigitized: record.HoursDigitized,
			HoursWorked:    record.HoursWorked,
			Efficiency:     record.Efficiency,
		})
	}
	return entries
}

// FormatBreakdown groups shifts by format. Each group's efficiency is its own
// digitized total over its own worked total. Groups are ordered by efficiency
// descending, then by format name.
func (e *Employee) FormatBreakdown() []FormatEntry {
	byFormat := make(map[string]*FormatEntry)
	for _, record := range e.records {
		entry, ok := byFormat[record.Format]
		if !ok {
			entry = &FormatEntry{Format: record.Format}
			byFormat[record.Format] = entry
		}
		entry.SampleSize++
		entry.HoursDigitized += record.HoursDigitized
		entry.HoursWorked += record.HoursWorked
	}

	entries := make([]FormatEntry, 0, len(byFormat))
	for _, entry := range byFormat {
		entry.Efficiency = round(entry.HoursDigitized/entry.HoursWorked, 3)
		entries = append(entries, *entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Efficiency != entries[j].Efficiency {
			return entries[i].Efficiency > entries[j].Efficiency
		}
		return entries[i].Format < entries[j].Format
	})
	return entries
}
