package importer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"shiftstat/internal/timeutil"
	"shiftstat/shift"
)

var ErrMissingColumn = errors.New("missing required column")

// column lists the accepted header spellings for one input field. The first
// spelling is the canonical name used in messages.
type column []string

func (c column) name() string {
	return c[0]
}

var (
	columnShiftID        = column{"shift_id", "shift"}
	columnDateWorked     = column{"date_worked", "date"}
	columnClockIn        = column{"clock_in", "start"}
	columnClockOut       = column{"clock_out", "end"}
	columnHoursDigitized = column{"hours_digitized", "digitized"}
	columnFormat         = column{"format", "tape_format"}
	columnEmployeeID     = column{"employee_id", "employee"}
)

// RequiredColumns returns the canonical names of every input column.
func RequiredColumns() []string {
	columns := requiredColumns()
	names := make([]string, 0, len(columns))
	for _, c := range columns {
		names = append(names, c.name())
	}
	return names
}

func requiredColumns() []column {
	return []column{
		columnShiftID,
		columnDateWorked,
		columnClockIn,
		columnClockOut,
		columnHoursDigitized,
		columnFormat,
		columnEmployeeID,
	}
}

// ShiftMapper converts records into raw shifts. Dates are placed in Location,
// time.Local when nil.
type ShiftMapper struct {
	Location *time.Location

	validate *validator.Validate
}

func NewShiftMapper(loc *time.Location) *ShiftMapper {
	if loc == nil {
		loc = time.Local
	}
	return &ShiftMapper{Location: loc, validate: validator.New()}
}

// CheckColumns fails when the record lacks any required column.
func (m *ShiftMapper) CheckColumns(record Record) error {
	missing := make([]string, 0)
	for _, c := range requiredColumns() {
		if !record.Has(c...) {
			missing = append(missing, c.name())
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
}

func (m *ShiftMapper) Map(record Record) (shift.Raw, error) {
	parseDate, parseClock := timeutil.ParseDate, timeutil.ParseClock
	if record.RawCells {
		parseDate, parseClock = timeutil.ParseDateSerial, timeutil.ParseClockSerial
	}

	date, err := parseDate(record.Get(columnDateWorked...), m.Location)
	if err != nil {
		return shift.Raw{}, fmt.Errorf("row %d: %s: %w", record.RowNumber, columnDateWorked.name(), err)
	}

	clockIn, err := parseClock(record.Get(columnClockIn...))
	if err != nil {
		return shift.Raw{}, fmt.Errorf("row %d: %s: %w", record.RowNumber, columnClockIn.name(), err)
	}

	clockOut, err := parseClock(record.Get(columnClockOut...))
	if err != nil {
		return shift.Raw{}, fmt.Errorf("row %d: %s: %w", record.RowNumber, columnClockOut.name(), err)
	}

	digitized, err := parseDecimalHours(record.Get(columnHoursDigitized...))
	if err != nil {
		return shift.Raw{}, fmt.Errorf("row %d: %s: %w", record.RowNumber, columnHoursDigitized.name(), err)
	}

	raw := shift.Raw{
		RowNumber:      record.RowNumber,
		ShiftID:        normalizeIdentifier(record.Get(columnShiftID...)),
		DateWorked:     date,
		ClockIn:        clockIn,
		ClockOut:       clockOut,
		HoursDigitized: digitized,
		Format:         record.Get(columnFormat...),
		EmployeeID:     normalizeIdentifier(record.Get(columnEmployeeID...)),
	}

	if m.validate == nil {
		m.validate = validator.New()
	}
	if err := m.validate.Struct(raw); err != nil {
		return shift.Raw{}, fmt.Errorf("row %d: validation failed: %w", record.RowNumber, err)
	}

	return raw, nil
}
