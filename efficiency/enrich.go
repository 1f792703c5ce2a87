package efficiency

import (
	"errors"
	"fmt"

	"shiftstat/shift"
)

var ErrZeroDuration = errors.New("shift has zero worked hours")

// ZeroDurationError reports a shift whose clock values round to no worked time,
// which leaves its efficiency undefined.
type ZeroDurationError struct {
	ShiftID   string
	RowNumber int
}

func (e *ZeroDurationError) Error() string {
	if e.RowNumber > 0 {
		return fmt.Sprintf("row %d: shift %q: %s", e.RowNumber, e.ShiftID, ErrZeroDuration)
	}
	return fmt.Sprintf("shift %q: %s", e.ShiftID, ErrZeroDuration)
}

func (e *ZeroDurationError) Is(target error) bool {
	return target == ErrZeroDuration
}

// Enrich computes worked hours and efficiency for one raw shift.
func Enrich(raw shift.Raw) (shift.Record, error) {
	worked := HoursBetween(raw.ClockIn, raw.ClockOut)
	if worked == 0 {
		return shift.Record{}, &ZeroDurationError{ShiftID: raw.ShiftID, RowNumber: raw.RowNumber}
	}

	return shift.Record{
		Raw:         raw,
		HoursWorked: worked,
		Efficiency:  round(raw.HoursDigitized/worked, 3),
	}, nil
}
