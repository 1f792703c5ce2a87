package shift

import "time"

// Raw is one shift row as read from an input file, before any derived values exist.
type Raw struct {
	RowNumber      int
	ShiftID        string `validate:"required"`
	DateWorked     time.Time
	ClockIn        time.Duration `validate:"gte=0,lt=24h"`
	ClockOut       time.Duration `validate:"gte=0,lt=24h"`
	HoursDigitized float64       `validate:"gte=0"`
	Format         string        `validate:"required"`
	EmployeeID     string        `validate:"required"`
}

// Record is an enriched shift: a Raw row plus worked hours and efficiency.
type Record struct {
	Raw
	HoursWorked float64
	Efficiency  float64
}
