package employee

import "time"

// Employee is the directory projection the attendance core reads. The
// directory itself is owned elsewhere; this subsystem only consumes it.
type Employee struct {
	ID       string
	FullName string

	// Timezone is the employee's IANA zone, when the directory knows it.
	Timezone *string

	// ShiftStart and ShiftEnd are HH:MM clock strings; empty falls back to
	// the company default shift.
	ShiftStart string
	ShiftEnd   string

	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
