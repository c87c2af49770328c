package attendance

import (
	"context"
	"time"
)

// AttendanceRepository is the read-only contract payroll has with the
// attendance-capture subsystem.
type AttendanceRepository interface {
	// ListByEmployeePeriod returns all attendance records whose date falls
	// within [start, end], ordered by date.
	ListByEmployeePeriod(ctx context.Context, employeeID string, start, end time.Time) ([]Attendance, error)
}
