package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

// LeaveBreakdown counts approved leave days inside the period by type.
// Approved is the aggregate of the four buckets.
type LeaveBreakdown struct {
	Approved int
	Sick     int
	Casual   int
	Annual   int
	Other    int
}

// WorkingDays is the day tally of a generated record. Total is the full
// calendar span of the period including weekends; Absent counts weekdays
// with neither attendance nor approved leave.
type WorkingDays struct {
	Total   int
	Present int
	HalfDay int
	Absent  int
	Late    int
	Leave   LeaveBreakdown
}

// WorkingHours is the hour tally. Total accumulates actual check-in to
// check-out spans; Regular is the 8-hour baseline for each day that has an
// attendance record.
type WorkingHours struct {
	Total   float64
	Regular float64
}

// Record is a generated salary record. (EmployeeID, Period.StartDate,
// Period.EndDate) is a uniqueness key. BasicSalary is a snapshot of the
// employee's rate at generation time; it and every computed field are frozen
// once created. Only Status, PaymentDate, and Notes change afterwards.
type Record struct {
	ID           string
	EmployeeID   string
	Period       Period
	BasicSalary  decimal.Decimal
	WorkingDays  WorkingDays
	WorkingHours WorkingHours
	Calculations Calculations
	Status       Status
	PaymentDate  *time.Time
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}
