package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is owned by the employee-profile subsystem. Payroll reads it at
// generation time only; later salary changes do not touch generated records.
type Employee struct {
	ID           string
	EmployeeCode string
	FullName     string
	Email        string
	Position     *string
	Department   *string
	BasicSalary  decimal.Decimal
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

type Status string

const (
	StatusActive     Status = "active"
	StatusResigned   Status = "resigned"
	StatusTerminated Status = "terminated"
)
