package employee

import "context"

// EmployeeRepository is the read-only contract payroll has with the
// employee-profile subsystem.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
}
