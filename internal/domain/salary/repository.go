package salary

import (
	"context"
	"time"
)

// SalaryRepository defines data access for generated salary records. The
// storage layer owns the authoritative uniqueness constraint on
// (employee_id, period_start, period_end); Create surfaces its violation as
// ErrSalaryRecordExists.
type SalaryRepository interface {
	Create(ctx context.Context, record Record) (Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (Record, error)
	List(ctx context.Context, filter Filter) ([]Record, int64, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Record, error)
	UpdateStatus(ctx context.Context, id string, status Status, paymentDate *time.Time, notes *string) (Record, error)
	GetStats(ctx context.Context, periodStart, periodEnd *time.Time) (StatsResponse, error)
}
