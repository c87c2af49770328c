package leave

import (
	"context"
	"time"
)

// LeaveRepository is the read-only contract payroll has with the
// leave-request workflow.
type LeaveRepository interface {
	// ListApprovedOverlapping returns approved requests that overlap
	// [start, end]: request.StartDate <= end AND request.EndDate >= start.
	ListApprovedOverlapping(ctx context.Context, employeeID string, start, end time.Time) ([]Request, error)
}
