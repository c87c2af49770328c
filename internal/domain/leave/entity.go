package leave

import (
	"time"
)

// Request is owned by the leave-request workflow. Only approved requests
// participate in payroll; pending and rejected ones are invisible to it.
type Request struct {
	ID         string
	EmployeeID string
	LeaveType  Type
	StartDate  time.Time
	EndDate    time.Time
	TotalDays  float64
	Reason     *string
	Status     RequestStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Type string

const (
	TypeSick   Type = "sick"
	TypeCasual Type = "casual"
	TypeAnnual Type = "annual"
	TypeOther  Type = "other"
)

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)
