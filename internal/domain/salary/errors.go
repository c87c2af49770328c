package salary

import "errors"

var (
	ErrSalaryRecordNotFound     = errors.New("salary record not found")
	ErrSalaryRecordExists       = errors.New("salary record already exists for this period")
	ErrEmployeeNotFound         = errors.New("employee not found")
	ErrEmployeeHasNoBasicSalary = errors.New("employee has no basic salary configured")
	ErrInvalidStatusTransition  = errors.New("status transition not allowed")
)
