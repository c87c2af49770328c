package response

import (
	"errors"
	"net/http"

	"github.com/workforcehq/payroll-backend-go/internal/domain/employee"
	"github.com/workforcehq/payroll-backend-go/internal/domain/salary"
	"github.com/workforcehq/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Salary domain errors
	case errors.Is(err, salary.ErrSalaryRecordNotFound):
		NotFound(w, "Salary record not found")
	case errors.Is(err, salary.ErrSalaryRecordExists):
		Conflict(w, err.Error())
	case errors.Is(err, salary.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, salary.ErrEmployeeHasNoBasicSalary):
		BadRequest(w, "Employee has no basic salary configured", nil)
	case errors.Is(err, salary.ErrInvalidStatusTransition):
		Conflict(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
