package salary

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/workforcehq/payroll-backend-go/internal/pkg/validator"
)

// ========== GENERATION DTOs ==========

type GenerateRequest struct {
	EmployeeID  string  `json:"employee_id"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	CustomLabel *string `json:"custom_label,omitempty"`
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "is required"})
	}
	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== STATUS DTOs ==========

type UpdateStatusRequest struct {
	ID          string  `json:"-"`
	Status      string  `json:"status"`
	PaymentDate *string `json:"payment_date,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Status, Statuses) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of draft, finalized, paid"})
	}
	if r.PaymentDate != nil {
		if _, ok := validator.IsValidDate(*r.PaymentDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "payment_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== LIST DTOs ==========

type Filter struct {
	EmployeeID *string
	// StartDate/EndDate select records whose period overlaps [StartDate, EndDate].
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

// ========== RESPONSES ==========

type PeriodResponse struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Label     string `json:"label"`
}

type LeaveBreakdownResponse struct {
	Approved int `json:"approved"`
	Sick     int `json:"sick"`
	Casual   int `json:"casual"`
	Annual   int `json:"annual"`
	Other    int `json:"other"`
}

type WorkingDaysResponse struct {
	Total   int                    `json:"total"`
	Present int                    `json:"present"`
	HalfDay int                    `json:"half_day"`
	Absent  int                    `json:"absent"`
	Late    int                    `json:"late"`
	Leave   LeaveBreakdownResponse `json:"leave"`
}

type WorkingHoursResponse struct {
	Total   float64 `json:"total"`
	Regular float64 `json:"regular"`
}

type DeductionsResponse struct {
	Leaves   decimal.Decimal `json:"leaves"`
	Absences decimal.Decimal `json:"absences"`
	HalfDays decimal.Decimal `json:"half_days"`
	Late     decimal.Decimal `json:"late"`
	Tax      decimal.Decimal `json:"tax"`
	Other    decimal.Decimal `json:"other"`
	Total    decimal.Decimal `json:"total"`
}

type CalculationsResponse struct {
	BasicPayment decimal.Decimal    `json:"basic_payment"`
	Deductions   DeductionsResponse `json:"deductions"`
	NetSalary    decimal.Decimal    `json:"net_salary"`
}

type RecordResponse struct {
	ID           string               `json:"id"`
	EmployeeID   string               `json:"employee_id"`
	EmployeeName string               `json:"employee_name,omitempty"`
	EmployeeCode string               `json:"employee_code,omitempty"`
	Period       PeriodResponse       `json:"period"`
	BasicSalary  decimal.Decimal      `json:"basic_salary"`
	WorkingDays  WorkingDaysResponse  `json:"working_days"`
	WorkingHours WorkingHoursResponse `json:"working_hours"`
	Calculations CalculationsResponse `json:"calculations"`
	Status       string               `json:"status"`
	PaymentDate  *string              `json:"payment_date,omitempty"`
	Notes        *string              `json:"notes,omitempty"`
	CreatedAt    string               `json:"created_at"`
}

type ListResponse struct {
	Count       int              `json:"count"`
	Total       int64            `json:"total"`
	TotalPages  int              `json:"total_pages"`
	CurrentPage int              `json:"current_page"`
	Data        []RecordResponse `json:"data"`
}

type StatsResponse struct {
	TotalRecords    int             `json:"total_records"`
	DraftCount      int             `json:"draft_count"`
	FinalizedCount  int             `json:"finalized_count"`
	PaidCount       int             `json:"paid_count"`
	TotalBasic      decimal.Decimal `json:"total_basic"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalNetSalary  decimal.Decimal `json:"total_net_salary"`
}
