package salary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/workforcehq/payroll-backend-go/internal/domain/attendance"
	"github.com/workforcehq/payroll-backend-go/internal/domain/employee"
	"github.com/workforcehq/payroll-backend-go/internal/domain/leave"
	"github.com/workforcehq/payroll-backend-go/internal/domain/salary"
	"github.com/workforcehq/payroll-backend-go/internal/pkg/database"
	"github.com/workforcehq/payroll-backend-go/internal/pkg/validator"
)

const regularHoursPerDay = 8.0

type SalaryServiceImpl struct {
	db             *database.DB
	salaryRepo     salary.SalaryRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRepository
	policy         salary.Policy
	transitions    salary.TransitionTable
	isWorkday      salary.WorkdayFunc
}

func NewSalaryService(
	db *database.DB,
	salaryRepo salary.SalaryRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRepository,
	policy salary.Policy,
	transitions salary.TransitionTable,
) salary.SalaryService {
	return &SalaryServiceImpl{
		db:             db,
		salaryRepo:     salaryRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		policy:         policy,
		transitions:    transitions,
		isWorkday:      salary.Weekdays,
	}
}

// Helper to get employee_id from JWT context
func getEmployeeIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", fmt.Errorf("employee_id claim is missing or invalid")
	}

	return employeeID, nil
}

// ========== GENERATION ==========

// Generate runs the whole pipeline for one employee and period: normalize,
// fetch attendance and approved leave, aggregate, infer absences, calculate
// deductions, persist a draft record. No partial state survives a failure;
// the only write is the final insert.
func (s *SalaryServiceImpl) Generate(ctx context.Context, req salary.GenerateRequest) (salary.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.RecordResponse{}, err
	}

	period, err := salary.NormalizePeriod(req.StartDate, req.EndDate, req.CustomLabel)
	if err != nil {
		return salary.RecordResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return salary.RecordResponse{}, salary.ErrEmployeeNotFound
		}
		return salary.RecordResponse{}, fmt.Errorf("failed to load employee: %w", err)
	}
	if emp.BasicSalary.IsZero() {
		return salary.RecordResponse{}, salary.ErrEmployeeHasNoBasicSalary
	}

	// Fast, non-authoritative duplicate rejection with a friendlier message.
	// The unique index on (employee_id, period_start, period_end) remains the
	// real guard against concurrent generation.
	existing, err := s.salaryRepo.GetByEmployeePeriod(ctx, emp.ID, period.StartDate, period.EndDate)
	if err == nil {
		return salary.RecordResponse{}, fmt.Errorf("%w (record %s)", salary.ErrSalaryRecordExists, existing.ID)
	}
	if !errors.Is(err, salary.ErrSalaryRecordNotFound) {
		return salary.RecordResponse{}, fmt.Errorf("failed to check existing salary record: %w", err)
	}

	attendances, err := s.attendanceRepo.ListByEmployeePeriod(ctx, emp.ID, period.StartDate, period.EndDate)
	if err != nil {
		return salary.RecordResponse{}, fmt.Errorf("failed to fetch attendance: %w", err)
	}
	leaves, err := s.leaveRepo.ListApprovedOverlapping(ctx, emp.ID, period.StartDate, period.EndDate)
	if err != nil {
		return salary.RecordResponse{}, fmt.Errorf("failed to fetch approved leave: %w", err)
	}

	attTally := salary.AggregateAttendance(attendances)
	leaveTally := salary.AggregateLeave(leaves, period)
	absentDays := salary.CountAbsences(period, attTally.Days, leaveTally.Days, s.isWorkday)
	calcs := salary.Calculate(emp.BasicSalary, attTally, absentDays, s.policy)

	record := salary.Record{
		EmployeeID:  emp.ID,
		Period:      period,
		BasicSalary: emp.BasicSalary,
		WorkingDays: salary.WorkingDays{
			Total:   period.CalendarDays(),
			Present: attTally.Present,
			HalfDay: attTally.HalfDay,
			Absent:  absentDays,
			Late:    attTally.Late,
			Leave: salary.LeaveBreakdown{
				Approved: leaveTally.Total,
				Sick:     leaveTally.Sick,
				Casual:   leaveTally.Casual,
				Annual:   leaveTally.Annual,
				Other:    leaveTally.Other,
			},
		},
		WorkingHours: salary.WorkingHours{
			Total:   attTally.TotalHours,
			Regular: regularHoursPerDay * float64(len(attTally.Days)),
		},
		Calculations: calcs,
		Status:       salary.StatusDraft,
	}

	created, err := s.salaryRepo.Create(ctx, record)
	if err != nil {
		return salary.RecordResponse{}, err
	}
	created.EmployeeName = &emp.FullName
	created.EmployeeCode = &emp.EmployeeCode

	return mapToRecordResponse(created), nil
}

// ========== READS ==========

func (s *SalaryServiceImpl) GetRecord(ctx context.Context, id string) (salary.RecordResponse, error) {
	if validator.IsEmpty(id) {
		return salary.RecordResponse{}, validator.ValidationErrors{
			{Field: "id", Message: "is required"},
		}
	}

	record, err := s.salaryRepo.GetByID(ctx, id)
	if err != nil {
		return salary.RecordResponse{}, err
	}

	return mapToRecordResponse(record), nil
}

func (s *SalaryServiceImpl) ListRecords(ctx context.Context, filter salary.Filter) (salary.ListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	records, total, err := s.salaryRepo.List(ctx, filter)
	if err != nil {
		return salary.ListResponse{}, err
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return salary.ListResponse{
		Count:       len(records),
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: filter.Page,
		Data:        mapToRecordResponses(records),
	}, nil
}

func (s *SalaryServiceImpl) ListMyRecords(ctx context.Context) ([]salary.RecordResponse, error) {
	employeeID, err := getEmployeeIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.salaryRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	return mapToRecordResponses(records), nil
}

// ========== STATUS ==========

func (s *SalaryServiceImpl) UpdateStatus(ctx context.Context, req salary.UpdateStatusRequest) (salary.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.RecordResponse{}, err
	}

	record, err := s.salaryRepo.GetByID(ctx, req.ID)
	if err != nil {
		return salary.RecordResponse{}, err
	}

	next := salary.Status(req.Status)
	if !s.transitions.CanMove(record.Status, next) {
		return salary.RecordResponse{}, fmt.Errorf("%w: %s -> %s", salary.ErrInvalidStatusTransition, record.Status, next)
	}

	// payment_date only attaches on the move to paid; it defaults to now.
	var paymentDate *time.Time
	if next == salary.StatusPaid {
		if req.PaymentDate != nil {
			parsed, _ := validator.IsValidDate(*req.PaymentDate)
			paymentDate = &parsed
		} else if record.PaymentDate == nil {
			now := time.Now().UTC()
			paymentDate = &now
		}
	}

	updated, err := s.salaryRepo.UpdateStatus(ctx, req.ID, next, paymentDate, req.Notes)
	if err != nil {
		return salary.RecordResponse{}, err
	}

	return mapToRecordResponse(updated), nil
}

// ========== STATS ==========

func (s *SalaryServiceImpl) GetStats(ctx context.Context, startDate, endDate *string) (salary.StatsResponse, error) {
	var errs validator.ValidationErrors
	var start, end *time.Time

	if startDate != nil {
		parsed, ok := validator.IsValidDate(*startDate)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
		} else {
			start = &parsed
		}
	}
	if endDate != nil {
		parsed, ok := validator.IsValidDate(*endDate)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
		} else {
			e := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 23, 59, 59, int(999*time.Millisecond), time.UTC)
			end = &e
		}
	}
	if len(errs) > 0 {
		return salary.StatsResponse{}, errs
	}

	return s.salaryRepo.GetStats(ctx, start, end)
}

// ========== HELPERS ==========

func mapToRecordResponse(r salary.Record) salary.RecordResponse {
	var paymentDateStr *string
	if r.PaymentDate != nil {
		str := r.PaymentDate.Format("2006-01-02")
		paymentDateStr = &str
	}

	employeeName := ""
	employeeCode := ""
	if r.EmployeeName != nil {
		employeeName = *r.EmployeeName
	}
	if r.EmployeeCode != nil {
		employeeCode = *r.EmployeeCode
	}

	return salary.RecordResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: employeeName,
		EmployeeCode: employeeCode,
		Period: salary.PeriodResponse{
			StartDate: r.Period.StartDate.Format(time.RFC3339),
			EndDate:   r.Period.EndDate.Format(time.RFC3339),
			Label:     r.Period.Label,
		},
		BasicSalary: r.BasicSalary,
		WorkingDays: salary.WorkingDaysResponse{
			Total:   r.WorkingDays.Total,
			Present: r.WorkingDays.Present,
			HalfDay: r.WorkingDays.HalfDay,
			Absent:  r.WorkingDays.Absent,
			Late:    r.WorkingDays.Late,
			Leave: salary.LeaveBreakdownResponse{
				Approved: r.WorkingDays.Leave.Approved,
				Sick:     r.WorkingDays.Leave.Sick,
				Casual:   r.WorkingDays.Leave.Casual,
				Annual:   r.WorkingDays.Leave.Annual,
				Other:    r.WorkingDays.Leave.Other,
			},
		},
		WorkingHours: salary.WorkingHoursResponse{
			Total:   r.WorkingHours.Total,
			Regular: r.WorkingHours.Regular,
		},
		Calculations: salary.CalculationsResponse{
			BasicPayment: r.Calculations.BasicPayment,
			Deductions: salary.DeductionsResponse{
				Leaves:   r.Calculations.Deductions.Leaves,
				Absences: r.Calculations.Deductions.Absences,
				HalfDays: r.Calculations.Deductions.HalfDays,
				Late:     r.Calculations.Deductions.Late,
				Tax:      r.Calculations.Deductions.Tax,
				Other:    r.Calculations.Deductions.Other,
				Total:    r.Calculations.Deductions.Total,
			},
			NetSalary: r.Calculations.NetSalary,
		},
		Status:      string(r.Status),
		PaymentDate: paymentDateStr,
		Notes:       r.Notes,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	}
}

func mapToRecordResponses(records []salary.Record) []salary.RecordResponse {
	result := make([]salary.RecordResponse, 0, len(records))
	for _, r := range records {
		result = append(result, mapToRecordResponse(r))
	}
	return result
}
