package salary

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workforcehq/payroll-backend-go/internal/domain/attendance"
	"github.com/workforcehq/payroll-backend-go/internal/domain/employee"
	"github.com/workforcehq/payroll-backend-go/internal/domain/leave"
	"github.com/workforcehq/payroll-backend-go/internal/domain/salary"
)

// ========== IN-MEMORY FAKES ==========

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

type fakeAttendanceRepo struct {
	records []attendance.Attendance
}

func (f *fakeAttendanceRepo) ListByEmployeePeriod(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && !rec.Date.Before(start) && !rec.Date.After(end) {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeLeaveRepo struct {
	requests []leave.Request
}

func (f *fakeLeaveRepo) ListApprovedOverlapping(ctx context.Context, employeeID string, start, end time.Time) ([]leave.Request, error) {
	var out []leave.Request
	for _, req := range f.requests {
		if req.EmployeeID == employeeID && req.Status == leave.RequestStatusApproved &&
			!req.StartDate.After(end) && !req.EndDate.Before(start) {
			out = append(out, req)
		}
	}
	return out, nil
}

type fakeSalaryRepo struct {
	records map[string]salary.Record
	seq     int
}

func newFakeSalaryRepo() *fakeSalaryRepo {
	return &fakeSalaryRepo{records: make(map[string]salary.Record)}
}

func (f *fakeSalaryRepo) Create(ctx context.Context, record salary.Record) (salary.Record, error) {
	for _, existing := range f.records {
		if existing.EmployeeID == record.EmployeeID &&
			existing.Period.StartDate.Equal(record.Period.StartDate) &&
			existing.Period.EndDate.Equal(record.Period.EndDate) {
			return salary.Record{}, salary.ErrSalaryRecordExists
		}
	}
	f.seq++
	record.ID = fmt.Sprintf("rec-%d", f.seq)
	record.CreatedAt = time.Now().UTC()
	record.UpdatedAt = record.CreatedAt
	f.records[record.ID] = record
	return record, nil
}

func (f *fakeSalaryRepo) GetByID(ctx context.Context, id string) (salary.Record, error) {
	rec, ok := f.records[id]
	if !ok {
		return salary.Record{}, salary.ErrSalaryRecordNotFound
	}
	return rec, nil
}

func (f *fakeSalaryRepo) GetByEmployeePeriod(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (salary.Record, error) {
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID &&
			rec.Period.StartDate.Equal(periodStart) &&
			rec.Period.EndDate.Equal(periodEnd) {
			return rec, nil
		}
	}
	return salary.Record{}, salary.ErrSalaryRecordNotFound
}

func (f *fakeSalaryRepo) List(ctx context.Context, filter salary.Filter) ([]salary.Record, int64, error) {
	var matched []salary.Record
	for _, rec := range f.records {
		if filter.EmployeeID != nil && rec.EmployeeID != *filter.EmployeeID {
			continue
		}
		matched = append(matched, rec)
	}
	total := int64(len(matched))

	offset := (filter.Page - 1) * filter.Limit
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (f *fakeSalaryRepo) ListByEmployee(ctx context.Context, employeeID string) ([]salary.Record, error) {
	var out []salary.Record
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeSalaryRepo) UpdateStatus(ctx context.Context, id string, status salary.Status, paymentDate *time.Time, notes *string) (salary.Record, error) {
	rec, ok := f.records[id]
	if !ok {
		return salary.Record{}, salary.ErrSalaryRecordNotFound
	}
	rec.Status = status
	if paymentDate != nil {
		rec.PaymentDate = paymentDate
	}
	if notes != nil {
		rec.Notes = notes
	}
	rec.UpdatedAt = time.Now().UTC()
	f.records[id] = rec
	return rec, nil
}

func (f *fakeSalaryRepo) GetStats(ctx context.Context, periodStart, periodEnd *time.Time) (salary.StatsResponse, error) {
	stats := salary.StatsResponse{
		TotalBasic:      decimal.Zero,
		TotalDeductions: decimal.Zero,
		TotalNetSalary:  decimal.Zero,
	}
	for _, rec := range f.records {
		stats.TotalRecords++
		switch rec.Status {
		case salary.StatusDraft:
			stats.DraftCount++
		case salary.StatusFinalized:
			stats.FinalizedCount++
		case salary.StatusPaid:
			stats.PaidCount++
		}
		stats.TotalBasic = stats.TotalBasic.Add(rec.BasicSalary)
		stats.TotalDeductions = stats.TotalDeductions.Add(rec.Calculations.Deductions.Total)
		stats.TotalNetSalary = stats.TotalNetSalary.Add(rec.Calculations.NetSalary)
	}
	return stats, nil
}

// ========== TEST SETUP ==========

const testEmployeeID = "emp-1"

func timePtr(t time.Time) *time.Time { return &t }

func newTestEmployee(basicSalary int64) employee.Employee {
	return employee.Employee{
		ID:           testEmployeeID,
		EmployeeCode: "EMP001",
		FullName:     "Ada Wong",
		Email:        "ada@example.com",
		BasicSalary:  decimal.NewFromInt(basicSalary),
		Status:       employee.StatusActive,
	}
}

type testFixture struct {
	salaryRepo *fakeSalaryRepo
	service    salary.SalaryService
}

func newTestService(emp employee.Employee, attendances []attendance.Attendance, leaves []leave.Request, transitions salary.TransitionTable) testFixture {
	salaryRepo := newFakeSalaryRepo()
	svc := NewSalaryService(
		nil,
		salaryRepo,
		&fakeEmployeeRepo{employees: map[string]employee.Employee{emp.ID: emp}},
		&fakeAttendanceRepo{records: attendances},
		&fakeLeaveRepo{requests: leaves},
		salary.DefaultPolicy,
		transitions,
	)
	return testFixture{salaryRepo: salaryRepo, service: svc}
}

func attOn(y int, m time.Month, d int, status attendance.Status, hours int) attendance.Attendance {
	date := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	in := time.Date(y, m, d, 9, 0, 0, 0, time.UTC)
	out := in.Add(time.Duration(hours) * time.Hour)
	return attendance.Attendance{
		EmployeeID:   testEmployeeID,
		Date:         date,
		Status:       status,
		CheckInTime:  timePtr(in),
		CheckOutTime: timePtr(out),
	}
}

// ========== GENERATION ==========

func TestSalaryService_Generate_Success(t *testing.T) {
	ctx := context.Background()

	// Mon Mar 3 - Fri Mar 7 2025: two present, one late, one sick day, one
	// day with nothing at all.
	attendances := []attendance.Attendance{
		attOn(2025, 3, 3, attendance.StatusPresent, 8),
		attOn(2025, 3, 4, attendance.StatusPresent, 8),
		attOn(2025, 3, 5, attendance.StatusLate, 8),
	}
	leaves := []leave.Request{
		{
			EmployeeID: testEmployeeID,
			LeaveType:  leave.TypeSick,
			StartDate:  time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC),
			Status:     leave.RequestStatusApproved,
		},
	}

	fx := newTestService(newTestEmployee(60000), attendances, leaves, salary.DefaultTransitions)

	result, err := fx.service.Generate(ctx, salary.GenerateRequest{
		EmployeeID: testEmployeeID,
		StartDate:  "2025-03-03",
		EndDate:    "2025-03-07",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.ID)
	assert.Equal(t, testEmployeeID, result.EmployeeID)
	assert.Equal(t, "Ada Wong", result.EmployeeName)
	assert.Equal(t, "EMP001", result.EmployeeCode)
	assert.Equal(t, "Mar 03, 2025 - Mar 07, 2025", result.Period.Label)
	assert.Equal(t, string(salary.StatusDraft), result.Status)
	assert.Nil(t, result.PaymentDate)

	assert.Equal(t, 5, result.WorkingDays.Total)
	assert.Equal(t, 2, result.WorkingDays.Present)
	assert.Equal(t, 1, result.WorkingDays.Late)
	assert.Equal(t, 0, result.WorkingDays.HalfDay)
	assert.Equal(t, 1, result.WorkingDays.Absent)
	assert.Equal(t, 1, result.WorkingDays.Leave.Approved)
	assert.Equal(t, 1, result.WorkingDays.Leave.Sick)

	assert.InDelta(t, 24, result.WorkingHours.Total, 1e-9)
	assert.InDelta(t, 24, result.WorkingHours.Regular, 1e-9)

	// dailyRate 2000: one absence 2000, one late 500, tax 3000.
	assert.True(t, decimal.NewFromInt(2000).Equal(result.Calculations.Deductions.Absences))
	assert.True(t, decimal.NewFromInt(500).Equal(result.Calculations.Deductions.Late))
	assert.True(t, decimal.NewFromInt(3000).Equal(result.Calculations.Deductions.Tax))
	assert.True(t, result.Calculations.Deductions.Leaves.IsZero())
	assert.True(t, decimal.NewFromInt(5500).Equal(result.Calculations.Deductions.Total))
	assert.True(t, decimal.NewFromInt(54500).Equal(result.Calculations.NetSalary))
}

func TestSalaryService_Generate_MissingFields(t *testing.T) {
	fx := newTestService(newTestEmployee(60000), nil, nil, salary.DefaultTransitions)

	_, err := fx.service.Generate(context.Background(), salary.GenerateRequest{})

	assert.Error(t, err)
}

func TestSalaryService_Generate_EmployeeNotFound(t *testing.T) {
	fx := newTestService(newTestEmployee(60000), nil, nil, salary.DefaultTransitions)

	_, err := fx.service.Generate(context.Background(), salary.GenerateRequest{
		EmployeeID: "missing",
		StartDate:  "2025-03-01",
		EndDate:    "2025-03-31",
	})

	assert.ErrorIs(t, err, salary.ErrEmployeeNotFound)
}

func TestSalaryService_Generate_NoBasicSalary(t *testing.T) {
	fx := newTestService(newTestEmployee(0), nil, nil, salary.DefaultTransitions)

	_, err := fx.service.Generate(context.Background(), salary.GenerateRequest{
		EmployeeID: testEmployeeID,
		StartDate:  "2025-03-01",
		EndDate:    "2025-03-31",
	})

	assert.ErrorIs(t, err, salary.ErrEmployeeHasNoBasicSalary)
}

func TestSalaryService_Generate_Duplicate(t *testing.T) {
	ctx := context.Background()
	fx := newTestService(newTestEmployee(60000), nil, nil, salary.DefaultTransitions)

	req := salary.GenerateRequest{
		EmployeeID: testEmployeeID,
		StartDate:  "2025-03-01",
		EndDate:    "2025-03-31",
	}

	first, err := fx.service.Generate(ctx, req)
	require.NoError(t, err)

	_, err = fx.service.Generate(ctx, req)
	assert.ErrorIs(t, err, salary.ErrSalaryRecordExists)
	assert.Contains(t, err.Error(), first.ID)
}

func TestSalaryService_Generate_NoAttendanceNoLeave(t *testing.T) {
	ctx := context.Background()
	// Mon Mar 3 - Fri Mar 7, fully unexplained.
	fx := newTestService(newTestEmployee(60000), nil, nil, salary.DefaultTransitions)

	result, err := fx.service.Generate(ctx, salary.GenerateRequest{
		EmployeeID: testEmployeeID,
		StartDate:  "2025-03-03",
		EndDate:    "2025-03-07",
	})

	require.NoError(t, err)
	assert.Equal(t, 5, result.WorkingDays.Absent)
	// 5 absences at 2000 plus tax 3000.
	assert.True(t, decimal.NewFromInt(47000).Equal(result.Calculations.NetSalary))
}

func TestSalaryService_Generate_WeekendOnlyPeriod(t *testing.T) {
	ctx := context.Background()
	// Sat Mar 8 - Sun Mar 9: no workdays, so no absences and only tax.
	fx := newTestService(newTestEmployee(60000), nil, nil, salary.DefaultTransitions)

	result, err := fx.service.Generate(ctx, salary.GenerateRequest{
		EmployeeID: testEmployeeID,
		StartDate:  "2025-03-08",
		EndDate:    "2025-03-09",
	})

	require.NoError(t, err)
	assert.Equal(t, 2, result.WorkingDays.Total)
	assert.Equal(t, 0, result.WorkingDays.Absent)
	assert.True(t, decimal.NewFromInt(57000).Equal(result.Calculations.NetSalary))
}

// ========== READS ==========

func TestSalaryService_GetRecord_Success(t *testing.T) {
	ctx := context.Background()
	fx := newTestService(newTestEmployee(60000), nil, nil, salary.DefaultTransitions)

	created, err := fx.service.Generate(ctx, salary.GenerateRequest{
		EmployeeID: testEmployeeID,
		StartDate:  "2025-03-01",
		EndDate:    "2025-03-31",
	})
	require.NoError(t, err)

	result, err := fx.service.GetRecord(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, result.ID)
}

func TestSalaryService_GetRecord_NotFound(t *testing.T) {
	fx := newTestService(newTestEmployee(60000), nil, nil, salary.DefaultTransitions)

	_, err := fx.service.GetRecord(context.Background(), "missing")

	assert.ErrorIs(t, err, salary.ErrSalaryRecordNotFound)
}

func TestSalaryService_GetRecord_EmptyID(t *testing.T) {
	fx := newTestService(newTestEmployee(60000), nil, nil, salary.DefaultTransitions)

	_, err := fx.service.GetRecord(context.Background(), "")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, salary.ErrSalaryRecordNotFound)
}

func TestSalaryService_ListRecords_Pagination(t *testing.T) {
	ctx := context.Background()
	fx := newTestService(newTestEmployee(60000), nil, nil, salary.DefaultTransitions)

	for month := 1; month <= 3; month++ {
		_, err := fx.service.Generate(ctx, salary.GenerateRequest{
			EmployeeID: testEmployeeID,
			StartDate:  fmt.Sprintf("2025-%02d-01", month),
			EndDate:    fmt.Sprintf("2025-%02d-28", month),
		})
		require.NoError(t, err)
	}

	result, err := fx.service.ListRecords(ctx, salary.Filter{Page: 1, Limit: 2})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, int64(3), result.Total)
	assert.Equal(t, 2, result.TotalPages)
	assert.Equal(t, 1, result.CurrentPage)
}

func TestSalaryService_ListRecords_DefaultsApplied(t *testing.T) {
	fx := newTestService(newTestEmployee(60000), nil, nil, salary.DefaultTransitions)

	result, err := fx.service.ListRecords(context.Background(), salary.Filter{})

	require.NoError(t, err)
	assert.Equal(t, 1, result.CurrentPage)
	assert.Zero(t, result.Total)
}

func TestSalaryService_ListMyRecords(t *testing.T) {
	ctx := context.Background()
	fx := newTestService(newTestEmployee(60000), nil, nil, salary.DefaultTransitions)

	_, err := fx.service.Generate(ctx, salary.GenerateRequest{
		EmployeeID: testEmployeeID,
		StartDate:  "2025-03-01",
		EndDate:    "2025-03-31",
	})
	require.NoError(t, err)

	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{"employee_id": testEmployeeID})
	require.NoError(t, err)
	authedCtx := jwtauth.NewContext(ctx, token, nil)

	records, err := fx.service.ListMyRecords(authedCtx)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, testEmployeeID, records[0].EmployeeID)
}

func TestSalaryService_ListMyRecords_MissingClaim(t *testing.T) {
	fx := newTestService(newTestEmployee(60000), nil, nil, salary.DefaultTransitions)

	_, err := fx.service.ListMyRecords(context.Background())

	assert.Error(t, err)
}

// ========== STATUS ==========

func generateDraft(t *testing.T, fx testFixture) salary.RecordResponse {
	t.Helper()
	created, err := fx.service.Generate(context.Background(), salary.GenerateRequest{
		EmployeeID: testEmployeeID,
		StartDate:  "2025-03-01",
		EndDate:    "2025-03-31",
	})
	require.NoError(t, err)
	return created
}

func TestSalaryService_UpdateStatus_DraftToFinalized(t *testing.T) {
	fx := newTestService(newTestEmployee(60000), nil, nil, salary.DefaultTransitions)
	created := generateDraft(t, fx)

	result, err := fx.service.UpdateStatus(context.Background(), salary.UpdateStatusRequest{
		ID:     created.ID,
		Status: "finalized",
	})

	require.NoError(t, err)
	assert.Equal(t, "finalized", result.Status)
	assert.Nil(t, result.PaymentDate)
}

func TestSalaryService_UpdateStatus_SkippingFinalizedRejected(t *testing.T) {
	fx := newTestService(newTestEmployee(60000), nil, nil, salary.DefaultTransitions)
	created := generateDraft(t, fx)

	_, err := fx.service.UpdateStatus(context.Background(), salary.UpdateStatusRequest{
		ID:     created.ID,
		Status: "paid",
	})

	assert.ErrorIs(t, err, salary.ErrInvalidStatusTransition)
}

func TestSalaryService_UpdateStatus_PaidSetsPaymentDate(t *testing.T) {
	ctx := context.Background()
	fx := newTestService(newTestEmployee(60000), nil, nil, salary.DefaultTransitions)
	created := generateDraft(t, fx)

	_, err := fx.service.UpdateStatus(ctx, salary.UpdateStatusRequest{ID: created.ID, Status: "finalized"})
	require.NoError(t, err)

	result, err := fx.service.UpdateStatus(ctx, salary.UpdateStatusRequest{ID: created.ID, Status: "paid"})

	require.NoError(t, err)
	assert.Equal(t, "paid", result.Status)
	require.NotNil(t, result.PaymentDate)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), *result.PaymentDate)
}

func TestSalaryService_UpdateStatus_ExplicitPaymentDate(t *testing.T) {
	ctx := context.Background()
	fx := newTestService(newTestEmployee(60000), nil, nil, salary.DefaultTransitions)
	created := generateDraft(t, fx)

	_, err := fx.service.UpdateStatus(ctx, salary.UpdateStatusRequest{ID: created.ID, Status: "finalized"})
	require.NoError(t, err)

	paymentDate := "2025-04-05"
	result, err := fx.service.UpdateStatus(ctx, salary.UpdateStatusRequest{
		ID:          created.ID,
		Status:      "paid",
		PaymentDate: &paymentDate,
	})

	require.NoError(t, err)
	require.NotNil(t, result.PaymentDate)
	assert.Equal(t, "2025-04-05", *result.PaymentDate)
}

func TestSalaryService_UpdateStatus_InvalidStatusValue(t *testing.T) {
	fx := newTestService(newTestEmployee(60000), nil, nil, salary.DefaultTransitions)
	created := generateDraft(t, fx)

	_, err := fx.service.UpdateStatus(context.Background(), salary.UpdateStatusRequest{
		ID:     created.ID,
		Status: "archived",
	})

	assert.Error(t, err)
	assert.NotErrorIs(t, err, salary.ErrInvalidStatusTransition)
}

func TestSalaryService_UpdateStatus_AllowAllPermitsBackwardMove(t *testing.T) {
	ctx := context.Background()
	fx := newTestService(newTestEmployee(60000), nil, nil, salary.AllowAllTransitions)
	created := generateDraft(t, fx)

	_, err := fx.service.UpdateStatus(ctx, salary.UpdateStatusRequest{ID: created.ID, Status: "paid"})
	require.NoError(t, err)

	result, err := fx.service.UpdateStatus(ctx, salary.UpdateStatusRequest{ID: created.ID, Status: "draft"})

	require.NoError(t, err)
	assert.Equal(t, "draft", result.Status)
}

func TestSalaryService_UpdateStatus_NotesWithoutLifecycleChange(t *testing.T) {
	fx := newTestService(newTestEmployee(60000), nil, nil, salary.DefaultTransitions)
	created := generateDraft(t, fx)

	notes := "pending review"
	result, err := fx.service.UpdateStatus(context.Background(), salary.UpdateStatusRequest{
		ID:     created.ID,
		Status: "draft",
		Notes:  &notes,
	})

	require.NoError(t, err)
	assert.Equal(t, "draft", result.Status)
	require.NotNil(t, result.Notes)
	assert.Equal(t, "pending review", *result.Notes)
}

// ========== STATS ==========

func TestSalaryService_GetStats(t *testing.T) {
	ctx := context.Background()
	fx := newTestService(newTestEmployee(60000), nil, nil, salary.DefaultTransitions)
	created := generateDraft(t, fx)

	_, err := fx.service.Generate(ctx, salary.GenerateRequest{
		EmployeeID: testEmployeeID,
		StartDate:  "2025-04-01",
		EndDate:    "2025-04-30",
	})
	require.NoError(t, err)

	_, err = fx.service.UpdateStatus(ctx, salary.UpdateStatusRequest{ID: created.ID, Status: "finalized"})
	require.NoError(t, err)

	stats, err := fx.service.GetStats(ctx, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalRecords)
	assert.Equal(t, 1, stats.DraftCount)
	assert.Equal(t, 1, stats.FinalizedCount)
	assert.Equal(t, 0, stats.PaidCount)
	assert.True(t, decimal.NewFromInt(120000).Equal(stats.TotalBasic))
}

func TestSalaryService_GetStats_InvalidDate(t *testing.T) {
	fx := newTestService(newTestEmployee(60000), nil, nil, salary.DefaultTransitions)

	bad := "not-a-date"
	_, err := fx.service.GetStats(context.Background(), &bad, nil)

	assert.Error(t, err)
}
