package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/workforcehq/payroll-backend-go/internal/domain/salary"
	"github.com/workforcehq/payroll-backend-go/internal/pkg/database"
)

type salaryRepository struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) salary.SalaryRepository {
	return &salaryRepository{db: db}
}

const salaryRecordColumns = `
	s.id, s.employee_id, s.period_start, s.period_end, s.period_label,
	s.basic_salary,
	s.working_days_total, s.present_days, s.half_days, s.absent_days, s.late_days,
	s.leave_days_approved, s.leave_days_sick, s.leave_days_casual, s.leave_days_annual, s.leave_days_other,
	s.hours_total, s.hours_regular,
	s.basic_payment,
	s.deduction_leaves, s.deduction_absences, s.deduction_half_days, s.deduction_late,
	s.deduction_tax, s.deduction_other, s.deduction_total,
	s.net_salary,
	s.status, s.payment_date, s.notes, s.created_at, s.updated_at,
	e.full_name, e.employee_code`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSalaryRecord(row rowScanner) (salary.Record, error) {
	var rec salary.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Period.StartDate, &rec.Period.EndDate, &rec.Period.Label,
		&rec.BasicSalary,
		&rec.WorkingDays.Total, &rec.WorkingDays.Present, &rec.WorkingDays.HalfDay, &rec.WorkingDays.Absent, &rec.WorkingDays.Late,
		&rec.WorkingDays.Leave.Approved, &rec.WorkingDays.Leave.Sick, &rec.WorkingDays.Leave.Casual, &rec.WorkingDays.Leave.Annual, &rec.WorkingDays.Leave.Other,
		&rec.WorkingHours.Total, &rec.WorkingHours.Regular,
		&rec.Calculations.BasicPayment,
		&rec.Calculations.Deductions.Leaves, &rec.Calculations.Deductions.Absences, &rec.Calculations.Deductions.HalfDays, &rec.Calculations.Deductions.Late,
		&rec.Calculations.Deductions.Tax, &rec.Calculations.Deductions.Other, &rec.Calculations.Deductions.Total,
		&rec.Calculations.NetSalary,
		&rec.Status, &rec.PaymentDate, &rec.Notes, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName, &rec.EmployeeCode,
	)
	return rec, err
}

// Create implements salary.SalaryRepository. A violation of the
// uk_salary_records_employee_period unique index is reported as
// ErrSalaryRecordExists so the constraint stays the authoritative duplicate
// guard.
func (r *salaryRepository) Create(ctx context.Context, record salary.Record) (salary.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_records (
			id, employee_id, period_start, period_end, period_label,
			basic_salary,
			working_days_total, present_days, half_days, absent_days, late_days,
			leave_days_approved, leave_days_sick, leave_days_casual, leave_days_annual, leave_days_other,
			hours_total, hours_regular,
			basic_payment,
			deduction_leaves, deduction_absences, deduction_half_days, deduction_late,
			deduction_tax, deduction_other, deduction_total,
			net_salary,
			status, payment_date, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30
		) RETURNING id, created_at, updated_at
	`

	record.ID = uuid.New().String()
	err := q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.Period.StartDate, record.Period.EndDate, record.Period.Label,
		record.BasicSalary,
		record.WorkingDays.Total, record.WorkingDays.Present, record.WorkingDays.HalfDay, record.WorkingDays.Absent, record.WorkingDays.Late,
		record.WorkingDays.Leave.Approved, record.WorkingDays.Leave.Sick, record.WorkingDays.Leave.Casual, record.WorkingDays.Leave.Annual, record.WorkingDays.Leave.Other,
		record.WorkingHours.Total, record.WorkingHours.Regular,
		record.Calculations.BasicPayment,
		record.Calculations.Deductions.Leaves, record.Calculations.Deductions.Absences, record.Calculations.Deductions.HalfDays, record.Calculations.Deductions.Late,
		record.Calculations.Deductions.Tax, record.Calculations.Deductions.Other, record.Calculations.Deductions.Total,
		record.Calculations.NetSalary,
		record.Status, record.PaymentDate, record.Notes,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "uk_salary_records_employee_period") {
			return salary.Record{}, salary.ErrSalaryRecordExists
		}
		return salary.Record{}, fmt.Errorf("failed to create salary record: %w", err)
	}

	return record, nil
}

// GetByID implements salary.SalaryRepository.
func (r *salaryRepository) GetByID(ctx context.Context, id string) (salary.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryRecordColumns + `
		FROM salary_records s
		JOIN employees e ON e.id = s.employee_id
		WHERE s.id = $1
	`

	rec, err := scanSalaryRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.Record{}, salary.ErrSalaryRecordNotFound
		}
		return salary.Record{}, fmt.Errorf("failed to get salary record: %w", err)
	}

	return rec, nil
}

// GetByEmployeePeriod implements salary.SalaryRepository. The match is on
// the exact normalized period boundaries, not on overlap.
func (r *salaryRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (salary.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryRecordColumns + `
		FROM salary_records s
		JOIN employees e ON e.id = s.employee_id
		WHERE s.employee_id = $1
		  AND s.period_start = $2
		  AND s.period_end = $3
	`

	rec, err := scanSalaryRecord(q.QueryRow(ctx, query, employeeID, periodStart, periodEnd))
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.Record{}, salary.ErrSalaryRecordNotFound
		}
		return salary.Record{}, fmt.Errorf("failed to get salary record by period: %w", err)
	}

	return rec, nil
}

// List implements salary.SalaryRepository.
func (r *salaryRepository) List(ctx context.Context, filter salary.Filter) ([]salary.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereParts := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		whereParts = append(whereParts, fmt.Sprintf("s.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.StartDate != nil {
		whereParts = append(whereParts, fmt.Sprintf("s.period_end >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		whereParts = append(whereParts, fmt.Sprintf("s.period_start <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}

	where := strings.Join(whereParts, " AND ")

	countQuery := `SELECT COUNT(*) FROM salary_records s WHERE ` + where
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count salary records: %w", err)
	}

	query := `
		SELECT ` + salaryRecordColumns + `
		FROM salary_records s
		JOIN employees e ON e.id = s.employee_id
		WHERE ` + where + fmt.Sprintf(`
		ORDER BY s.created_at DESC
		LIMIT $%d OFFSET $%d
	`, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list salary records: %w", err)
	}
	defer rows.Close()

	var records []salary.Record
	for rows.Next() {
		rec, err := scanSalaryRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan salary record: %w", err)
		}
		records = append(records, rec)
	}

	return records, total, nil
}

// ListByEmployee implements salary.SalaryRepository. Newest period first.
func (r *salaryRepository) ListByEmployee(ctx context.Context, employeeID string) ([]salary.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryRecordColumns + `
		FROM salary_records s
		JOIN employees e ON e.id = s.employee_id
		WHERE s.employee_id = $1
		ORDER BY s.period_start DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary records: %w", err)
	}
	defer rows.Close()

	var records []salary.Record
	for rows.Next() {
		rec, err := scanSalaryRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// UpdateStatus implements salary.SalaryRepository. Only the lifecycle fields
// move; the computed fields stay frozen.
func (r *salaryRepository) UpdateStatus(ctx context.Context, id string, status salary.Status, paymentDate *time.Time, notes *string) (salary.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_records
		SET status = $2,
			payment_date = COALESCE($3, payment_date),
			notes = COALESCE($4, notes),
			updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, id, status, paymentDate, notes).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.Record{}, salary.ErrSalaryRecordNotFound
		}
		return salary.Record{}, fmt.Errorf("failed to update salary record status: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetStats implements salary.SalaryRepository.
func (r *salaryRepository) GetStats(ctx context.Context, periodStart, periodEnd *time.Time) (salary.StatsResponse, error) {
	q := GetQuerier(ctx, r.db)

	whereParts := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if periodStart != nil {
		whereParts = append(whereParts, fmt.Sprintf("period_end >= $%d", argIdx))
		args = append(args, *periodStart)
		argIdx++
	}
	if periodEnd != nil {
		whereParts = append(whereParts, fmt.Sprintf("period_start <= $%d", argIdx))
		args = append(args, *periodEnd)
		argIdx++
	}

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'draft'),
			COUNT(*) FILTER (WHERE status = 'finalized'),
			COUNT(*) FILTER (WHERE status = 'paid'),
			COALESCE(SUM(basic_salary), 0),
			COALESCE(SUM(deduction_total), 0),
			COALESCE(SUM(net_salary), 0)
		FROM salary_records
		WHERE ` + strings.Join(whereParts, " AND ")

	var stats salary.StatsResponse
	err := q.QueryRow(ctx, query, args...).Scan(
		&stats.TotalRecords, &stats.DraftCount, &stats.FinalizedCount, &stats.PaidCount,
		&stats.TotalBasic, &stats.TotalDeductions, &stats.TotalNetSalary,
	)
	if err != nil {
		return salary.StatsResponse{}, fmt.Errorf("failed to get salary stats: %w", err)
	}

	return stats, nil
}
