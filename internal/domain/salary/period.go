package salary

import (
	"time"

	"github.com/workforcehq/payroll-backend-go/internal/pkg/validator"
)

const dayKeyLayout = "2006-01-02"

// Period is an inclusive date range with time-of-day bounds pinned so that
// every downstream day count is boundary-inclusive.
type Period struct {
	StartDate time.Time
	EndDate   time.Time
	Label     string
}

// NormalizePeriod canonicalizes a raw start/end date pair: start floored to
// 00:00:00.000 and end ceiled to 23:59:59.999, both UTC. Returns
// validator.ValidationErrors for absent, unparseable, or inverted dates.
func NormalizePeriod(startDate, endDate string, customLabel *string) (Period, error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(startDate) {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "is required"})
	}
	if validator.IsEmpty(endDate) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "is required"})
	}
	if len(errs) > 0 {
		return Period{}, errs
	}

	start, ok := validator.IsValidDate(startDate)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, ok := validator.IsValidDate(endDate)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if len(errs) > 0 {
		return Period{}, errs
	}

	if end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not precede start_date"})
		return Period{}, errs
	}

	p := Period{
		StartDate: time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, int(999*time.Millisecond), time.UTC),
	}

	if customLabel != nil && !validator.IsEmpty(*customLabel) {
		p.Label = *customLabel
	} else {
		p.Label = p.StartDate.Format("Jan 02, 2006") + " - " + p.EndDate.Format("Jan 02, 2006")
	}

	return p, nil
}

// DayKey reduces a timestamp to its calendar-day identity. All day-set
// bookkeeping (attendance days, leave days, absence walking) goes through it
// so a day is counted once no matter what time-of-day its records carry.
func DayKey(t time.Time) string {
	return t.UTC().Format(dayKeyLayout)
}

// startDay returns the period start truncated to midnight.
func (p Period) startDay() time.Time {
	return time.Date(p.StartDate.Year(), p.StartDate.Month(), p.StartDate.Day(), 0, 0, 0, 0, time.UTC)
}

// endDay returns the period end truncated to midnight.
func (p Period) endDay() time.Time {
	return time.Date(p.EndDate.Year(), p.EndDate.Month(), p.EndDate.Day(), 0, 0, 0, 0, time.UTC)
}

// CalendarDays is the full inclusive calendar span including weekends. It is
// reported on the record but never feeds the absence count.
func (p Period) CalendarDays() int {
	return int(p.endDay().Sub(p.startDay()).Hours()/24) + 1
}
