package salary

import (
	"time"

	"github.com/workforcehq/payroll-backend-go/internal/domain/attendance"
	"github.com/workforcehq/payroll-backend-go/internal/domain/leave"
)

// AttendanceTally is the pure aggregate of an employee's attendance records
// over a period.
type AttendanceTally struct {
	Present    int
	HalfDay    int
	Late       int
	TotalHours float64
	// Days holds the calendar-day keys that have at least one attendance
	// record. Used for absence inference, not counting.
	Days map[string]struct{}
}

// AggregateAttendance folds attendance records into per-status counts, a
// worked-hours total, and the set of days with attendance. Records with a
// stored "absent" status are not counted; true absence is always inferred by
// CountAbsences. Records without a checkout contribute no hours.
func AggregateAttendance(records []attendance.Attendance) AttendanceTally {
	tally := AttendanceTally{Days: make(map[string]struct{})}

	for _, rec := range records {
		tally.Days[DayKey(rec.Date)] = struct{}{}

		switch rec.Status {
		case attendance.StatusPresent:
			tally.Present++
		case attendance.StatusHalfDay:
			tally.HalfDay++
		case attendance.StatusLate:
			tally.Late++
		}

		if rec.CheckInTime != nil && rec.CheckOutTime != nil {
			tally.TotalHours += rec.CheckOutTime.Sub(*rec.CheckInTime).Hours()
		}
	}

	return tally
}

// LeaveTally is the pure aggregate of an employee's approved leave over a
// period, with each request clipped to the period bounds.
type LeaveTally struct {
	Sick   int
	Casual int
	Annual int
	Other  int
	Total  int
	// Days holds the calendar-day keys covered by approved leave.
	Days map[string]struct{}
}

// AggregateLeave clips each approved request to the period, counts the
// clipped days inclusively at calendar-day granularity, buckets them by leave
// type, and marks every covered day into the leave day-set.
func AggregateLeave(requests []leave.Request, p Period) LeaveTally {
	tally := LeaveTally{Days: make(map[string]struct{})}

	for _, req := range requests {
		effectiveStart := truncateToDay(req.StartDate)
		if effectiveStart.Before(p.startDay()) {
			effectiveStart = p.startDay()
		}
		effectiveEnd := truncateToDay(req.EndDate)
		if effectiveEnd.After(p.endDay()) {
			effectiveEnd = p.endDay()
		}
		if effectiveEnd.Before(effectiveStart) {
			continue
		}

		days := int(effectiveEnd.Sub(effectiveStart).Hours()/24) + 1

		switch req.LeaveType {
		case leave.TypeSick:
			tally.Sick += days
		case leave.TypeCasual:
			tally.Casual += days
		case leave.TypeAnnual:
			tally.Annual += days
		default:
			tally.Other += days
		}
		tally.Total += days

		for d := effectiveStart; !d.After(effectiveEnd); d = d.AddDate(0, 0, 1) {
			tally.Days[DayKey(d)] = struct{}{}
		}
	}

	return tally
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
