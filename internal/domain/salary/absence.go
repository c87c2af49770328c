package salary

import "time"

// WorkdayFunc decides whether a calendar day counts as a working day.
// Injectable so regional calendars can replace the Mon-Fri default.
type WorkdayFunc func(time.Time) bool

// Weekdays is the default working-day rule: Monday through Friday.
func Weekdays(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// CountAbsences walks every calendar day of the period. Non-working days are
// skipped outright; they belong to neither attendance, leave, nor absence. A
// working day covered by neither day-set is an unexplained absence.
func CountAbsences(p Period, attendanceDays, leaveDays map[string]struct{}, isWorkday WorkdayFunc) int {
	if isWorkday == nil {
		isWorkday = Weekdays
	}

	absent := 0
	for d := p.startDay(); !d.After(p.endDay()); d = d.AddDate(0, 0, 1) {
		if !isWorkday(d) {
			continue
		}
		key := DayKey(d)
		if _, ok := attendanceDays[key]; ok {
			continue
		}
		if _, ok := leaveDays[key]; ok {
			continue
		}
		absent++
	}

	return absent
}
