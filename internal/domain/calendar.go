package domain

import (
	"time"
)

const dayKeyLayout = "2006-01-02"

// CalendarDay is one concrete date inside a planning range, annotated with
// the weekday's timetable row and the flags that exclude it from class
// counting. Generated per request, never persisted.
type CalendarDay struct {
	Date           time.Time
	DateKey        string
	Weekday        time.Weekday
	TimetableIndex int
	IsSunday       bool
	IsHoliday      bool
}

func (d CalendarDay) Countable() bool {
	return !d.IsSunday && !d.IsHoliday
}

// DayKey formats t as the YYYY-MM-DD key used for holiday sets and window
// boundaries.
func DayKey(t time.Time) string {
	return t.Format(dayKeyLayout)
}

func ParseDayKey(key string) (time.Time, error) {
	return time.Parse(dayKeyLayout, key)
}

// DateOnly strips the clock from t, keeping its location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// TimetableIndexFor maps a weekday to its timetable row: Monday is 0
// through Saturday at 5. Sunday has no row and yields -1.
func TimetableIndexFor(wd time.Weekday) int {
	if wd == time.Sunday {
		return -1
	}
	return int(wd) - 1
}

// BuildCalendarDays expands the inclusive date range into per-day entries,
// marking Sundays and any date whose key appears in holidays.
func BuildCalendarDays(start, end time.Time, holidays map[string]struct{}) []CalendarDay {
	start = DateOnly(start)
	end = DateOnly(end)

	var days []CalendarDay
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := DayKey(d)
		_, holiday := holidays[key]
		days = append(days, CalendarDay{
			Date:           d,
			DateKey:        key,
			Weekday:        d.Weekday(),
			TimetableIndex: TimetableIndexFor(d.Weekday()),
			IsSunday:       d.Weekday() == time.Sunday,
			IsHoliday:      holiday,
		})
	}
	return days
}
